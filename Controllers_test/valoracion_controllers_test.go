package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nearbiz/nearbiz-api/controllers"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
)

func setupValoracionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:valoracion_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Usuario{},
		&models.Negocio{},
		&models.Personal{},
		&models.Cliente{},
		&models.Valoracion{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Exec("DELETE FROM Valoraciones")
	db.Exec("DELETE FROM Clientes")
	db.Exec("DELETE FROM Personal")
	db.Exec("DELETE FROM Negocios")
	db.Exec("DELETE FROM Usuarios")
	return db
}

func setupValoracionRouter(db *gorm.DB, idUsuario uint, rol string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	valoracionCtrl := controllers.NewValoracionController(db)

	r.GET("/Valoraciones", valoracionCtrl.GetAllValoraciones)
	priv := r.Group("/")
	priv.Use(identidadStub(idUsuario, rol))
	priv.POST("/Valoraciones/:id/respuesta", valoracionCtrl.Responder)
	return r
}

func TestListadoValoracionesIncluyeNombreCliente(t *testing.T) {
	utils.InitLogger()
	db := setupValoracionTestDB(t)

	negocio := models.Negocio{IdCategoria: 1, Nombre: "Salón Reseñas", Estado: true}
	db.Create(&negocio)
	usuario := models.Usuario{Nombre: "María López", Email: "maria@test.com", ContrasenaHash: "x", IdRol: models.IdRolCliente, Estado: true}
	db.Create(&usuario)
	cliente := models.Cliente{IdUsuario: usuario.IdUsuario, Estado: true}
	db.Create(&cliente)

	comentario := "Excelente atención"
	db.Create(&models.Valoracion{IdNegocio: negocio.IdNegocio, IdCliente: cliente.IdCliente, Comentario: &comentario})
	// Reseña cuyo cliente ya no existe.
	db.Create(&models.Valoracion{IdNegocio: negocio.IdNegocio, IdCliente: 9999})

	r := setupValoracionRouter(db, 0, "")
	req, _ := http.NewRequest("GET", fmt.Sprintf("/Valoraciones?idNegocio=%d", negocio.IdNegocio), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var lista []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Len(t, lista, 2)

	nombres := map[string]bool{}
	for _, v := range lista {
		nombres[v["NombreCliente"].(string)] = true
	}
	assert.True(t, nombres["María López"])
	assert.True(t, nombres["Cliente desconocido"])
}

func TestResponderValoracion(t *testing.T) {
	utils.InitLogger()
	db := setupValoracionTestDB(t)

	negocio := models.Negocio{IdCategoria: 1, Nombre: "Barbería Reseñas", Estado: true}
	db.Create(&negocio)
	admin := models.Usuario{Nombre: "Dueño", Email: "dueno@resenas.com", ContrasenaHash: "x", IdRol: models.IdRolAdminNegocio, Estado: true}
	db.Create(&admin)
	db.Create(&models.Personal{
		IdUsuario:    admin.IdUsuario,
		IdNegocio:    negocio.IdNegocio,
		RolEnNegocio: models.RolEnNegocioAdministrador,
		Estado:       true,
	})

	valoracion := models.Valoracion{IdNegocio: negocio.IdNegocio, IdCliente: 1}
	db.Create(&valoracion)

	payload, _ := json.Marshal(map[string]string{"Respuesta": "Gracias por tu visita"})
	ruta := fmt.Sprintf("/Valoraciones/%d/respuesta", valoracion.IdValoracion)

	// Un usuario sin vínculo con el negocio no puede responder.
	r := setupValoracionRouter(db, 555, models.RolCliente)
	req, _ := http.NewRequest("POST", ruta, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var sinCambio models.Valoracion
	assert.NoError(t, db.First(&sinCambio, "id_valoracion = ?", valoracion.IdValoracion).Error)
	assert.Nil(t, sinCambio.Respuesta)

	// El administrador del negocio sí.
	r = setupValoracionRouter(db, admin.IdUsuario, models.RolAdminNegocio)
	req, _ = http.NewRequest("POST", ruta, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var respondida models.Valoracion
	assert.NoError(t, db.First(&respondida, "id_valoracion = ?", valoracion.IdValoracion).Error)
	assert.NotNil(t, respondida.Respuesta)
	assert.Equal(t, "Gracias por tu visita", *respondida.Respuesta)

	// Id inexistente responde 404.
	req, _ = http.NewRequest("POST", "/Valoraciones/99999/respuesta", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
