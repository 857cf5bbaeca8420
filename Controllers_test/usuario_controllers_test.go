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

func setupUsuarioTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:usuario_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Rol{}, &models.Usuario{}, &models.Cliente{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Exec("DELETE FROM Clientes")
	db.Exec("DELETE FROM Usuarios")
	db.Exec("DELETE FROM Roles")

	db.Create(&models.Rol{IdRol: models.IdRolPersonal, Rol: models.RolPersonal})
	db.Create(&models.Rol{IdRol: models.IdRolCliente, Rol: models.RolCliente})
	return db
}

func setupUsuarioRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	usuarioCtrl := controllers.NewUsuarioController(db)

	r.GET("/Usuarios", usuarioCtrl.GetAllUsuarios)
	r.GET("/Usuarios/:id", usuarioCtrl.GetUsuarioByID)
	r.POST("/Usuarios", usuarioCtrl.CreateUsuario)
	r.POST("/Usuarios/registroapp", usuarioCtrl.RegistroApp)
	r.PUT("/Usuarios/:id", usuarioCtrl.UpdateUsuario)
	r.DELETE("/Usuarios/:id", usuarioCtrl.DeleteUsuario)
	r.PATCH("/Usuarios/:id/restore", usuarioCtrl.RestoreUsuario)
	return r
}

func TestRegistroAppCreaPerfilCliente(t *testing.T) {
	utils.InitLogger()
	db := setupUsuarioTestDB(t)
	r := setupUsuarioRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"Nombre":     "María López",
		"Email":      "maria@test.com",
		"Contrasena": "secreto123",
		"IdRol":      models.IdRolCliente,
	})
	req, _ := http.NewRequest("POST", "/Usuarios/registroapp", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["Cliente"])

	// El perfil Clientes queda vinculado al usuario, en la misma transacción.
	var usuario models.Usuario
	assert.NoError(t, db.First(&usuario, "email = ?", "maria@test.com").Error)
	var cliente models.Cliente
	assert.NoError(t, db.First(&cliente, "id_usuario = ?", usuario.IdUsuario).Error)
	assert.True(t, cliente.Estado)

	// La contraseña jamás viaja en la respuesta ni se guarda en claro.
	assert.NotContains(t, w.Body.String(), "secreto123")
	assert.NotEqual(t, "secreto123", usuario.ContrasenaHash)
}

func TestRegistroAppPersonalNoCreaCliente(t *testing.T) {
	utils.InitLogger()
	db := setupUsuarioTestDB(t)
	r := setupUsuarioRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"Nombre":     "Juan Técnico",
		"Email":      "juan@test.com",
		"Contrasena": "secreto123",
		"IdRol":      models.IdRolPersonal,
	})
	req, _ := http.NewRequest("POST", "/Usuarios/registroapp", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Cliente{}).Count(&count)
	assert.Zero(t, count)
}

func TestUsuarioSoftDeleteYRestore(t *testing.T) {
	utils.InitLogger()
	db := setupUsuarioTestDB(t)
	r := setupUsuarioRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"Nombre":     "Pedro Pérez",
		"Email":      "pedro@test.com",
		"Contrasena": "secreto123",
		"IdRol":      models.IdRolPersonal,
	})
	req, _ := http.NewRequest("POST", "/Usuarios", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var creado models.Usuario
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &creado))
	id := creado.IdUsuario

	// Soft delete: la fila queda, solo cambia el flag.
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/Usuarios/%d", id), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var usuario models.Usuario
	assert.NoError(t, db.First(&usuario, "id_usuario = ?", id).Error)
	assert.False(t, usuario.Estado)

	// El listado normal lo oculta; includeInactive lo muestra.
	req, _ = http.NewRequest("GET", "/Usuarios", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var lista []models.Usuario
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Len(t, lista, 0)

	req, _ = http.NewRequest("GET", "/Usuarios?includeInactive=true", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Len(t, lista, 1)

	// Restore lo reactiva.
	req, _ = http.NewRequest("PATCH", fmt.Sprintf("/Usuarios/%d/restore", id), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.NoError(t, db.First(&usuario, "id_usuario = ?", id).Error)
	assert.True(t, usuario.Estado)

	// Operar sobre un id inexistente responde 404.
	req, _ = http.NewRequest("DELETE", "/Usuarios/9999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
