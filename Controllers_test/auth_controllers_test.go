package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nearbiz/nearbiz-api/controllers"
	"github.com/nearbiz/nearbiz-api/middlewares"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:auth_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Rol{}, &models.Usuario{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// La base compartida sobrevive entre tests: arrancar limpio.
	db.Exec("DELETE FROM Usuarios")
	db.Exec("DELETE FROM Roles")

	db.Create(&models.Rol{IdRol: models.IdRolAdminNearbiz, Rol: models.RolAdminNearbiz})

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	db.Create(&models.Usuario{
		Nombre:         "Admin Plataforma",
		Email:          "admin@nearbiz.com",
		ContrasenaHash: string(hashed),
		IdRol:          models.IdRolAdminNearbiz,
		Estado:         true,
	})
	return db
}

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authCtrl := controllers.NewAuthController(db)
	r.POST("/login", authCtrl.Login)

	priv := r.Group("/")
	priv.Use(middlewares.AuthMiddleware())
	priv.POST("/logout", authCtrl.Logout)
	return r
}

func doLogin(t *testing.T, r *gin.Engine, userOrEmail, password string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(map[string]string{
		"userOrEmail": userOrEmail,
		"password":    password,
	})
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/login", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginPorEmailYNombre(t *testing.T) {
	utils.InitLogger()
	utils.InitJWT("clave-de-prueba", "NearBiz", "NearBizApp", time.Hour)

	db := setupAuthTestDB(t)
	r := setupAuthRouter(db)

	// Login por email, insensible a mayúsculas.
	w := doLogin(t, r, "ADMIN@nearbiz.com", "secreto123")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["Token"])
	assert.Equal(t, models.RolAdminNearbiz, resp["Rol"])
	assert.Equal(t, "admin@nearbiz.com", resp["Email"])

	// El token emitido queda persistido en la fila del usuario.
	var usuario models.Usuario
	assert.NoError(t, db.First(&usuario, "email = ?", "admin@nearbiz.com").Error)
	assert.NotNil(t, usuario.Token)
	assert.Equal(t, resp["Token"], *usuario.Token)

	// El token emitido se verifica con la misma ruta que usan las rutas
	// protegidas y conserva identidad y rol.
	claims, err := utils.ParseToken(resp["Token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, models.RolAdminNearbiz, claims.Rol)
	idToken, err := claims.IdUsuario()
	assert.NoError(t, err)
	assert.Equal(t, usuario.IdUsuario, idToken)

	// Login por nombre de usuario.
	w = doLogin(t, r, "admin plataforma", "secreto123")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	utils.InitLogger()
	utils.InitJWT("clave-de-prueba", "NearBiz", "NearBizApp", time.Hour)

	db := setupAuthTestDB(t)
	r := setupAuthRouter(db)

	// Contraseña incorrecta.
	w := doLogin(t, r, "admin@nearbiz.com", "otra-cosa")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Usuario desactivado no puede iniciar sesión.
	db.Model(&models.Usuario{}).
		Where("email = ?", "admin@nearbiz.com").
		Update("estado", false)
	w = doLogin(t, r, "admin@nearbiz.com", "secreto123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevocaElToken(t *testing.T) {
	utils.InitLogger()
	utils.InitJWT("clave-de-prueba", "NearBiz", "NearBizApp", time.Hour)

	db := setupAuthTestDB(t)
	r := setupAuthRouter(db)

	w := doLogin(t, r, "admin@nearbiz.com", "secreto123")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["Token"].(string)

	req, _ := http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// El mismo token ya no sirve: quedó en la lista negra.
	req, _ = http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
