package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nearbiz/nearbiz-api/database"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/router"
	"github.com/nearbiz/nearbiz-api/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.InitJWT("clave-integracion", "NearBiz", "NearBizApp", time.Hour)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type correoRegistrado struct {
	Destinatario string
	Asunto       string
}

type correoMemoria struct{ enviados []correoRegistrado }

func (c *correoMemoria) EnviarCorreo(destinatario, asunto, html string) error {
	c.enviados = append(c.enviados, correoRegistrado{destinatario, asunto})
	return nil
}

type pushMemoria struct{ titulos []string }

func (p *pushMemoria) Enviar(to, titulo, cuerpo string, data map[string]interface{}) error {
	p.titulos = append(p.titulos, titulo)
	return nil
}

// TestFlujoCompletoNegocioYCitas cubre el flujo principal de la
// plataforma de punta a punta:
// 1. Alta pública de negocio (solicitud pendiente)
// 2. Login del admin de plataforma y aprobación del negocio
// 3. Login del admin del negocio, MiNegocio y alta de servicio
// 4. Registro de un cliente desde la app
// 5. Creación de cita y confirmación con push al cliente
func TestFlujoCompletoNegocioYCitas(t *testing.T) {
	db := setupIntegrationDB()
	correo := &correoMemoria{}
	push := &pushMemoria{}
	r := router.SetupRouter(db, router.Deps{
		Correo:         correo,
		Push:           push,
		AllowedOrigins: []string{"*"},
	})

	// 1. Alta pública del negocio.
	idNegocio := crearNegocioIT(t, r)

	// 2. Aprobación por el admin de plataforma.
	tokenPlataforma := loginIT(t, r, "root@nearbiz.com", "root-secreto")
	doJSON(t, r, "PATCH", fmt.Sprintf("/api/Negocios/%d/approve", idNegocio), nil, tokenPlataforma, http.StatusNoContent)

	if len(correo.enviados) != 1 || correo.enviados[0].Asunto != "Solicitud aprobada - NearBiz" {
		t.Fatalf("correo de aprobación no registrado: %+v", correo.enviados)
	}

	// 3. El admin del negocio ya puede entrar y ver su negocio.
	tokenNegocio := loginIT(t, r, "duena@glamour.com", "clave-glamour")
	resp := doJSON(t, r, "GET", "/api/Negocios/MiNegocio", nil, tokenNegocio, http.StatusOK)
	var miNegocio models.Negocio
	decode(t, resp, &miNegocio)
	if miNegocio.IdNegocio != idNegocio {
		t.Fatalf("MiNegocio = %d, want %d", miNegocio.IdNegocio, idNegocio)
	}

	resp = doJSON(t, r, "POST", "/api/Servicios", map[string]interface{}{
		"IdNegocio":       idNegocio,
		"NombreServicio":  "Peinado",
		"Precio":          300.0,
		"DuracionMinutos": 60,
	}, tokenNegocio, http.StatusCreated)
	var servicio models.Servicio
	decode(t, resp, &servicio)

	// 4. Registro de cliente desde la app, con token push.
	tokenPush := "ExponentPushToken[integracion]"
	resp = doJSON(t, r, "POST", "/api/Usuarios/registroapp", map[string]interface{}{
		"Nombre":     "Clienta Feliz",
		"Email":      "clienta@test.com",
		"Contrasena": "clave-clienta",
		"IdRol":      models.IdRolCliente,
		"Token":      tokenPush,
	}, "", http.StatusCreated)
	var registro struct {
		Cliente models.Cliente `json:"Cliente"`
	}
	decode(t, resp, &registro)
	if registro.Cliente.IdCliente == 0 {
		t.Fatal("el registro no creó el perfil de cliente")
	}

	// 5. Cita pendiente y confirmación con push.
	var tecnico models.Personal
	if err := db.First(&tecnico, "id_negocio = ?", idNegocio).Error; err != nil {
		t.Fatalf("personal del negocio: %v", err)
	}

	resp = doJSON(t, r, "POST", "/api/Citas", map[string]interface{}{
		"IdCliente":  registro.Cliente.IdCliente,
		"IdTecnico":  tecnico.IdPersonal,
		"IdServicio": servicio.IdServicio,
		"FechaCita":  "2026-09-20",
		"HoraInicio": "16:00",
		"HoraFin":    "17:00",
	}, tokenNegocio, http.StatusCreated)
	var cita models.Cita
	decode(t, resp, &cita)
	if cita.Estado != models.CitaPendiente {
		t.Fatalf("cita recién creada en estado %q", cita.Estado)
	}

	resp = doJSON(t, r, "PATCH", fmt.Sprintf("/api/Citas/%d/estatus", cita.IdCita), map[string]interface{}{
		"estatus": models.CitaConfirmada,
	}, tokenNegocio, http.StatusOK)
	decode(t, resp, &cita)
	if cita.Estado != models.CitaConfirmada {
		t.Fatalf("cita en estado %q tras confirmar", cita.Estado)
	}

	if len(push.titulos) != 1 || push.titulos[0] != "Cita confirmada" {
		t.Fatalf("push al cliente no registrado: %v", push.titulos)
	}

	// Confirmar dos veces es conflicto: la transición ya se consumió.
	doJSON(t, r, "PATCH", fmt.Sprintf("/api/Citas/%d/estatus", cita.IdCita), map[string]interface{}{
		"estatus": models.CitaConfirmada,
	}, tokenNegocio, http.StatusConflict)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := database.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	// Admin de plataforma para aprobar solicitudes.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("root-secreto"), bcrypt.DefaultCost)
	db.Create(&models.Usuario{
		Nombre:         "Root",
		Email:          "root@nearbiz.com",
		ContrasenaHash: string(hashed),
		IdRol:          models.IdRolAdminNearbiz,
		Estado:         true,
	})
	db.Create(&models.Categoria{NombreCategoria: "Belleza", Estado: true})
	return db
}

func crearNegocioIT(t *testing.T, r *gin.Engine) uint {
	resp := doJSON(t, r, "POST", "/api/Negocios", map[string]interface{}{
		"IdCategoria":     1,
		"Nombre":          "Salón Glamour",
		"AdminNombre":     "Dueña Glamour",
		"AdminEmail":      "duena@glamour.com",
		"AdminContrasena": "clave-glamour",
	}, "", http.StatusCreated)

	var negocio models.Negocio
	decode(t, resp, &negocio)
	if negocio.IdNegocio == 0 {
		t.Fatal("el alta de negocio no devolvió id")
	}
	if negocio.Estado {
		t.Fatal("el negocio debe nacer inactivo")
	}
	return negocio.IdNegocio
}

func loginIT(t *testing.T, r *gin.Engine, userOrEmail, password string) string {
	resp := doJSON(t, r, "POST", "/api/auth/login", map[string]string{
		"userOrEmail": userOrEmail,
		"password":    password,
	}, "", http.StatusOK)

	var body struct {
		Token string `json:"Token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("login de %s sin token", userOrEmail)
	}
	return body.Token
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, token string, wantCode int) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != wantCode {
		t.Fatalf("%s %s = %d, want %d (body: %s)", method, path, w.Code, wantCode, w.Body.String())
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
}
