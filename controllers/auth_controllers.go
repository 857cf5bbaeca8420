package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login acepta nombre de usuario o email (insensible a mayúsculas)
// contra usuarios activos. El token emitido se persiste en la fila del
// usuario como correlación para notificaciones push.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		UserOrEmail string `json:"userOrEmail" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var usuario models.Usuario
	err := ac.DB.Preload("Rol").
		Where("(LOWER(email) = LOWER(?) OR LOWER(nombre) = LOWER(?)) AND estado = ?",
			input.UserOrEmail, input.UserOrEmail, true).
		First(&usuario).Error
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Credenciales inválidas"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.ContrasenaHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Credenciales inválidas"))
		return
	}

	rolNombre := ""
	if usuario.Rol != nil {
		rolNombre = usuario.Rol.Rol
	}

	token, expira, err := utils.GenerateToken(usuario.IdUsuario, rolNombre)
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}

	if err := ac.DB.Model(&models.Usuario{}).
		Where("id_usuario = ?", usuario.IdUsuario).
		Update("token", token).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.InfoLogger.Printf("Login de %s (rol=%s)", usuario.Email, rolNombre)

	c.JSON(http.StatusOK, gin.H{
		"Token":     token,
		"Expira":    expira.UTC().Format(time.RFC3339),
		"Nombre":    usuario.Nombre,
		"IdUsuario": usuario.IdUsuario,
		"Rol":       rolNombre,
		"Email":     usuario.Email,
	})
}

// Logout revoca el token presentado hasta su expiración natural.
func (ac *AuthController) Logout(c *gin.Context) {
	tokenRaw, exists := c.Get("token")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return
	}
	token, _ := tokenRaw.(string)

	hasta := time.Now().Add(24 * time.Hour)
	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		hasta = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, hasta)

	utils.NoContent(c)
}
