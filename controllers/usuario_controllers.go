package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsuarioController struct {
	DB *gorm.DB
}

func NewUsuarioController(db *gorm.DB) *UsuarioController {
	return &UsuarioController{DB: db}
}

type usuarioCreateDTO struct {
	Nombre     string  `json:"Nombre" binding:"required"`
	Email      string  `json:"Email" binding:"required,email"`
	Contrasena string  `json:"Contrasena" binding:"required"`
	IdRol      uint    `json:"IdRol" binding:"required"`
	Token      *string `json:"Token"`
}

func (uc *UsuarioController) GetAllUsuarios(c *gin.Context) {
	q := uc.DB.Order("id_usuario")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}

	var usuarios []models.Usuario
	if err := q.Find(&usuarios).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (uc *UsuarioController) GetUsuarioByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var usuario models.Usuario
	if err := uc.DB.First(&usuario, "id_usuario = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (uc *UsuarioController) CreateUsuario(c *gin.Context) {
	var dto usuarioCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	usuario, err := uc.insertarUsuario(uc.DB, &dto)
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Usuarios/%d", usuario.IdUsuario), usuario)
}

// RegistroApp registra un usuario desde la app móvil. Cuando el rol es
// cliente también crea el perfil en Clientes, en la misma transacción.
func (uc *UsuarioController) RegistroApp(c *gin.Context) {
	var dto usuarioCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var usuario *models.Usuario
	var cliente *models.Cliente
	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		usuario, err = uc.insertarUsuario(tx, &dto)
		if err != nil {
			return err
		}
		if dto.IdRol == models.IdRolCliente {
			cliente = &models.Cliente{IdUsuario: usuario.IdUsuario, Estado: true}
			return tx.Create(cliente).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}

	body := gin.H{
		"IdUsuario":     usuario.IdUsuario,
		"Nombre":        usuario.Nombre,
		"Email":         usuario.Email,
		"IdRol":         usuario.IdRol,
		"FechaRegistro": usuario.FechaRegistro,
		"Estado":        usuario.Estado,
		"Token":         usuario.Token,
	}
	if cliente != nil {
		body["Cliente"] = cliente
	}
	utils.Created(c, fmt.Sprintf("/api/Usuarios/%d", usuario.IdUsuario), body)
}

func (uc *UsuarioController) insertarUsuario(tx *gorm.DB, dto *usuarioCreateDTO) (*models.Usuario, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usuario := models.Usuario{
		Nombre:         dto.Nombre,
		Email:          dto.Email,
		ContrasenaHash: string(hashed),
		IdRol:          dto.IdRol,
		Estado:         true,
		Token:          dto.Token,
	}
	if err := tx.Create(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (uc *UsuarioController) UpdateUsuario(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		Nombre string  `json:"Nombre" binding:"required"`
		Email  string  `json:"Email" binding:"required,email"`
		IdRol  uint    `json:"IdRol" binding:"required"`
		Token  *string `json:"Token"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := uc.DB.Model(&models.Usuario{}).
		Where("id_usuario = ?", id).
		Updates(map[string]interface{}{
			"nombre": dto.Nombre,
			"email":  dto.Email,
			"id_rol": dto.IdRol,
			"token":  dto.Token,
		})
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	utils.NoContent(c)
}

func (uc *UsuarioController) DeleteUsuario(c *gin.Context) {
	uc.cambiarEstado(c, false)
}

func (uc *UsuarioController) RestoreUsuario(c *gin.Context) {
	uc.cambiarEstado(c, true)
}

func (uc *UsuarioController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := uc.DB.Model(&models.Usuario{}).
		Where("id_usuario = ?", id).
		Update("estado", estado)
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	utils.NoContent(c)
}

// Helpers compartidos por todos los controllers CRUD.

var errNotFound = fmt.Errorf("Not found")

func includeInactive(c *gin.Context) bool {
	return c.DefaultQuery("includeInactive", "false") == "true"
}

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id inválido")
	}
	return uint(id), nil
}
