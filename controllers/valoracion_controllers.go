package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/middlewares"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/services"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

type ValoracionController struct {
	DB *gorm.DB
}

func NewValoracionController(db *gorm.DB) *ValoracionController {
	return &ValoracionController{DB: db}
}

// valoracionVista agrega el nombre del cliente que dejó la reseña.
type valoracionVista struct {
	models.Valoracion `gorm:"embedded"`
	NombreCliente     string `gorm:"column:nombre_cliente" json:"NombreCliente"`
}

func (vc *ValoracionController) vistaQuery() *gorm.DB {
	return vc.DB.Model(&models.Valoracion{}).
		Select("Valoraciones.*, COALESCE(Usuarios.nombre, 'Cliente desconocido') AS nombre_cliente").
		Joins("LEFT JOIN Clientes ON Clientes.id_cliente = Valoraciones.id_cliente").
		Joins("LEFT JOIN Usuarios ON Usuarios.id_usuario = Clientes.id_usuario")
}

func (vc *ValoracionController) GetAllValoraciones(c *gin.Context) {
	q := vc.vistaQuery().Order("Valoraciones.fecha DESC")
	if idNegocio := c.Query("idNegocio"); idNegocio != "" {
		q = q.Where("Valoraciones.id_negocio = ?", idNegocio)
	}
	if idCliente := c.Query("idCliente"); idCliente != "" {
		q = q.Where("Valoraciones.id_cliente = ?", idCliente)
	}

	valoraciones := []valoracionVista{}
	if err := q.Scan(&valoraciones).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, valoraciones)
}

func (vc *ValoracionController) GetValoracionByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var valoracion valoracionVista
	res := vc.vistaQuery().Where("Valoraciones.id_valoracion = ?", id).Scan(&valoracion)
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, valoracion)
}

func (vc *ValoracionController) CreateValoracion(c *gin.Context) {
	var dto struct {
		IdNegocio    uint    `json:"IdNegocio" binding:"required"`
		IdCliente    uint    `json:"IdCliente" binding:"required"`
		Comentario   *string `json:"Comentario"`
		Calificacion *int    `json:"Calificacion"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	valoracion := models.Valoracion{
		IdNegocio:    dto.IdNegocio,
		IdCliente:    dto.IdCliente,
		Comentario:   dto.Comentario,
		Calificacion: dto.Calificacion,
	}
	if err := vc.DB.Create(&valoracion).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	vista := valoracionVista{Valoracion: valoracion, NombreCliente: "Cliente desconocido"}
	var nombre string
	if err := vc.DB.Model(&models.Cliente{}).
		Select("Usuarios.nombre").
		Joins("JOIN Usuarios ON Usuarios.id_usuario = Clientes.id_usuario").
		Where("Clientes.id_cliente = ?", valoracion.IdCliente).
		Limit(1).Scan(&nombre).Error; err == nil && nombre != "" {
		vista.NombreCliente = nombre
	}

	utils.Created(c, fmt.Sprintf("/api/Valoraciones/%d", valoracion.IdValoracion), vista)
}

// Responder guarda la respuesta del negocio a una reseña.
func (vc *ValoracionController) Responder(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		Respuesta *string `json:"Respuesta"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var valoracion models.Valoracion
	if err := vc.DB.First(&valoracion, "id_valoracion = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	if !vc.autorizado(c, valoracion.IdNegocio) {
		return
	}

	if err := vc.DB.Model(&models.Valoracion{}).
		Where("id_valoracion = ?", id).
		Update("respuesta", dto.Respuesta).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

// DeleteValoracion borra físicamente: Valoraciones no tiene flag estado.
func (vc *ValoracionController) DeleteValoracion(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := vc.DB.Delete(&models.Valoracion{}, "id_valoracion = ?", id)
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

// autorizado verifica que el usuario pueda actuar sobre el negocio y
// responde 403 cuando no corresponde.
func (vc *ValoracionController) autorizado(c *gin.Context, idNegocio uint) bool {
	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return false
	}

	permitido, err := services.PuedeAccederNegocio(vc.DB, idUsuario, rol, idNegocio)
	if err != nil {
		utils.RespondInternal(c, err)
		return false
	}
	if !permitido {
		utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
		return false
	}
	return true
}
