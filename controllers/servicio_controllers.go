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

type ServicioController struct {
	DB *gorm.DB
}

func NewServicioController(db *gorm.DB) *ServicioController {
	return &ServicioController{DB: db}
}

func (sc *ServicioController) GetAllServicios(c *gin.Context) {
	q := sc.DB.Order("id_servicio")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}
	if idNegocio := c.Query("idNegocio"); idNegocio != "" {
		q = q.Where("id_negocio = ?", idNegocio)
	}

	var servicios []models.Servicio
	if err := q.Find(&servicios).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, servicios)
}

func (sc *ServicioController) GetServicioByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var servicio models.Servicio
	if err := sc.DB.First(&servicio, "id_servicio = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, servicio)
}

type servicioDTO struct {
	IdNegocio       uint    `json:"IdNegocio" binding:"required"`
	NombreServicio  string  `json:"NombreServicio" binding:"required"`
	Descripcion     *string `json:"Descripcion"`
	Precio          float64 `json:"Precio" binding:"required"`
	DuracionMinutos int     `json:"DuracionMinutos" binding:"required"`
}

func (sc *ServicioController) CreateServicio(c *gin.Context) {
	var dto servicioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !sc.autorizado(c, dto.IdNegocio) {
		return
	}

	servicio := models.Servicio{
		IdNegocio:       dto.IdNegocio,
		NombreServicio:  dto.NombreServicio,
		Descripcion:     dto.Descripcion,
		Precio:          dto.Precio,
		DuracionMinutos: dto.DuracionMinutos,
		Estado:          true,
	}
	if err := sc.DB.Create(&servicio).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Servicios/%d", servicio.IdServicio), servicio)
}

func (sc *ServicioController) UpdateServicio(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto servicioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !sc.autorizado(c, dto.IdNegocio) {
		return
	}

	res := sc.DB.Model(&models.Servicio{}).
		Where("id_servicio = ?", id).
		Updates(map[string]interface{}{
			"id_negocio":       dto.IdNegocio,
			"nombre_servicio":  dto.NombreServicio,
			"descripcion":      dto.Descripcion,
			"precio":           dto.Precio,
			"duracion_minutos": dto.DuracionMinutos,
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

func (sc *ServicioController) DeleteServicio(c *gin.Context) {
	sc.cambiarEstado(c, false)
}

func (sc *ServicioController) RestoreServicio(c *gin.Context) {
	sc.cambiarEstado(c, true)
}

func (sc *ServicioController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var servicio models.Servicio
	if err := sc.DB.First(&servicio, "id_servicio = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	if !sc.autorizado(c, servicio.IdNegocio) {
		return
	}

	if err := sc.DB.Model(&models.Servicio{}).
		Where("id_servicio = ?", id).
		Update("estado", estado).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

// autorizado verifica que el usuario pueda actuar sobre el negocio y
// responde 403 cuando no corresponde.
func (sc *ServicioController) autorizado(c *gin.Context, idNegocio uint) bool {
	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return false
	}

	permitido, err := services.PuedeAccederNegocio(sc.DB, idUsuario, rol, idNegocio)
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
