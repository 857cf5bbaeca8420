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

type PromocionController struct {
	DB *gorm.DB
}

func NewPromocionController(db *gorm.DB) *PromocionController {
	return &PromocionController{DB: db}
}

func (pc *PromocionController) GetAllPromociones(c *gin.Context) {
	q := pc.DB.Order("id_promocion")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}
	if idNegocio := c.Query("idNegocio"); idNegocio != "" {
		q = q.Where("id_negocio = ?", idNegocio)
	}

	var promociones []models.Promocion
	if err := q.Find(&promociones).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, promociones)
}

func (pc *PromocionController) GetPromocionByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var promocion models.Promocion
	if err := pc.DB.First(&promocion, "id_promocion = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, promocion)
}

type promocionDTO struct {
	IdNegocio   uint    `json:"IdNegocio" binding:"required"`
	Titulo      string  `json:"Titulo" binding:"required"`
	Descripcion *string `json:"Descripcion"`
	FechaInicio string  `json:"FechaInicio" binding:"required"`
	FechaFin    string  `json:"FechaFin" binding:"required"`
}

func (pc *PromocionController) CreatePromocion(c *gin.Context) {
	var dto promocionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pc.autorizado(c, dto.IdNegocio) {
		return
	}

	promocion := models.Promocion{
		IdNegocio:   dto.IdNegocio,
		Titulo:      dto.Titulo,
		Descripcion: dto.Descripcion,
		FechaInicio: dto.FechaInicio,
		FechaFin:    dto.FechaFin,
		Estado:      true,
	}
	if err := pc.DB.Create(&promocion).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Promociones/%d", promocion.IdPromocion), promocion)
}

func (pc *PromocionController) UpdatePromocion(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto promocionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pc.autorizado(c, dto.IdNegocio) {
		return
	}

	res := pc.DB.Model(&models.Promocion{}).
		Where("id_promocion = ?", id).
		Updates(map[string]interface{}{
			"id_negocio":   dto.IdNegocio,
			"titulo":       dto.Titulo,
			"descripcion":  dto.Descripcion,
			"fecha_inicio": dto.FechaInicio,
			"fecha_fin":    dto.FechaFin,
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

func (pc *PromocionController) DeletePromocion(c *gin.Context) {
	pc.cambiarEstado(c, false)
}

func (pc *PromocionController) RestorePromocion(c *gin.Context) {
	pc.cambiarEstado(c, true)
}

func (pc *PromocionController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var promocion models.Promocion
	if err := pc.DB.First(&promocion, "id_promocion = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	if !pc.autorizado(c, promocion.IdNegocio) {
		return
	}

	if err := pc.DB.Model(&models.Promocion{}).
		Where("id_promocion = ?", id).
		Update("estado", estado).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

// autorizado verifica que el usuario pueda actuar sobre el negocio y
// responde 403 cuando no corresponde.
func (pc *PromocionController) autorizado(c *gin.Context, idNegocio uint) bool {
	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return false
	}

	permitido, err := services.PuedeAccederNegocio(pc.DB, idUsuario, rol, idNegocio)
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
