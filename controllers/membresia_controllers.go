package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

type MembresiaController struct {
	DB *gorm.DB
}

func NewMembresiaController(db *gorm.DB) *MembresiaController {
	return &MembresiaController{DB: db}
}

func (mc *MembresiaController) GetAllMembresias(c *gin.Context) {
	q := mc.DB.Order("id_membresia")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}

	var membresias []models.Membresia
	if err := q.Find(&membresias).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, membresias)
}

func (mc *MembresiaController) GetMembresiaByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var membresia models.Membresia
	if err := mc.DB.First(&membresia, "id_membresia = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, membresia)
}

func (mc *MembresiaController) CreateMembresia(c *gin.Context) {
	var dto struct {
		PrecioMensual float64 `json:"PrecioMensual" binding:"required"`
		IdNegocio     uint    `json:"IdNegocio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	membresia := models.Membresia{
		PrecioMensual:    dto.PrecioMensual,
		IdNegocio:        dto.IdNegocio,
		Estado:           true,
		UltimaRenovacion: &now,
	}
	if err := mc.DB.Create(&membresia).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Membresias/%d", membresia.IdMembresia), membresia)
}

// RenovarMembresia estampa la última renovación y reactiva la membresía.
func (mc *MembresiaController) RenovarMembresia(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := mc.DB.Model(&models.Membresia{}).
		Where("id_membresia = ?", id).
		Updates(map[string]interface{}{
			"estado":            true,
			"ultima_renovacion": time.Now(),
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

func (mc *MembresiaController) UpdateMembresia(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		PrecioMensual float64 `json:"PrecioMensual" binding:"required"`
		IdNegocio     uint    `json:"IdNegocio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := mc.DB.Model(&models.Membresia{}).
		Where("id_membresia = ?", id).
		Updates(map[string]interface{}{
			"precio_mensual": dto.PrecioMensual,
			"id_negocio":     dto.IdNegocio,
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

func (mc *MembresiaController) DeleteMembresia(c *gin.Context) {
	mc.cambiarEstado(c, false)
}

func (mc *MembresiaController) RestoreMembresia(c *gin.Context) {
	mc.cambiarEstado(c, true)
}

func (mc *MembresiaController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := mc.DB.Model(&models.Membresia{}).
		Where("id_membresia = ?", id).
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
