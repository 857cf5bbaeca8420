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

type PersonalController struct {
	DB *gorm.DB
}

func NewPersonalController(db *gorm.DB) *PersonalController {
	return &PersonalController{DB: db}
}

func (pc *PersonalController) GetAllPersonal(c *gin.Context) {
	q := pc.DB.Order("id_personal")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}
	if idNegocio := c.Query("idNegocio"); idNegocio != "" {
		q = q.Where("id_negocio = ?", idNegocio)
	}

	var personal []models.Personal
	if err := q.Find(&personal).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, personal)
}

func (pc *PersonalController) GetPersonalByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var personal models.Personal
	if err := pc.DB.First(&personal, "id_personal = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, personal)
}

// CreatePersonal vincula un usuario existente a un negocio. Solo el
// admin de ese negocio (o adminNearbiz) puede agregar personal.
func (pc *PersonalController) CreatePersonal(c *gin.Context) {
	var dto struct {
		IdUsuario    uint   `json:"IdUsuario" binding:"required"`
		IdNegocio    uint   `json:"IdNegocio" binding:"required"`
		RolEnNegocio string `json:"RolEnNegocio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pc.autorizado(c, dto.IdNegocio) {
		return
	}

	personal := models.Personal{
		IdUsuario:    dto.IdUsuario,
		IdNegocio:    dto.IdNegocio,
		RolEnNegocio: dto.RolEnNegocio,
		Estado:       true,
	}
	if err := pc.DB.Create(&personal).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Personal/%d", personal.IdPersonal), personal)
}

func (pc *PersonalController) UpdatePersonal(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		RolEnNegocio string `json:"RolEnNegocio" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := pc.DB.Model(&models.Personal{}).
		Where("id_personal = ?", id).
		Update("rol_en_negocio", dto.RolEnNegocio)
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

func (pc *PersonalController) DeletePersonal(c *gin.Context) {
	pc.cambiarEstado(c, false)
}

func (pc *PersonalController) RestorePersonal(c *gin.Context) {
	pc.cambiarEstado(c, true)
}

func (pc *PersonalController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var personal models.Personal
	if err := pc.DB.First(&personal, "id_personal = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	if !pc.autorizado(c, personal.IdNegocio) {
		return
	}

	if err := pc.DB.Model(&models.Personal{}).
		Where("id_personal = ?", id).
		Update("estado", estado).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

func (pc *PersonalController) autorizado(c *gin.Context, idNegocio uint) bool {
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
