package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

type CategoriaController struct {
	DB *gorm.DB
}

func NewCategoriaController(db *gorm.DB) *CategoriaController {
	return &CategoriaController{DB: db}
}

func (cc *CategoriaController) GetAllCategorias(c *gin.Context) {
	q := cc.DB.Order("id_categoria")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}

	var categorias []models.Categoria
	if err := q.Find(&categorias).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, categorias)
}

func (cc *CategoriaController) GetCategoriaByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var categoria models.Categoria
	if err := cc.DB.First(&categoria, "id_categoria = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, categoria)
}

func (cc *CategoriaController) CreateCategoria(c *gin.Context) {
	var dto struct {
		NombreCategoria string `json:"NombreCategoria" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	categoria := models.Categoria{NombreCategoria: dto.NombreCategoria, Estado: true}
	if err := cc.DB.Create(&categoria).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Categorias/%d", categoria.IdCategoria), categoria)
}

func (cc *CategoriaController) UpdateCategoria(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		NombreCategoria string `json:"NombreCategoria" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Categoria{}).
		Where("id_categoria = ?", id).
		Update("nombre_categoria", dto.NombreCategoria)
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

func (cc *CategoriaController) DeleteCategoria(c *gin.Context) {
	cc.cambiarEstado(c, false)
}

func (cc *CategoriaController) RestoreCategoria(c *gin.Context) {
	cc.cambiarEstado(c, true)
}

func (cc *CategoriaController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Categoria{}).
		Where("id_categoria = ?", id).
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
