package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

type ClienteController struct {
	DB *gorm.DB
}

func NewClienteController(db *gorm.DB) *ClienteController {
	return &ClienteController{DB: db}
}

func (cc *ClienteController) GetAllClientes(c *gin.Context) {
	q := cc.DB.Order("id_cliente")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}

	var clientes []models.Cliente
	if err := q.Find(&clientes).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (cc *ClienteController) GetClienteByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cliente models.Cliente
	if err := cc.DB.First(&cliente, "id_cliente = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (cc *ClienteController) CreateCliente(c *gin.Context) {
	var dto struct {
		IdUsuario uint `json:"IdUsuario" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cliente := models.Cliente{IdUsuario: dto.IdUsuario, Estado: true}
	if err := cc.DB.Create(&cliente).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Clientes/%d", cliente.IdCliente), cliente)
}

func (cc *ClienteController) DeleteCliente(c *gin.Context) {
	cc.cambiarEstado(c, false)
}

func (cc *ClienteController) RestoreCliente(c *gin.Context) {
	cc.cambiarEstado(c, true)
}

func (cc *ClienteController) cambiarEstado(c *gin.Context, estado bool) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Cliente{}).
		Where("id_cliente = ?", id).
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
