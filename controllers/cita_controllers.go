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

type CitaController struct {
	DB     *gorm.DB
	Status *services.CitaStatus
}

func NewCitaController(db *gorm.DB, status *services.CitaStatus) *CitaController {
	return &CitaController{DB: db, Status: status}
}

func (cc *CitaController) GetAllCitas(c *gin.Context) {
	q := cc.DB.Order("fecha_cita, hora_inicio")
	if !includeInactive(c) {
		q = q.Where("estado <> ?", models.CitaCancelada)
	}
	if idCliente := c.Query("idCliente"); idCliente != "" {
		q = q.Where("id_cliente = ?", idCliente)
	}
	if idTecnico := c.Query("idTecnico"); idTecnico != "" {
		q = q.Where("id_tecnico = ?", idTecnico)
	}

	var citas []models.Cita
	if err := q.Find(&citas).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, citas)
}

// GetCitasByRole filtra el listado según la identidad del token:
// un cliente ve sus propias citas, adminNegocio/personal las de su
// negocio (vía Personal -> Servicios), adminNearbiz todas.
func (cc *CitaController) GetCitasByRole(c *gin.Context) {
	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return
	}

	var citas []models.Cita
	var err error

	switch rol {
	case models.RolAdminNearbiz:
		err = cc.DB.Order("fecha_cita, hora_inicio").Find(&citas).Error
	case models.RolCliente:
		err = cc.DB.
			Joins("JOIN Clientes ON Clientes.id_cliente = Citas.id_cliente").
			Where("Clientes.id_usuario = ?", idUsuario).
			Order("fecha_cita, hora_inicio").
			Find(&citas).Error
	case models.RolAdminNegocio, models.RolPersonal:
		var idNegocio uint
		idNegocio, err = services.NegocioVinculado(cc.DB, idUsuario)
		if errors.Is(err, services.ErrSinNegocio) {
			c.JSON(http.StatusOK, []models.Cita{})
			return
		}
		if err == nil {
			err = cc.DB.
				Joins("JOIN Servicios ON Servicios.id_servicio = Citas.id_servicio").
				Where("Servicios.id_negocio = ?", idNegocio).
				Order("fecha_cita, hora_inicio").
				Find(&citas).Error
		}
	default:
		utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
		return
	}

	if err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, citas)
}

func (cc *CitaController) GetCitaByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cita models.Cita
	if err := cc.DB.First(&cita, "id_cita = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, cita)
}

func (cc *CitaController) CreateCita(c *gin.Context) {
	var dto struct {
		IdCliente  uint    `json:"IdCliente" binding:"required"`
		IdTecnico  uint    `json:"IdTecnico" binding:"required"`
		IdServicio uint    `json:"IdServicio" binding:"required"`
		FechaCita  string  `json:"FechaCita" binding:"required"`
		HoraInicio string  `json:"HoraInicio" binding:"required"`
		HoraFin    string  `json:"HoraFin" binding:"required"`
		Motivo     *string `json:"MotivoCancelacion"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cita := models.Cita{
		IdCliente:         dto.IdCliente,
		IdTecnico:         dto.IdTecnico,
		IdServicio:        dto.IdServicio,
		FechaCita:         dto.FechaCita,
		HoraInicio:        dto.HoraInicio,
		HoraFin:           dto.HoraFin,
		Estado:            models.CitaPendiente,
		MotivoCancelacion: dto.Motivo,
	}
	if err := cc.DB.Create(&cita).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Citas/%d", cita.IdCita), cita)
}

// UpdateCita reprograma los campos de agenda. El estado solo cambia
// por las operaciones de transición, nunca por un PUT plano.
func (cc *CitaController) UpdateCita(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dto struct {
		IdCliente  uint   `json:"IdCliente" binding:"required"`
		IdTecnico  uint   `json:"IdTecnico" binding:"required"`
		IdServicio uint   `json:"IdServicio" binding:"required"`
		FechaCita  string `json:"FechaCita" binding:"required"`
		HoraInicio string `json:"HoraInicio" binding:"required"`
		HoraFin    string `json:"HoraFin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Cita{}).
		Where("id_cita = ?", id).
		Updates(map[string]interface{}{
			"id_cliente":  dto.IdCliente,
			"id_tecnico":  dto.IdTecnico,
			"id_servicio": dto.IdServicio,
			"fecha_cita":  dto.FechaCita,
			"hora_inicio": dto.HoraInicio,
			"hora_fin":    dto.HoraFin,
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

// CambiarEstatus aplica pendiente -> confirmada|rechazada y dispara el
// push al cliente.
func (cc *CitaController) CambiarEstatus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Estatus string  `json:"estatus" binding:"required"`
		Motivo  *string `json:"motivo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cita, err := cc.Status.CambiarEstatus(id, body.Estatus, body.Motivo)
	if err != nil {
		cc.responderErrorTransicion(c, err)
		return
	}
	c.JSON(http.StatusOK, cita)
}

func (cc *CitaController) CancelCita(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Motivo *string `json:"motivo"`
	}
	_ = c.ShouldBindJSON(&body)

	if _, err := cc.Status.Cancelar(id, body.Motivo); err != nil {
		cc.responderErrorTransicion(c, err)
		return
	}
	utils.NoContent(c)
}

// ApproveCita marca la cita como atendida y devuelve la fila completa.
func (cc *CitaController) ApproveCita(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cita, err := cc.Status.Aprobar(id)
	if err != nil {
		cc.responderErrorTransicion(c, err)
		return
	}
	c.JSON(http.StatusOK, cita)
}

func (cc *CitaController) responderErrorTransicion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoEncontrado):
		utils.RespondError(c, http.StatusNotFound, errNotFound)
	case errors.Is(err, services.ErrEstatusInvalido):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrTransicionInvalida):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondInternal(c, err)
	}
}
