package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/middlewares"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/services"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

type NegocioController struct {
	DB        *gorm.DB
	Lifecycle *services.NegocioLifecycle
}

func NewNegocioController(db *gorm.DB, lifecycle *services.NegocioLifecycle) *NegocioController {
	return &NegocioController{DB: db, Lifecycle: lifecycle}
}

// negocioDTO son los campos descriptivos editables de un negocio.
type negocioDTO struct {
	IdCategoria      uint     `json:"IdCategoria" binding:"required"`
	IdMembresia      *uint    `json:"IdMembresia"`
	Nombre           string   `json:"Nombre" binding:"required"`
	Direccion        *string  `json:"Direccion"`
	CoordenadasLat   *float64 `json:"CoordenadasLat"`
	CoordenadasLng   *float64 `json:"CoordenadasLng"`
	Descripcion      *string  `json:"Descripcion"`
	TelefonoContacto *string  `json:"TelefonoContacto"`
	CorreoContacto   *string  `json:"CorreoContacto"`
	HorarioAtencion  *string  `json:"HorarioAtencion"`
	LinkUrl          *string  `json:"LinkUrl"`
}

func (dto *negocioDTO) aModelo() models.Negocio {
	return models.Negocio{
		IdCategoria:      dto.IdCategoria,
		IdMembresia:      dto.IdMembresia,
		Nombre:           dto.Nombre,
		Direccion:        dto.Direccion,
		CoordenadasLat:   dto.CoordenadasLat,
		CoordenadasLng:   dto.CoordenadasLng,
		Descripcion:      dto.Descripcion,
		TelefonoContacto: dto.TelefonoContacto,
		CorreoContacto:   dto.CorreoContacto,
		HorarioAtencion:  dto.HorarioAtencion,
		LinkUrl:          dto.LinkUrl,
	}
}

func (dto *negocioDTO) camposUpdate() map[string]interface{} {
	return map[string]interface{}{
		"id_categoria":      dto.IdCategoria,
		"id_membresia":      dto.IdMembresia,
		"nombre":            dto.Nombre,
		"direccion":         dto.Direccion,
		"coordenadas_lat":   dto.CoordenadasLat,
		"coordenadas_lng":   dto.CoordenadasLng,
		"descripcion":       dto.Descripcion,
		"telefono_contacto": dto.TelefonoContacto,
		"correo_contacto":   dto.CorreoContacto,
		"horario_atencion":  dto.HorarioAtencion,
		"linkUrl":           dto.LinkUrl,
	}
}

func (nc *NegocioController) GetAllNegocios(c *gin.Context) {
	q := nc.DB.Order("id_negocio")
	if !includeInactive(c) {
		q = q.Where("estado = ?", true)
	}

	var negocios []models.Negocio
	if err := q.Find(&negocios).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, negocios)
}

// GetSolicitudes lista los negocios pendientes de aprobación.
func (nc *NegocioController) GetSolicitudes(c *gin.Context) {
	var negocios []models.Negocio
	if err := nc.DB.Where("estado = ?", false).Order("id_negocio").Find(&negocios).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, negocios)
}

func (nc *NegocioController) GetNegocioByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var negocio models.Negocio
	if err := nc.DB.First(&negocio, "id_negocio = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, negocio)
}

// CreateNegocio es el alta de negocio: inserta el negocio (inactivo),
// su usuario administrador y el vínculo Personal como una unidad.
func (nc *NegocioController) CreateNegocio(c *gin.Context) {
	var dto struct {
		negocioDTO
		AdminNombre     string `json:"AdminNombre" binding:"required"`
		AdminEmail      string `json:"AdminEmail" binding:"required,email"`
		AdminContrasena string `json:"AdminContrasena" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	negocio, err := nc.Lifecycle.Crear(&services.SolicitudNegocio{
		Negocio:         dto.aModelo(),
		AdminNombre:     dto.AdminNombre,
		AdminEmail:      dto.AdminEmail,
		AdminContrasena: dto.AdminContrasena,
	})
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("/api/Negocios/%d", negocio.IdNegocio), negocio)
}

func (nc *NegocioController) UpdateNegocio(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
		return
	}
	permitido, err := services.PuedeAccederNegocio(nc.DB, idUsuario, rol, id)
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}
	if !permitido {
		utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
		return
	}

	var dto negocioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := nc.DB.Model(&models.Negocio{}).
		Where("id_negocio = ?", id).
		Updates(dto.camposUpdate())
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

func (nc *NegocioController) DeleteNegocio(c *gin.Context) {
	nc.operacionLifecycle(c, nc.Lifecycle.Eliminar)
}

func (nc *NegocioController) RestoreNegocio(c *gin.Context) {
	nc.operacionLifecycle(c, nc.Lifecycle.Restaurar)
}

func (nc *NegocioController) ApproveNegocio(c *gin.Context) {
	nc.operacionLifecycle(c, nc.Lifecycle.Aprobar)
}

func (nc *NegocioController) RejectNegocio(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Motivo string `json:"motivo"`
	}
	// El motivo es opcional; cuerpo vacío también es válido.
	_ = c.ShouldBindJSON(&body)

	if err := nc.Lifecycle.Rechazar(id, body.Motivo); err != nil {
		if errors.Is(err, services.ErrNoEncontrado) {
			utils.RespondError(c, http.StatusNotFound, errNotFound)
			return
		}
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

func (nc *NegocioController) operacionLifecycle(c *gin.Context, op func(uint) error) {
	id, err := idParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := op(id); err != nil {
		if errors.Is(err, services.ErrNoEncontrado) {
			utils.RespondError(c, http.StatusNotFound, errNotFound)
			return
		}
		utils.RespondInternal(c, err)
		return
	}
	utils.NoContent(c)
}

// GetMiNegocio resuelve el negocio del usuario autenticado vía Personal.
// adminNearbiz puede consultar cualquiera pasando ?idNegocio=N.
func (nc *NegocioController) GetMiNegocio(c *gin.Context) {
	id, err := nc.resolverMiNegocio(c, c.Query("idNegocio"))
	if err != nil {
		return // resolverMiNegocio ya respondió
	}

	var negocio models.Negocio
	if err := nc.DB.First(&negocio, "id_negocio = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, negocio)
}

func (nc *NegocioController) UpdateMiNegocio(c *gin.Context) {
	var dto struct {
		negocioDTO
		IdNegocio uint `json:"IdNegocio"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	explicito := ""
	if dto.IdNegocio != 0 {
		explicito = strconv.FormatUint(uint64(dto.IdNegocio), 10)
	}
	id, err := nc.resolverMiNegocio(c, explicito)
	if err != nil {
		return
	}

	res := nc.DB.Model(&models.Negocio{}).
		Where("id_negocio = ?", id).
		Updates(dto.camposUpdate())
	if res.Error != nil {
		utils.RespondInternal(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("Negocio no encontrado"))
		return
	}

	var negocio models.Negocio
	if err := nc.DB.First(&negocio, "id_negocio = ?", id).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Actualizado correctamente", "negocio": negocio})
}

// resolverMiNegocio decide el id de negocio objetivo según el rol:
// adminNegocio/personal usan su vínculo en Personal; adminNearbiz debe
// indicar el id explícito. Responde el error HTTP por sí mismo.
func (nc *NegocioController) resolverMiNegocio(c *gin.Context, explicito string) (uint, error) {
	idUsuario, rol, ok := middlewares.IdentidadDe(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("No autenticado"))
		return 0, errors.New("no autenticado")
	}

	switch rol {
	case models.RolAdminNegocio, models.RolPersonal:
		id, err := services.NegocioVinculado(nc.DB, idUsuario)
		if errors.Is(err, services.ErrSinNegocio) {
			utils.RespondError(c, http.StatusNotFound, err)
			return 0, err
		}
		if err != nil {
			utils.RespondInternal(c, err)
			return 0, err
		}
		return id, nil
	case models.RolAdminNearbiz:
		if explicito == "" {
			utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
			return 0, errors.New("falta idNegocio")
		}
		id, err := strconv.ParseUint(explicito, 10, 32)
		if err != nil || id == 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("idNegocio inválido"))
			return 0, errors.New("idNegocio inválido")
		}
		return uint(id), nil
	default:
		utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
		return 0, errors.New("rol no autorizado")
	}
}
