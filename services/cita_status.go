package services

import (
	"errors"
	"time"

	"github.com/nearbiz/nearbiz-api/events"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
)

// Tabla cerrada de transiciones de estado de una Cita.
// confirmada, rechazada y atendida solo se alcanzan desde pendiente;
// cancelada desde cualquier estado no terminal.
var transicionesCita = map[string][]string{
	models.CitaPendiente:  {models.CitaConfirmada, models.CitaRechazada, models.CitaAtendida, models.CitaCancelada},
	models.CitaConfirmada: {models.CitaCancelada},
}

// TransicionPermitida consulta la tabla de transiciones.
func TransicionPermitida(desde, hacia string) bool {
	for _, t := range transicionesCita[desde] {
		if t == hacia {
			return true
		}
	}
	return false
}

// CitaStatus gobierna las transiciones de estado de las citas y el
// push best-effort hacia el cliente.
type CitaStatus struct {
	DB   *gorm.DB
	Push Push
}

func NewCitaStatus(db *gorm.DB, push Push) *CitaStatus {
	return &CitaStatus{DB: db, Push: push}
}

// CambiarEstatus aplica pendiente -> confirmada|rechazada. Cualquier
// otro literal es ErrEstatusInvalido; una transición no permitida por
// la tabla es ErrTransicionInvalida y deja la fila intacta.
func (s *CitaStatus) CambiarEstatus(idCita uint, estatus string, motivo *string) (*models.Cita, error) {
	if estatus != models.CitaConfirmada && estatus != models.CitaRechazada {
		return nil, ErrEstatusInvalido
	}

	cita, err := s.transicionar(idCita, estatus, map[string]interface{}{
		"estado":             estatus,
		"motivo_cancelacion": motivoValor(motivo),
	})
	if err != nil {
		return nil, err
	}

	s.notificarCliente(cita, estatus)
	events.BroadcastCitaEstatus(cita)
	return cita, nil
}

// Cancelar pasa la cita a cancelada guardando el motivo (nullable).
func (s *CitaStatus) Cancelar(idCita uint, motivo *string) (*models.Cita, error) {
	cita, err := s.transicionar(idCita, models.CitaCancelada, map[string]interface{}{
		"estado":             models.CitaCancelada,
		"motivo_cancelacion": motivoValor(motivo),
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastCitaEstatus(cita)
	return cita, nil
}

// Aprobar marca la cita como atendida, limpia el motivo de cancelación
// y estampa la fecha de actualización. Solo válido desde pendiente.
func (s *CitaStatus) Aprobar(idCita uint) (*models.Cita, error) {
	now := time.Now()
	cita, err := s.transicionar(idCita, models.CitaAtendida, map[string]interface{}{
		"estado":              models.CitaAtendida,
		"motivo_cancelacion":  nil,
		"fecha_actualizacion": &now,
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastCitaEstatus(cita)
	return cita, nil
}

func motivoValor(motivo *string) interface{} {
	if motivo == nil {
		return nil
	}
	return *motivo
}

// transicionar valida la transición contra el estado actual y aplica
// el update con guarda optimista (WHERE estado = <leído>): si otra
// petición ganó la carrera, cero filas afectadas y se responde conflicto.
func (s *CitaStatus) transicionar(idCita uint, hacia string, valores map[string]interface{}) (*models.Cita, error) {
	var cita models.Cita
	if err := s.DB.First(&cita, "id_cita = ?", idCita).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if !TransicionPermitida(cita.Estado, hacia) {
		return nil, ErrTransicionInvalida
	}

	res := s.DB.Model(&models.Cita{}).
		Where("id_cita = ? AND estado = ?", idCita, cita.Estado).
		Updates(valores)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTransicionInvalida
	}

	if err := s.DB.First(&cita, "id_cita = ?", idCita).Error; err != nil {
		return nil, err
	}
	return &cita, nil
}

// notificarCliente resuelve Cliente -> Usuario -> token push y entrega
// la notificación. Los fallos se registran y jamás llegan al caller:
// la transición ya está confirmada en la base.
func (s *CitaStatus) notificarCliente(cita *models.Cita, estatus string) {
	var usuario models.Usuario
	err := s.DB.
		Joins("JOIN Clientes ON Clientes.id_usuario = Usuarios.id_usuario").
		Where("Clientes.id_cliente = ?", cita.IdCliente).
		First(&usuario).Error
	if err != nil {
		utils.ErrorLogger.Printf("cita %d: resolviendo usuario del cliente %d: %v", cita.IdCita, cita.IdCliente, err)
		return
	}

	if usuario.Token == nil || *usuario.Token == "" {
		return
	}

	titulo := "Cita confirmada"
	cuerpo := "Tu cita ha sido confirmada. ¡Te esperamos!"
	if estatus == models.CitaRechazada {
		titulo = "Cita rechazada"
		cuerpo = "Lo sentimos, tu cita fue rechazada."
	}

	err = s.Push.Enviar(*usuario.Token, titulo, cuerpo, map[string]interface{}{
		"idCita":    cita.IdCita,
		"idUsuario": usuario.IdUsuario,
		"estatus":   estatus,
		"tipo":      "cita_estatus",
	})
	if err != nil {
		utils.ErrorLogger.Printf("cita %d: push a usuario %d: %v", cita.IdCita, usuario.IdUsuario, err)
	}
}
