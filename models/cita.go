package models

import "time"

// Estados posibles de una cita. La tabla de transiciones permitidas
// vive en services.
const (
	CitaPendiente  = "pendiente"
	CitaConfirmada = "confirmada"
	CitaRechazada  = "rechazada"
	CitaCancelada  = "cancelada"
	CitaAtendida   = "atendida"
)

type Cita struct {
	IdCita     uint   `gorm:"column:id_cita;primaryKey" json:"IdCita"`
	IdCliente  uint   `gorm:"column:id_cliente;not null;index" json:"IdCliente"`
	IdTecnico  uint   `gorm:"column:id_tecnico;not null;index" json:"IdTecnico"`
	IdServicio uint   `gorm:"column:id_servicio;not null;index" json:"IdServicio"`
	FechaCita  string `gorm:"column:fecha_cita;type:date;not null" json:"FechaCita"`
	HoraInicio string `gorm:"column:hora_inicio;type:varchar(8);not null" json:"HoraInicio"`
	HoraFin    string `gorm:"column:hora_fin;type:varchar(8);not null" json:"HoraFin"`
	Estado     string `gorm:"column:estado;type:varchar(20);not null;default:'pendiente'" json:"Estado"`
	// MotivoCancelacion guarda también el motivo de rechazo.
	MotivoCancelacion  *string    `gorm:"column:motivo_cancelacion;type:text" json:"MotivoCancelacion"`
	FechaActualizacion *time.Time `gorm:"column:fecha_actualizacion" json:"FechaActualizacion"`
}

func (Cita) TableName() string { return "Citas" }

// EsTerminal indica si el estado no admite más transiciones.
func EsEstadoTerminal(estado string) bool {
	switch estado {
	case CitaRechazada, CitaCancelada, CitaAtendida:
		return true
	}
	return false
}
