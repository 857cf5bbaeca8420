package models

import "time"

type Membresia struct {
	IdMembresia      uint       `gorm:"column:id_membresia;primaryKey" json:"IdMembresia"`
	PrecioMensual    float64    `gorm:"column:precio_mensual;type:decimal(10,2);not null" json:"PrecioMensual"`
	IdNegocio        uint       `gorm:"column:id_negocio;not null;index" json:"IdNegocio"`
	Estado           bool       `gorm:"column:estado;not null;default:true" json:"Estado"`
	UltimaRenovacion *time.Time `gorm:"column:ultima_renovacion" json:"UltimaRenovacion"`
}

func (Membresia) TableName() string { return "Membresias" }
