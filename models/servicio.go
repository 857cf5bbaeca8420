package models

type Servicio struct {
	IdServicio      uint    `gorm:"column:id_servicio;primaryKey" json:"IdServicio"`
	IdNegocio       uint    `gorm:"column:id_negocio;not null;index" json:"IdNegocio"`
	NombreServicio  string  `gorm:"column:nombre_servicio;type:varchar(255);not null" json:"NombreServicio"`
	Descripcion     *string `gorm:"column:descripcion;type:text" json:"Descripcion"`
	Precio          float64 `gorm:"column:precio;type:decimal(10,2);not null" json:"Precio"`
	DuracionMinutos int     `gorm:"column:duracion_minutos;not null" json:"DuracionMinutos"`
	Estado          bool    `gorm:"column:estado;not null;default:true" json:"Estado"`
}

func (Servicio) TableName() string { return "Servicios" }
