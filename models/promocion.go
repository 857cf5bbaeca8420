package models

type Promocion struct {
	IdPromocion uint    `gorm:"column:id_promocion;primaryKey" json:"IdPromocion"`
	IdNegocio   uint    `gorm:"column:id_negocio;not null;index" json:"IdNegocio"`
	Titulo      string  `gorm:"column:titulo;type:varchar(255);not null" json:"Titulo"`
	Descripcion *string `gorm:"column:descripcion;type:text" json:"Descripcion"`
	FechaInicio string  `gorm:"column:fecha_inicio;type:date;not null" json:"FechaInicio"`
	FechaFin    string  `gorm:"column:fecha_fin;type:date;not null" json:"FechaFin"`
	Estado      bool    `gorm:"column:estado;not null;default:true" json:"Estado"`
}

func (Promocion) TableName() string { return "Promociones" }
