package models

import "time"

type Valoracion struct {
	IdValoracion uint      `gorm:"column:id_valoracion;primaryKey" json:"IdValoracion"`
	IdNegocio    uint      `gorm:"column:id_negocio;not null;index" json:"IdNegocio"`
	IdCliente    uint      `gorm:"column:id_cliente;not null;index" json:"IdCliente"`
	Comentario   *string   `gorm:"column:comentario;type:text" json:"Comentario"`
	Calificacion *int      `gorm:"column:calificacion" json:"Calificacion"`
	Respuesta    *string   `gorm:"column:respuesta;type:text" json:"Respuesta"`
	Fecha        time.Time `gorm:"column:fecha;autoCreateTime" json:"Fecha"`
}

func (Valoracion) TableName() string { return "Valoraciones" }
