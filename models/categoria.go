package models

type Categoria struct {
	IdCategoria     uint   `gorm:"column:id_categoria;primaryKey" json:"IdCategoria"`
	NombreCategoria string `gorm:"column:nombre_categoria;type:varchar(255);not null" json:"NombreCategoria"`
	Estado          bool   `gorm:"column:estado;not null;default:true" json:"Estado"`
}

func (Categoria) TableName() string { return "Categorias" }
