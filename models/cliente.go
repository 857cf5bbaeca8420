package models

type Cliente struct {
	IdCliente uint     `gorm:"column:id_cliente;primaryKey" json:"IdCliente"`
	IdUsuario uint     `gorm:"column:id_usuario;not null;index" json:"IdUsuario"`
	Usuario   *Usuario `gorm:"foreignKey:IdUsuario;references:IdUsuario" json:"-"`
	Estado    bool     `gorm:"column:estado;not null;default:true" json:"Estado"`
}

func (Cliente) TableName() string { return "Clientes" }
