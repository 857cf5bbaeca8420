package models

import "time"

type Usuario struct {
	IdUsuario      uint      `gorm:"column:id_usuario;primaryKey" json:"IdUsuario"`
	Nombre         string    `gorm:"column:nombre;type:varchar(255);not null" json:"Nombre"`
	Email          string    `gorm:"column:email;type:varchar(255);unique;not null" json:"Email"`
	ContrasenaHash string    `gorm:"column:contrasena_hash;type:varchar(255);not null" json:"-"`
	IdRol          uint      `gorm:"column:id_rol;not null" json:"IdRol"`
	Rol            *Rol      `gorm:"foreignKey:IdRol;references:IdRol" json:"-"`
	FechaRegistro  time.Time `gorm:"column:fecha_registro;autoCreateTime" json:"FechaRegistro"`
	Estado         bool      `gorm:"column:estado;not null;default:true" json:"Estado"`
	// Token guarda el último JWT emitido; la app móvil lo usa como
	// correlación para entregar notificaciones push.
	Token *string `gorm:"column:token;type:text" json:"Token"`
}

func (Usuario) TableName() string { return "Usuarios" }
