package models

import "time"

// Personal vincula un Usuario con un Negocio. Es la única fuente de
// "a qué negocio pertenece este usuario".
type Personal struct {
	IdPersonal    uint      `gorm:"column:id_personal;primaryKey" json:"IdPersonal"`
	IdUsuario     uint      `gorm:"column:id_usuario;not null;index" json:"IdUsuario"`
	Usuario       *Usuario  `gorm:"foreignKey:IdUsuario;references:IdUsuario" json:"-"`
	IdNegocio     uint      `gorm:"column:id_negocio;not null;index" json:"IdNegocio"`
	RolEnNegocio  string    `gorm:"column:rol_en_negocio;type:varchar(50);not null" json:"RolEnNegocio"`
	FechaRegistro time.Time `gorm:"column:fecha_registro;autoCreateTime" json:"FechaRegistro"`
	Estado        bool      `gorm:"column:estado;not null;default:true" json:"Estado"`
}

func (Personal) TableName() string { return "Personal" }

// Etiquetas de rol dentro del negocio.
const (
	RolEnNegocioAdministrador = "Administrador"
	RolEnNegocioDueno         = "Dueño"
)
