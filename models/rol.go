package models

// Roles de plataforma. Datos de referencia estáticos, sembrados al arrancar.
const (
	RolAdminNearbiz = "adminNearbiz"
	RolAdminNegocio = "adminNegocio"
	RolPersonal     = "personal"
	RolCliente      = "cliente"
)

const (
	IdRolAdminNearbiz uint = 1
	IdRolAdminNegocio uint = 2
	IdRolPersonal     uint = 3
	IdRolCliente      uint = 4
)

type Rol struct {
	IdRol uint   `gorm:"column:id_rol;primaryKey" json:"IdRol"`
	Rol   string `gorm:"column:rol;type:varchar(50);unique;not null" json:"Rol"`
}

func (Rol) TableName() string { return "Roles" }
