package models

type Negocio struct {
	IdNegocio        uint     `gorm:"column:id_negocio;primaryKey" json:"IdNegocio"`
	IdCategoria      uint     `gorm:"column:id_categoria;not null" json:"IdCategoria"`
	IdMembresia      *uint    `gorm:"column:id_membresia" json:"IdMembresia"`
	Nombre           string   `gorm:"column:nombre;type:varchar(255);not null" json:"Nombre"`
	Direccion        *string  `gorm:"column:direccion;type:varchar(255)" json:"Direccion"`
	CoordenadasLat   *float64 `gorm:"column:coordenadas_lat" json:"CoordenadasLat"`
	CoordenadasLng   *float64 `gorm:"column:coordenadas_lng" json:"CoordenadasLng"`
	Descripcion      *string  `gorm:"column:descripcion;type:text" json:"Descripcion"`
	TelefonoContacto *string  `gorm:"column:telefono_contacto;type:varchar(30)" json:"TelefonoContacto"`
	CorreoContacto   *string  `gorm:"column:correo_contacto;type:varchar(255)" json:"CorreoContacto"`
	// HorarioAtencion es un blob JSON con los horarios por día.
	HorarioAtencion *string `gorm:"column:horario_atencion;type:text" json:"HorarioAtencion"`
	Estado          bool    `gorm:"column:estado;not null;default:false" json:"Estado"`
	LinkUrl         *string `gorm:"column:linkUrl;type:varchar(500)" json:"LinkUrl"`
}

func (Negocio) TableName() string { return "Negocios" }
