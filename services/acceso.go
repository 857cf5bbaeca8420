package services

import (
	"errors"

	"github.com/nearbiz/nearbiz-api/models"
	"gorm.io/gorm"
)

// Mapeo usuario -> negocios a través de la tabla Personal. Toda
// mutación de alcance "negocio" debe pasar por aquí antes de tocar filas.

// NegociosDeUsuario devuelve los ids de negocio con vínculo activo del usuario.
func NegociosDeUsuario(db *gorm.DB, idUsuario uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Personal{}).
		Where("id_usuario = ? AND estado = ?", idUsuario, true).
		Pluck("id_negocio", &ids).Error
	return ids, err
}

// PuedeAccederNegocio decide si el usuario puede actuar sobre el negocio.
// adminNearbiz pasa incondicionalmente; el resto solo sobre sus vínculos.
func PuedeAccederNegocio(db *gorm.DB, idUsuario uint, rol string, idNegocio uint) (bool, error) {
	if rol == models.RolAdminNearbiz {
		return true, nil
	}
	ids, err := NegociosDeUsuario(db, idUsuario)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == idNegocio {
			return true, nil
		}
	}
	return false, nil
}

// NegocioVinculado resuelve el negocio de un adminNegocio/personal
// desde su primer vínculo en Personal.
func NegocioVinculado(db *gorm.DB, idUsuario uint) (uint, error) {
	var p models.Personal
	err := db.Where("id_usuario = ?", idUsuario).
		Order("id_personal").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrSinNegocio
	}
	if err != nil {
		return 0, err
	}
	return p.IdNegocio, nil
}
