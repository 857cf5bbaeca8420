package database

import (
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedRoles inserta los roles base de la plataforma si aun no existen.
// Los identificadores son fijos porque el resto del sistema los referencia.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Rol{
		{IdRol: models.IdRolAdminNearbiz, Rol: models.RolAdminNearbiz},
		{IdRol: models.IdRolAdminNegocio, Rol: models.RolAdminNegocio},
		{IdRol: models.IdRolPersonal, Rol: models.RolPersonal},
		{IdRol: models.IdRolCliente, Rol: models.RolCliente},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		utils.ErrorLogger.Printf("Error al sembrar roles: %v", err)
		return err
	}

	utils.InfoLogger.Println("Roles base verificados")
	return nil
}
