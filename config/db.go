package config

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB abre el pool de conexiones MySQL. La instancia devuelta se
// inyecta explícitamente en cada controller y service; no hay acceso
// global al pool.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}
