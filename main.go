package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/nearbiz/nearbiz-api/config"
	"github.com/nearbiz/nearbiz-api/database"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/router"
	"github.com/nearbiz/nearbiz-api/services"
	"github.com/nearbiz/nearbiz-api/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Error de configuración: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	utils.InitJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Error al conectar a la base de datos: %v", err)
	}

	if err := migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Error en migraciones: %v", err)
	}
	if err := database.SeedRoles(db); err != nil {
		utils.ErrorLogger.Fatalf("Error al sembrar datos base: %v", err)
	}

	utils.StartBlacklistCleanup()

	mailer := services.NewMailer(&services.MailConfig{
		Host: cfg.MailHost,
		Port: cfg.MailPort,
		User: cfg.MailUser,
		Pass: cfg.MailPass,
		From: cfg.MailFrom,
	})
	if err := mailer.ValidateConfig(); err != nil {
		utils.ErrorLogger.Printf("Correo deshabilitado: %v", err)
	}

	r := router.SetupRouter(db, router.Deps{
		Correo:         mailer,
		Push:           services.NewPushSender(cfg.PushURL),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	utils.InfoLogger.Printf("NearBiz API escuchando en el puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Rol{},
		&models.Usuario{},
		&models.Categoria{},
		&models.Membresia{},
		&models.Negocio{},
		&models.Personal{},
		&models.Cliente{},
		&models.Servicio{},
		&models.Cita{},
		&models.Promocion{},
		&models.Valoracion{},
	)
}
