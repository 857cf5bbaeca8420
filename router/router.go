package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/controllers"
	"github.com/nearbiz/nearbiz-api/middlewares"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/services"
	"gorm.io/gorm"
)

// Deps agrupa los colaboradores externos que se inyectan al router.
type Deps struct {
	Correo services.Correo
	Push   services.Push

	AllowedOrigins []string
}

// SetupRouter arma el árbol de rutas completo bajo /api.
func SetupRouter(db *gorm.DB, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.AllowedOrigins))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(300, 60).RateLimit())

	lifecycle := services.NewNegocioLifecycle(db, deps.Correo)
	citaStatus := services.NewCitaStatus(db, deps.Push)

	authCtrl := controllers.NewAuthController(db)
	usuarioCtrl := controllers.NewUsuarioController(db)
	negocioCtrl := controllers.NewNegocioController(db, lifecycle)
	citaCtrl := controllers.NewCitaController(db, citaStatus)
	clienteCtrl := controllers.NewClienteController(db)
	servicioCtrl := controllers.NewServicioController(db)
	categoriaCtrl := controllers.NewCategoriaController(db)
	promocionCtrl := controllers.NewPromocionController(db)
	valoracionCtrl := controllers.NewValoracionController(db)
	membresiaCtrl := controllers.NewMembresiaController(db)
	personalCtrl := controllers.NewPersonalController(db)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// ----------------------------------------------------------------
	//                      RUTAS PÚBLICAS
	// ----------------------------------------------------------------
	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/login", authCtrl.Login)
	}

	// Registro desde la app móvil (clientes).
	api.POST("/Usuarios/registroapp", usuarioCtrl.RegistroApp)

	// Navegación pública del directorio.
	api.GET("/Negocios", negocioCtrl.GetAllNegocios)
	api.GET("/Negocios/:id", negocioCtrl.GetNegocioByID)
	api.GET("/Categorias", categoriaCtrl.GetAllCategorias)
	api.GET("/Servicios", servicioCtrl.GetAllServicios)
	api.GET("/Promociones", promocionCtrl.GetAllPromociones)
	api.GET("/Valoraciones", valoracionCtrl.GetAllValoraciones)

	// Alta de negocio (solicitud pendiente de aprobación).
	api.POST("/Negocios", negocioCtrl.CreateNegocio)

	// Websocket de eventos en vivo (token por query).
	ws := api.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", controllers.EventsHandler)
	}

	// ----------------------------------------------------------------
	//                      RUTAS AUTENTICADAS
	// ----------------------------------------------------------------
	priv := api.Group("/")
	priv.Use(middlewares.AuthMiddleware())

	priv.POST("/auth/logout", authCtrl.Logout)

	// NEGOCIOS
	// MiNegocio va antes que :id para que gin no lo capture como parámetro.
	priv.GET("/Negocios/MiNegocio", negocioCtrl.GetMiNegocio)
	priv.PUT("/Negocios/MiNegocio", negocioCtrl.UpdateMiNegocio)
	priv.PUT("/Negocios/:id", negocioCtrl.UpdateNegocio)

	soloPlataforma := priv.Group("/")
	soloPlataforma.Use(middlewares.RequireRoles(models.RolAdminNearbiz))
	{
		soloPlataforma.GET("/Negocios/solicitudes", negocioCtrl.GetSolicitudes)
		soloPlataforma.PATCH("/Negocios/:id/approve", negocioCtrl.ApproveNegocio)
		soloPlataforma.PATCH("/Negocios/:id/reject", negocioCtrl.RejectNegocio)
		soloPlataforma.DELETE("/Negocios/:id", negocioCtrl.DeleteNegocio)
		soloPlataforma.PATCH("/Negocios/:id/restore", negocioCtrl.RestoreNegocio)
	}

	// CITAS
	priv.GET("/Citas", citaCtrl.GetAllCitas)
	priv.GET("/Citas/by-role", citaCtrl.GetCitasByRole)
	priv.GET("/Citas/:id", citaCtrl.GetCitaByID)
	priv.POST("/Citas", citaCtrl.CreateCita)
	priv.PUT("/Citas/:id", citaCtrl.UpdateCita)
	priv.PATCH("/Citas/:id/cancel", citaCtrl.CancelCita)
	priv.PATCH("/Citas/:id/approve", citaCtrl.ApproveCita)
	priv.PATCH("/Citas/:id/estatus", citaCtrl.CambiarEstatus)

	// USUARIOS
	priv.GET("/Usuarios", usuarioCtrl.GetAllUsuarios)
	priv.GET("/Usuarios/:id", usuarioCtrl.GetUsuarioByID)
	priv.POST("/Usuarios", usuarioCtrl.CreateUsuario)
	priv.PUT("/Usuarios/:id", usuarioCtrl.UpdateUsuario)
	priv.DELETE("/Usuarios/:id", usuarioCtrl.DeleteUsuario)
	priv.PATCH("/Usuarios/:id/restore", usuarioCtrl.RestoreUsuario)

	// CLIENTES
	priv.GET("/Clientes", clienteCtrl.GetAllClientes)
	priv.GET("/Clientes/:id", clienteCtrl.GetClienteByID)
	priv.POST("/Clientes", clienteCtrl.CreateCliente)
	priv.DELETE("/Clientes/:id", clienteCtrl.DeleteCliente)
	priv.PATCH("/Clientes/:id/restore", clienteCtrl.RestoreCliente)

	// SERVICIOS (escritura con control de acceso por negocio)
	priv.GET("/Servicios/:id", servicioCtrl.GetServicioByID)
	priv.POST("/Servicios", servicioCtrl.CreateServicio)
	priv.PUT("/Servicios/:id", servicioCtrl.UpdateServicio)
	priv.DELETE("/Servicios/:id", servicioCtrl.DeleteServicio)
	priv.PATCH("/Servicios/:id/restore", servicioCtrl.RestoreServicio)

	// CATEGORIAS
	priv.GET("/Categorias/:id", categoriaCtrl.GetCategoriaByID)
	priv.POST("/Categorias", categoriaCtrl.CreateCategoria)
	priv.PUT("/Categorias/:id", categoriaCtrl.UpdateCategoria)
	priv.DELETE("/Categorias/:id", categoriaCtrl.DeleteCategoria)
	priv.PATCH("/Categorias/:id/restore", categoriaCtrl.RestoreCategoria)

	// PROMOCIONES
	priv.GET("/Promociones/:id", promocionCtrl.GetPromocionByID)
	priv.POST("/Promociones", promocionCtrl.CreatePromocion)
	priv.PUT("/Promociones/:id", promocionCtrl.UpdatePromocion)
	priv.DELETE("/Promociones/:id", promocionCtrl.DeletePromocion)
	priv.PATCH("/Promociones/:id/restore", promocionCtrl.RestorePromocion)

	// VALORACIONES
	priv.GET("/Valoraciones/:id", valoracionCtrl.GetValoracionByID)
	priv.POST("/Valoraciones", valoracionCtrl.CreateValoracion)
	priv.POST("/Valoraciones/:id/respuesta", valoracionCtrl.Responder)
	priv.DELETE("/Valoraciones/:id", valoracionCtrl.DeleteValoracion)

	// MEMBRESIAS
	priv.GET("/Membresias", membresiaCtrl.GetAllMembresias)
	priv.GET("/Membresias/:id", membresiaCtrl.GetMembresiaByID)
	priv.POST("/Membresias", membresiaCtrl.CreateMembresia)
	priv.PUT("/Membresias/:id", membresiaCtrl.UpdateMembresia)
	priv.PATCH("/Membresias/:id/renovar", membresiaCtrl.RenovarMembresia)
	priv.DELETE("/Membresias/:id", membresiaCtrl.DeleteMembresia)
	priv.PATCH("/Membresias/:id/restore", membresiaCtrl.RestoreMembresia)

	// PERSONAL
	priv.GET("/Personal", personalCtrl.GetAllPersonal)
	priv.GET("/Personal/:id", personalCtrl.GetPersonalByID)
	priv.POST("/Personal", personalCtrl.CreatePersonal)
	priv.PUT("/Personal/:id", personalCtrl.UpdatePersonal)
	priv.DELETE("/Personal/:id", personalCtrl.DeletePersonal)
	priv.PATCH("/Personal/:id/restore", personalCtrl.RestorePersonal)

	return r
}
