package router

import (
	"time"

	"sivitb/config"
	"sivitb/internal/domain"
	"sivitb/internal/handler"
	"sivitb/internal/middleware"
	"sivitb/internal/repository"
	"sivitb/internal/service"
	"sivitb/internal/ws"
	"sivitb/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	usuarioRepo := repository.NewUsuarioRepository(db)
	establecimientoRepo := repository.NewEstablecimientoRepository(db)
	casoRepo := repository.NewCasoRepository(db)
	contactoRepo := repository.NewContactoRepository(db)
	examenRepo := repository.NewExamenRepository(db)
	tptRepo := repository.NewTPTRepository(db)
	derivacionRepo := repository.NewDerivacionRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)
	auditRepo := repository.NewAuditoriaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, usuarioRepo)
	notifSvc := service.NewNotificacionService(notificacionRepo, usuarioRepo, hub)
	derivacionSvc := service.NewDerivacionService(derivacionRepo, contactoRepo, establecimientoRepo, notifSvc)
	alertaSvc := service.NewAlertaService(&cfg.Alertas, contactoRepo, tptRepo, derivacionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo)
	usuarioHandler := handler.NewUsuarioHandler(usuarioRepo, establecimientoRepo)
	establecimientoHandler := handler.NewEstablecimientoHandler(establecimientoRepo)
	casoHandler := handler.NewCasoHandler(casoRepo, establecimientoRepo)
	contactoHandler := handler.NewContactoHandler(contactoRepo, casoRepo)
	examenHandler := handler.NewExamenHandler(examenRepo, contactoRepo)
	tptHandler := handler.NewTPTHandler(tptRepo, contactoRepo)
	derivacionHandler := handler.NewDerivacionHandler(derivacionSvc, auditRepo)
	alertaHandler := handler.NewAlertaHandler(alertaSvc)
	notificacionHandler := handler.NewNotificacionHandler(notificacionRepo)
	dashboardHandler := handler.NewDashboardHandler(reporteRepo, auditRepo)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)
	clinicoMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleMedico, domain.RoleEnfermero)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/register", authMw, adminMw, authHandler.Register)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		api.GET("/usuarios/me", authMw, usuarioHandler.Me)
		api.GET("/usuarios", authMw, adminMw, usuarioHandler.List)
		api.PUT("/usuarios/:id", authMw, adminMw, usuarioHandler.Update)

		establecimientos := api.Group("/establecimientos")
		establecimientos.Use(authMw)
		{
			establecimientos.GET("", establecimientoHandler.List)
			establecimientos.GET("/:id", establecimientoHandler.GetByID)
			establecimientos.POST("", adminMw, establecimientoHandler.Create)
			establecimientos.PUT("/:id", adminMw, establecimientoHandler.Update)
			establecimientos.DELETE("/:id", adminMw, establecimientoHandler.Delete)
		}

		casos := api.Group("/casos")
		casos.Use(authMw, clinicoMw)
		{
			casos.GET("", casoHandler.List)
			casos.GET("/:id", casoHandler.GetByID)
			casos.GET("/:id/contactos", contactoHandler.ListByCaso)
			casos.POST("", casoHandler.Create)
			casos.PUT("/:id", casoHandler.Update)
			casos.DELETE("/:id", adminMw, casoHandler.Delete)
		}

		contactos := api.Group("/contactos")
		contactos.Use(authMw, clinicoMw)
		{
			contactos.GET("/:id", contactoHandler.GetByID)
			contactos.GET("/:id/examenes", examenHandler.ListByContacto)
			contactos.GET("/:id/tpt", tptHandler.ListByContacto)
			contactos.POST("", contactoHandler.Create)
			contactos.PUT("/:id", contactoHandler.Update)
			contactos.DELETE("/:id", adminMw, contactoHandler.Delete)
		}

		examenes := api.Group("/examenes")
		examenes.Use(authMw, clinicoMw)
		{
			examenes.GET("/:id", examenHandler.GetByID)
			examenes.POST("", examenHandler.Create)
			examenes.PUT("/:id", examenHandler.Update)
			examenes.DELETE("/:id", adminMw, examenHandler.Delete)
		}

		tpt := api.Group("/tpt")
		tpt.Use(authMw, clinicoMw)
		{
			tpt.GET("", tptHandler.List)
			tpt.GET("/:id", tptHandler.GetByID)
			tpt.POST("", tptHandler.Create)
			tpt.PUT("/:id", tptHandler.Update)
			tpt.PUT("/:id/control", tptHandler.RegistrarControl)
			tpt.DELETE("/:id", adminMw, tptHandler.Delete)
		}

		derivaciones := api.Group("/derivaciones-transferencias")
		derivaciones.Use(authMw, clinicoMw)
		{
			derivaciones.GET("", derivacionHandler.List)
			derivaciones.GET("/:id", derivacionHandler.GetByID)
			derivaciones.GET("/contacto/:contactoId", derivacionHandler.GetByContacto)
			derivaciones.POST("", derivacionHandler.Create)
			derivaciones.PUT("/:id", derivacionHandler.Update)
			derivaciones.PUT("/:id/aceptar", derivacionHandler.Aceptar)
			derivaciones.PUT("/:id/rechazar", derivacionHandler.Rechazar)
			derivaciones.PUT("/:id/completar", derivacionHandler.Completar)
			derivaciones.DELETE("/:id", adminMw, derivacionHandler.Delete)
		}

		api.GET("/alertas", authMw, clinicoMw, alertaHandler.List)
		api.GET("/notificaciones", authMw, notificacionHandler.List)
		api.PUT("/notificaciones/:id/leida", authMw, notificacionHandler.MarcarLeida)
		api.GET("/dashboard", authMw, clinicoMw, dashboardHandler.Stats)
		api.GET("/auditoria", authMw, adminMw, dashboardHandler.Auditoria)
		api.POST("/uploads/examenes", authMw, clinicoMw, uploadHandler.UploadExamen)
	}

	r.GET("/ws/notificaciones", ws.UpgradeNotificacionesWS(&cfg.JWT, hub))

	return r
}
