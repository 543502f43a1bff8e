package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/health-first/health-first-server/internal/audit"
	"github.com/health-first/health-first-server/internal/config"
	"github.com/health-first/health-first-server/internal/email"
	"github.com/health-first/health-first-server/internal/handlers"
	infraRepo "github.com/health-first/health-first-server/internal/infra/repository"
	"github.com/health-first/health-first-server/internal/middleware"
	"github.com/health-first/health-first-server/internal/ratelimit"
	"github.com/health-first/health-first-server/internal/token"
	ucAvailability "github.com/health-first/health-first-server/internal/usecase/availability"
	ucBooking "github.com/health-first/health-first-server/internal/usecase/booking"
	ucSearch "github.com/health-first/health-first-server/internal/usecase/search"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, limiter ratelimit.Limiter) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailer := email.NewLogSender()

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	refreshStore := token.NewRefreshStore(db, cfg.RefreshTokenTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	createAvailabilityUC := ucAvailability.NewCreate(scheduleRepo, auditDispatcher)
	listAvailabilityUC := ucAvailability.NewList(scheduleRepo)
	updateAvailabilityUC := ucAvailability.NewUpdate(scheduleRepo, auditDispatcher)
	deleteAvailabilityUC := ucAvailability.NewDelete(scheduleRepo, auditDispatcher)

	searchUC := ucSearch.NewSearch(scheduleRepo)

	bookUC := ucBooking.NewBook(scheduleRepo, auditDispatcher)
	cancelUC := ucBooking.NewCancel(scheduleRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewList(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	providerHandler := handlers.NewProviderHandler(db, mailer)
	patientHandler := handlers.NewPatientHandler(db, mailer)
	authHandler := handlers.NewAuthHandler(db, cfg, issuer, refreshStore)

	availabilityHandler := handlers.NewAvailabilityHandler(
		createAvailabilityUC,
		listAvailabilityUC,
		updateAvailabilityUC,
		deleteAvailabilityUC,
	)
	searchHandler := handlers.NewSearchHandler(searchUC)
	appointmentHandler := handlers.NewAppointmentHandler(bookUC, cancelUC, listBookingsUC, mailer)

	throttled := middleware.RateLimit(limiter)
	authed := middleware.AuthMiddleware(issuer)
	providerOnly := middleware.RequireUserType(token.UserProvider)
	patientOnly := middleware.RequireUserType(token.UserPatient)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// REGISTRATION (public)
		// ------------------------------
		api.POST("/provider/register", throttled, providerHandler.Register)
		api.GET("/provider/specializations", providerHandler.Specializations)
		api.GET("/provider/check-email", providerHandler.CheckEmail)
		api.GET("/provider/check-phone", providerHandler.CheckPhone)
		api.GET("/provider/check-license", providerHandler.CheckLicense)
		api.GET("/providers", providerHandler.List)

		api.POST("/patient/register", throttled, patientHandler.Register)
		api.GET("/patient/check-email", patientHandler.CheckEmail)
		api.GET("/patient/check-phone", patientHandler.CheckPhone)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", throttled, authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/logout-all", authed, authHandler.LogoutAll)

		// ------------------------------
		// SEARCH (public)
		// ------------------------------
		api.GET("/availability/search", throttled, searchHandler.SearchGet)
		api.POST("/availability/search", throttled, searchHandler.SearchPost)
		api.GET("/availability/appointment-types", availabilityHandler.AppointmentTypes)

		// Patients browse a provider's calendar without logging in.
		api.GET("/provider/:providerId/availability", availabilityHandler.List)

		// ------------------------------
		// PROVIDER AVAILABILITY (private)
		// ------------------------------
		providerAPI := api.Group("/provider", authed, providerOnly)
		{
			providerAPI.POST("/availability", availabilityHandler.Create)
			providerAPI.PUT("/availability/:availabilityId", availabilityHandler.Update)
			providerAPI.DELETE("/availability/:availabilityId", availabilityHandler.Delete)
		}

		// ------------------------------
		// APPOINTMENTS (private)
		// ------------------------------
		appointments := api.Group("/appointments", authed)
		{
			appointments.POST("", patientOnly, appointmentHandler.Book)
			appointments.GET("", appointmentHandler.List)
			appointments.PATCH("/:slotId/cancel", patientOnly, appointmentHandler.Cancel)
		}
	}
}
