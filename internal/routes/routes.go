package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/config"
	"github.com/StudioBelezaApp/salon-scheduler/internal/handlers"
	infraRepo "github.com/StudioBelezaApp/salon-scheduler/internal/infra/repository"
	"github.com/StudioBelezaApp/salon-scheduler/internal/locking"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
	ucBooking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
	ucLastMinute "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/lastminute"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	handlers.SetFallbackTimezone(cfg.DefaultTimezone)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	locker := locking.New(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := notification.NewDispatcher(notification.LogSender{})

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		locker,
		notifier,
		auditDispatcher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		locker,
		notifier,
		auditDispatcher,
	)

	acceptBookingUC := ucBooking.NewAcceptBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	pendingChangeUC := ucBooking.NewPendingChange(
		bookingRepo,
		locker,
		rescheduleBookingUC,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// USE CASES — LAST-MINUTE
	// ======================================================
	lastMinuteEngine := ucLastMinute.NewEngine(bookingRepo)
	listOpeningsUC := ucLastMinute.NewListOpenings(availabilityUC, lastMinuteEngine)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	offeringHandler := handlers.NewOfferingHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	blockedTimeHandler := handlers.NewBlockedTimeHandler(db, bookingRepo, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		rescheduleBookingUC,
		acceptBookingUC,
		cancelBookingUC,
		completeBookingUC,
	)

	pendingChangeHandler := handlers.NewPendingChangeHandler(pendingChangeUC)
	lastMinuteHandler := handlers.NewLastMinuteHandler(db, listOpeningsUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createBookingUC,
		availabilityUC,
		listOpeningsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/offerings", publicHandler.ListOfferings)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/openings", publicHandler.ListOpenings)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/offerings", offeringHandler.List)
			secured.POST("/me/offerings", offeringHandler.Create)
			secured.PATCH("/me/offerings/:id", offeringHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.POST("/me/blocked-times", blockedTimeHandler.Create)
			secured.GET("/me/blocked-times", blockedTimeHandler.List)
			secured.DELETE("/me/blocked-times/:id", blockedTimeHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/period", bookingHandler.ListByPeriod)
			secured.PATCH("/me/bookings/:id/accept", bookingHandler.Accept)
			secured.PATCH("/me/bookings/:id/decline", bookingHandler.Decline)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/me/bookings/:id/resize", bookingHandler.Resize)

			// ------------------------------
			// PENDING CHANGE (DRAG & DROP)
			// ------------------------------
			secured.POST("/me/schedule-changes/propose", pendingChangeHandler.Propose)
			secured.POST("/me/schedule-changes/confirm", pendingChangeHandler.Confirm)

			// ------------------------------
			// LAST-MINUTE
			// ------------------------------
			secured.GET("/me/last-minute/settings", lastMinuteHandler.GetSettings)
			secured.PUT("/me/last-minute/settings", lastMinuteHandler.UpdateSettings)
			secured.GET("/me/last-minute/rules", lastMinuteHandler.ListRules)
			secured.PUT("/me/last-minute/rules", lastMinuteHandler.UpsertRule)
			secured.GET("/me/last-minute/openings", lastMinuteHandler.ListOpenings)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
