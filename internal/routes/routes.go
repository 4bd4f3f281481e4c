package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/handlers"
	infraRepo "github.com/SereniteSpa01/spa-scheduler/internal/infra/repository"
	"github.com/SereniteSpa01/spa-scheduler/internal/lock"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	ucBooking "github.com/SereniteSpa01/spa-scheduler/internal/usecase/booking"
	ucSchedule "github.com/SereniteSpa01/spa-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker lock.Locker,
	broker *events.Broker,
	hub *events.Hub,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		schedulingRepo,
		auditDispatcher,
		broker,
		cfg.Timezone,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		schedulingRepo,
		auditDispatcher,
		broker,
		cfg.Timezone,
	)

	moveBookingUC := ucBooking.NewMoveBooking(
		schedulingRepo,
		auditDispatcher,
		broker,
		cfg.Timezone,
	)

	changeStatusUC := ucBooking.NewChangeStatus(
		schedulingRepo,
		auditDispatcher,
		broker,
		cfg.Timezone,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		schedulingRepo,
		auditDispatcher,
		broker,
	)

	moveBreakUC := ucBooking.NewMoveBreak(schedulingRepo, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — HORAIRE
	// ======================================================
	generatePeriodUC := ucSchedule.NewGeneratePeriod(
		schedulingRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	calendarHandler := handlers.NewCalendarHandler(db, cfg)
	practitionerHandler := handlers.NewPractitionerHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		cfg,
		locker,
		createBookingUC,
		updateBookingUC,
		moveBookingUC,
		changeStatusUC,
		deleteBookingUC,
	)

	breakHandler := handlers.NewBreakHandler(db, moveBreakUC)
	blockHandler := handlers.NewBlockHandler(db, cfg)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		cfg,
		generatePeriodUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	eventsHandler := handlers.NewEventsHandler(hub)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVÉE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// CALENDRIER
			// ------------------------------
			secured.GET("/me/calendar", calendarHandler.View)

			secured.GET("/me/practitioners", practitionerHandler.List)
			secured.GET("/me/services", serviceHandler.ListCatalog)
			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// RENDEZ-VOUS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.List)
			secured.PATCH("/me/bookings/:id", bookingHandler.Update)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.ChangeStatus)
			secured.PATCH("/me/bookings/:id/arrived", bookingHandler.Arrived)
			secured.PATCH("/me/bookings/:id/move", bookingHandler.Move)
			secured.DELETE("/me/bookings/:id", bookingHandler.Delete)

			// ------------------------------
			// PAUSES
			// ------------------------------
			secured.POST("/me/breaks", breakHandler.Create)
			secured.GET("/me/breaks", breakHandler.List)
			secured.PATCH("/me/breaks/:id", breakHandler.Update)
			secured.PATCH("/me/breaks/:id/move", breakHandler.Move)
			secured.DELETE("/me/breaks/:id", breakHandler.Delete)

			// ------------------------------
			// BLOCAGES
			// ------------------------------
			secured.POST("/me/blocks", blockHandler.Create)
			secured.GET("/me/blocks", blockHandler.List)
			secured.DELETE("/me/blocks/day", blockHandler.UnblockDay)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			// ------------------------------
			// DISPONIBILITÉS
			// ------------------------------
			secured.GET("/me/availability/weekly", availabilityHandler.GetWeekly)
			secured.PUT("/me/availability/weekly", availabilityHandler.UpdateWeekly)
			secured.PATCH("/me/availability/day/:id", availabilityHandler.UpdateDay)
			secured.POST("/me/availability/generate", availabilityHandler.GeneratePeriod)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	// ======================================================
	// 🔌 TEMPS RÉEL
	// ======================================================
	ws := r.Group("/ws")
	ws.Use(middleware.AuthMiddleware(cfg))
	{
		ws.GET("/calendar", eventsHandler.Subscribe)
	}
}
