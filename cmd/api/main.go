package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"musicstudio/internal/config"
	"musicstudio/internal/database"
	"musicstudio/internal/middleware"
	"musicstudio/internal/modules/admin"
	"musicstudio/internal/modules/availability"
	"musicstudio/internal/modules/booking"
	"musicstudio/internal/modules/checkin"
	"musicstudio/internal/modules/notification"
	"musicstudio/internal/modules/payment"
	"musicstudio/internal/modules/policy"
	jwtsvc "musicstudio/internal/pkg/jwt"
	"musicstudio/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	checkinRepo := repository.NewCheckInRepository(db)
	eventRepo := repository.NewPaymentEventRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	hub := notification.NewHub()
	defer hub.Close()
	emailSender := notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)
	notifService := notification.NewService(userRepo, emailSender, hub)
	wsHandler := notification.NewWSHandler(hub, j)

	availabilityService := availability.NewService(bookingRepo, roomRepo, instructorRepo, availability.Config{
		OpenMinutes:        cfg.OpenMinutes,
		CloseMinutes:       cfg.CloseMinutes,
		SlotStepMinutes:    cfg.SlotStepMinutes,
		GridOpenMinutes:    cfg.GridOpenMinutes,
		GridCloseMinutes:   cfg.GridCloseMinutes,
		GridStepMinutes:    cfg.GridStepMinutes,
		MinDurationMinutes: cfg.MinDurationMinutes,
		MaxDurationMinutes: cfg.MaxDurationMinutes,
	})
	availabilityHandler := availability.NewHandler(availabilityService)

	policyEngine := policy.NewEngine(policyRepo, cfg.MinRescheduleNoticeHours)

	bookingService := booking.NewService(
		bookingRepo,
		roomRepo,
		instructorRepo,
		availabilityService,
		policyEngine,
		notifService,
		booking.Config{
			OpenMinutes:        cfg.OpenMinutes,
			CloseMinutes:       cfg.CloseMinutes,
			MinDurationMinutes: cfg.MinDurationMinutes,
			MaxDurationMinutes: cfg.MaxDurationMinutes,
		},
	)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(bookingRepo, eventRepo, notifService)
	paymentHandler := payment.NewHandler(paymentService, cfg.StripeWebhookSecret)

	checkinService := checkin.NewService(bookingRepo, checkinRepo, cfg.CheckinSecret)
	checkinHandler := checkin.NewHandler(checkinService)

	adminService := admin.NewService(bookingRepo, policyRepo)
	adminHandler := admin.NewHandler(adminService)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg, "musicstudio")

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(metrics.Handler())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			checkinHandler.RegisterRoutes(protected)
		}

		// admin
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
