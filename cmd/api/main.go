package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"rentnest/internal/config"
	"rentnest/internal/database"
	"rentnest/internal/domain"
	"rentnest/internal/middleware"
	"rentnest/internal/modules/admin"
	"rentnest/internal/modules/auth"
	"rentnest/internal/modules/booking"
	"rentnest/internal/modules/catalog"
	"rentnest/internal/modules/payment"
	"rentnest/internal/modules/subscription"
	"rentnest/internal/notification"
	jwtsvc "rentnest/internal/pkg/jwt"
	"rentnest/internal/pkg/upload"
	"rentnest/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.PropertyUnlock{},
		&domain.BookingRequest{},
		&domain.Payment{},
		&domain.Rental{},
		&domain.CreditPackage{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	requestRepo := repository.NewBookingRequestRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	rentalRepo := repository.NewRentalRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var notifs notification.Sender = notification.LogSender{}
	if cfg.MailjetAPIKey != "" && cfg.MailjetSecretKey != "" {
		notifs = notification.NewMailjetSender(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailFromEmail, cfg.MailFromName)
	}

	var uploader payment.Uploader
	if cfg.CloudinaryCloudName != "" {
		cld, err := upload.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatal(err)
		}
		uploader = cld
	} else {
		log.Println("cloudinary not configured, receipts will not be uploaded")
	}

	var propertyCache *catalog.PropertyCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		propertyCache = catalog.NewPropertyCache(rdb, 0)
	}

	gateway := payment.NewClient(cfg.GatewayStoreID, cfg.GatewayPassword, cfg.GatewayBaseURL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(db, propertyCache)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(propertyRepo, propertyCache)
	adminHandler := admin.NewHandler(adminService)

	bookingService := booking.NewService(requestRepo, propertyRepo, userRepo, notifs)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(payment.Deps{
		DB:           db,
		Payments:     paymentRepo,
		Requests:     requestRepo,
		Properties:   propertyRepo,
		Users:        userRepo,
		Rentals:      rentalRepo,
		Gateway:      gateway,
		Notifs:       notifs,
		Uploader:     uploader,
		Cache:        propertyCache,
		CallbackBase: cfg.CallbackBaseURL,
	})
	paymentHandler := payment.NewHandler(paymentService)

	subscriptionService := subscription.NewService(db, paymentRepo, userRepo, gateway, notifs, cfg.CallbackBaseURL)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// Gateway callbacks arrive unauthenticated at the root, outside the
	// versioned API group.
	paymentHandler.RegisterCallbackRoutes(r)
	subscriptionHandler.RegisterCallbackRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			subscriptionHandler.RegisterUserRoutes(protected)

			tenant := protected.Group("/")
			tenant.Use(middleware.RequireRole(string(domain.RoleTenant)))
			{
				bookingHandler.RegisterTenantRoutes(tenant.Group("/bookings"))
				catalogHandler.RegisterTenantRoutes(tenant)
				paymentHandler.RegisterTenantRoutes(tenant)
			}

			owner := protected.Group("/")
			owner.Use(middleware.RequireRole(string(domain.RoleOwner)))
			{
				bookingHandler.RegisterOwnerRoutes(owner.Group("/bookings"))
				catalogHandler.RegisterOwnerRoutes(owner)
			}

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	addr := ":" + getEnv("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
