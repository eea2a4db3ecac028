package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/booking"
	bookingHttp "github.com/rentspot/rental-booking-backend/internal/booking/http"
	"github.com/rentspot/rental-booking-backend/internal/customer"
	customerHttp "github.com/rentspot/rental-booking-backend/internal/customer/http"
	"github.com/rentspot/rental-booking-backend/internal/photo"
	photoHttp "github.com/rentspot/rental-booking-backend/internal/photo/http"
	"github.com/rentspot/rental-booking-backend/internal/property"
	propertyHttp "github.com/rentspot/rental-booking-backend/internal/property/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	CustomerService customer.Service
	PropertyService property.Service
	BookingService  booking.Service
	PhotoService    photo.Service
	JWTManager      *auth.JWTManager

	Logger *zap.Logger

	// Redis enables the idempotency middleware when non-nil.
	Redis RedisClient
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Idempotency-Key"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Retried booking mutations are deduplicated when Redis is available.
	// Mounted after auth so the request hash covers the customer.
	var idempotencyMiddleware gin.HandlerFunc
	if cfg.Redis != nil {
		idempotencyMiddleware = Idempotency(cfg.Redis)
	}

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	customerHandler := customerHttp.NewHandler(cfg.CustomerService, cfg.JWTManager)
	propertyHandler := propertyHttp.NewHandler(cfg.PropertyService, cfg.BookingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.PropertyService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		customerHttp.RegisterRoutes(v1, customerHandler, authMiddleware)
		propertyHttp.RegisterRoutes(v1, propertyHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, idempotencyMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
