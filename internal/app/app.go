package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rentspot/rental-booking-backend/internal/api"
	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/booking"
	"github.com/rentspot/rental-booking-backend/internal/customer"
	"github.com/rentspot/rental-booking-backend/internal/photo"
	"github.com/rentspot/rental-booking-backend/internal/pkg/storage"
	"github.com/rentspot/rental-booking-backend/internal/property"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Redis        api.RedisClient // nil disables the idempotency middleware
	Storage      storage.Storage
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Customer Module
	customerRepo := customer.NewPgxRepository(cfg.DBPool)
	customerService := customer.NewService(customerRepo, passwordHasher)

	// Booking repository is created first so the property module can probe
	// it for overlapping and in-progress bookings.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Property Module
	propertyRepo := property.NewPgxRepository(cfg.DBPool)
	propertyService := property.NewService(propertyRepo, bookingRepo)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, propertyService)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, propertyService, cfg.Storage)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		CustomerService: customerService,
		PropertyService: propertyService,
		BookingService:  bookingService,
		PhotoService:    photoService,
		JWTManager:      jwtManager,
		Logger:          cfg.Logger,
		Redis:           cfg.Redis,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
