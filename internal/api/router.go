package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shareloop/rental-backend/internal/auth"
	"github.com/shareloop/rental-backend/internal/booking"
	bookingHttp "github.com/shareloop/rental-backend/internal/booking/http"
	"github.com/shareloop/rental-backend/internal/item"
	itemHttp "github.com/shareloop/rental-backend/internal/item/http"
	"github.com/shareloop/rental-backend/internal/photo"
	photoHttp "github.com/shareloop/rental-backend/internal/photo/http"
	"github.com/shareloop/rental-backend/internal/user"
	userHttp "github.com/shareloop/rental-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	PhotoService   photo.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger logs request information; Recovery captures panics and
	// returns a 500 instead of crashing the server.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		itemHttp.RegisterRoutes(v1, itemHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
