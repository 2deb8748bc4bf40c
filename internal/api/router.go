package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shareit/internal/auth"
	"shareit/internal/booking"
	bookingHttp "shareit/internal/booking/http"
	"shareit/internal/file"
	fileHttp "shareit/internal/file/http"
	"shareit/internal/item"
	itemHttp "shareit/internal/item/http"
	"shareit/internal/itemrequest"
	requestHttp "shareit/internal/itemrequest/http"
	"shareit/internal/user"
	userHttp "shareit/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
	FileService    file.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, actor resolution) and registers
// routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger logs request information to the console; Recovery captures
	// panics and returns a 500 instead of crashing the server.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.SharerUserHeader}
	r.Use(cors.New(corsConfig))

	// actorMiddleware resolves the acting user from a bearer token or the
	// X-Sharer-User-Id header.
	actorMiddleware := auth.ActorRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, actorMiddleware)
		itemHttp.RegisterRoutes(v1, itemHandler, actorMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, actorMiddleware)
		requestHttp.RegisterRoutes(v1, requestHandler, actorMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, actorMiddleware)
	}

	return r
}
