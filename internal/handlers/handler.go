package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/strixcodecipher/relicsneb/internal/config"
	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/service"
)

// APIPrefix is the common prefix of every API route.
const APIPrefix = "/api"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cors     config.CORSConfig
	upgrader websocket.Upgrader
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, log *logger.Logger, cors config.CORSConfig) *Handler {
	registerJSONFieldNames()
	h := &Handler{services: services, log: log, cors: cors}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, preflightAllowHeaders, h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(APIPrefix)
	{
		api.GET("", h.root)
		api.GET("/", h.root)
		api.GET("/health", h.health)

		h.registerStatusRoutes(api)
		h.registerSpawnRoutes(api)
	}

	return router
}

func (h *Handler) registerStatusRoutes(api *gin.RouterGroup) {
	api.POST("/status", h.createStatusCheck)
	api.GET("/status", h.listStatusChecks)
}

func (h *Handler) registerSpawnRoutes(api *gin.RouterGroup) {
	api.GET("/spawn-prediction", h.getSpawnPrediction)
	// same payload pushed periodically over a websocket
	api.GET("/ws/spawn-prediction", h.wsSpawnPrediction)
}
