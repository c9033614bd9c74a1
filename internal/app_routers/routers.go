package approuters

import (
	"Userdir/internal/configuration"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func StartServer(container *configuration.Container) {
	logger := container.Logger
	appServer := createAppServer(container)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("application server starting", zap.String("addr", appServer.Addr))
		if err := appServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("app server error: %w", err)
		}
	}()

	// Listen for shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("initiating graceful shutdown", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), container.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := appServer.Shutdown(ctx); err != nil {
		logger.Error("app server shutdown error", zap.Error(err))
	}

	logger.Info("graceful shutdown complete")
}

func createAppServer(container *configuration.Container) *http.Server {
	cfg := container.Config.Server

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AppPort),
		Handler:      NewRouter(container),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// NewRouter wires every route of the user directory onto a gin engine.
func NewRouter(container *configuration.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(container.Logger))

	origins := container.Config.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:4200"}
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the User Directory Server!",
		})
	})

	UserRouters(router, container)
	MonitorRouters(router, container)

	return router
}
