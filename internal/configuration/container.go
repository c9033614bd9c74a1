package configuration

import (
	"Userdir/internal/db"
	"Userdir/internal/handler"
	"Userdir/internal/metrics"
	"Userdir/internal/repo"
	"Userdir/internal/service"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Container struct {
	UserHandler    handler.UserHandler
	MonitorHandler handler.MonitorHandler
	Metrics        *metrics.Metrics
	Config         Config
	Logger         *zap.Logger

	// private - for cleanup
	mongoClient *mongo.Database
}

// BuildContainer loads config, connects to MongoDB and prepares the users
// collection. It fails if the store cannot be initialised; nothing is served
// until it succeeds.
func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := NewLogger(config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("config loaded",
		zap.String("database", config.Mongo.Database),
		zap.String("collection", config.Mongo.UsersCollection),
		zap.Int("app_port", config.Server.AppPort),
		zap.Bool("reset", config.Mongo.Reset),
	)

	con, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database, config.Mongo.ConnectTimeout)
	if err != nil {
		logger.Error("mongo connection failed", zap.Error(err))
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo, err := repo.OpenUserRepository(ctx, con, config.Mongo.UsersCollection, config.Mongo.Reset, logger.Named("repo"))
	if err != nil {
		_ = db.CloseConnection(context.Background(), con)
		_ = logger.Sync()
		return nil, err
	}

	m := metrics.New()
	userService := service.NewUserService(userRepo, m, logger.Named("service"))

	return &Container{
		UserHandler:    handler.NewUserHandler(userService),
		MonitorHandler: handler.NewMonitorHandler(userService),
		Metrics:        m,
		Config:         *config,
		Logger:         logger,
		mongoClient:    con,
	}, nil
}

// NewLogger builds a zap logger at the configured level.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	// Sync logger
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.CloseConnection(ctx, c.mongoClient); err != nil {
			return err
		}
		c.mongoClient = nil
	}

	return nil
}
