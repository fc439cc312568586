package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/procurewatch/backend/internal/queue"
	mid "github.com/procurewatch/backend/internal/server/middleware"
	"github.com/procurewatch/backend/internal/storage"
	"github.com/procurewatch/backend/internal/util"
	"github.com/procurewatch/backend/pkg/dashboard"
	"github.com/procurewatch/backend/pkg/graph/neo4j"
	"github.com/procurewatch/backend/pkg/logger"
	"github.com/procurewatch/backend/pkg/narrative"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphStore, err := neo4j.NewClient(ctx, neo4j.Config{
		URI:            util.GetEnvString("NEO4J_URI", "bolt://localhost:7687"),
		Username:       util.GetEnv("NEO4J_USER"),
		Password:       util.GetEnv("NEO4J_PASSWORD"),
		Database:       util.GetEnvString("NEO4J_DATABASE", "neo4j"),
		ConnectTimeout: time.Duration(util.GetEnvInt("NEO4J_CONNECT_TIMEOUT", 10)) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to connect to graph store", "err", err)
	}
	defer graphStore.Close(ctx)

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}

	if err := queue.SetupQueues(ch); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	narrativeClient := narrative.NewClient(narrative.Config{
		APIKey:  util.GetEnv("AI_CHAT_KEY"),
		BaseURL: util.GetEnv("AI_CHAT_URL"),
		Model:   util.GetEnv("AI_CHAT_MODEL"),
	})

	app := &mid.App{
		Queue:      ch,
		S3:         s3,
		Narrative:  narrativeClient,
		Dashboards: dashboard.NewService(graphStore),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
