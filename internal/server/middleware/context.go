package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/procurewatch/backend/pkg/dashboard"
	"github.com/procurewatch/backend/pkg/narrative"
)

// App holds the shared clients every handler reaches through the request
// context.
type App struct {
	Queue      *amqp091.Channel
	S3         *s3.Client
	Narrative  *narrative.Client
	Dashboards *dashboard.Service
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
