package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/procurewatch/backend/internal/queue"
	"github.com/procurewatch/backend/internal/server/middleware"
	"github.com/procurewatch/backend/internal/storage"
	"github.com/procurewatch/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

func CreateReportHandler(c echo.Context) error {
	type createReportParams struct {
		Title       string `form:"title" validate:"required"`
		Description string `form:"description" validate:"required"`
		Entity      string `form:"entity" validate:"required"`
		Date        string `form:"date"`
		Involved    string `form:"involved"`
	}

	type createReportResponse struct {
		Message  string `json:"message"`
		ReportID string `json:"report_id,omitempty"`
	}

	type reportMessage struct {
		ReportID      string    `json:"report_id"`
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		Entity        string    `json:"entity"`
		Date          string    `json:"date,omitempty"`
		Involved      string    `json:"involved,omitempty"`
		AttachmentKey string    `json:"attachment_key,omitempty"`
		SubmittedAt   time.Time `json:"submitted_at"`
	}

	params := new(createReportParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, createReportResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, createReportResponse{Message: "Invalid request body"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	reportID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createReportResponse{Message: "Internal server error"})
	}

	attachmentKey := ""
	if file, err := c.FormFile("attachment"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, createReportResponse{Message: "Invalid request body"})
		}
		defer src.Close()

		key, err := storage.PutFile(ctx, app.S3, "reports", file.Filename, reportID, src)
		if err != nil {
			logger.Error("Failed to upload report attachment", "err", err)
			return c.JSON(http.StatusInternalServerError, createReportResponse{Message: "Internal server error"})
		}
		attachmentKey = key
	}

	payload, err := json.Marshal(reportMessage{
		ReportID:      reportID,
		Title:         params.Title,
		Description:   params.Description,
		Entity:        params.Entity,
		Date:          params.Date,
		Involved:      params.Involved,
		AttachmentKey: attachmentKey,
		SubmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createReportResponse{Message: "Internal server error"})
	}

	if err := queue.PublishFIFO(app.Queue, queue.ReportsQueue, payload); err != nil {
		logger.Error("Failed to enqueue report", "report_id", reportID, "err", err)
		return c.JSON(http.StatusInternalServerError, createReportResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusAccepted, createReportResponse{
		Message:  "Report received",
		ReportID: reportID,
	})
}
