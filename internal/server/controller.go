package server

import (
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/usecase"
)

type Controller interface {
	VerifyWebhook(c echo.Context) error
	ReceiveWebhook(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	verifyToken  string
	orderUsecase usecase.OrderUsecase
}

func NewController(conf *config.Config, orderUsecase usecase.OrderUsecase) Controller {
	return &controller{
		verifyToken:  conf.WhatsApp.VerifyToken,
		orderUsecase: orderUsecase,
	}
}

// VerifyWebhook answers the Cloud API subscription handshake: echo the
// challenge back when the verify token matches.
func (h *controller) VerifyWebhook(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode != "subscribe" || token != h.verifyToken {
		return echo.NewHTTPError(http.StatusForbidden, "verification failed")
	}
	return c.String(http.StatusOK, challenge)
}

func (h *controller) ReceiveWebhook(c echo.Context) error {
	var payload models.WebhookPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	for _, message := range payload.Messages() {
		if err := c.Validate(message); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := h.orderUsecase.ProcessMessage(ctx, message); err != nil {
			log.Errorw(ctx, "failed to process message", "error", err, "user_id", message.UserID)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "received",
	})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "todomarket-bot",
	})
}
