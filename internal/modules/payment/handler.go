package payment

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"musicstudio/internal/pkg/response"
)

const maxWebhookBody = 1 << 20 // 1 MiB

type Handler struct {
	service       *Service
	webhookSecret string
	tolerance     time.Duration
}

func NewHandler(service *Service, webhookSecret string) *Handler {
	return &Handler{
		service:       service,
		webhookSecret: webhookSecret,
		tolerance:     5 * time.Minute,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/payment", h.Webhook)
}

// Webhook consumes provider deliveries. There is no bearer auth here; the
// signature check is the auth.
func (h *Handler) Webhook(c *gin.Context) {
	evt, body, err := h.verify(c.Request)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.service.HandleEvent(c.Request.Context(), evt, body)
	if err != nil {
		if err == ErrUnknownBooking {
			// Acknowledge so the provider stops retrying a reference we will
			// never resolve; the recorded event keeps it auditable.
			response.Success(c, http.StatusOK, gin.H{"status": "unmatched"})
			return
		}
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(res)})
}

// verify authenticates the delivery and returns the parsed event with the raw
// body the service needs for payload decoding.
func (h *Handler) verify(r *http.Request) (stripe.Event, []byte, error) {
	if strings.TrimSpace(h.webhookSecret) == "" {
		return stripe.Event{}, nil, ErrNotConfigured
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		return stripe.Event{}, nil, ErrInvalidSignature
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		return stripe.Event{}, nil, err
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.webhookSecret, h.tolerance)
	if err != nil {
		return stripe.Event{}, nil, ErrInvalidSignature
	}
	return evt, body, nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotConfigured:
		response.Error(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", "Payment webhook is not configured")
	case ErrInvalidSignature:
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Missing or invalid webhook signature")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process webhook")
	}
}
