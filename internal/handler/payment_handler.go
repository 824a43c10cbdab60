package handler

import (
	"net/http"

	"redmango/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles checkout HTTP requests.
type PaymentHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.CheckoutService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Create handles POST /api/payment?userId={id} requests.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required", h.logger)
		return
	}

	cart, err := h.service.CreatePaymentOrder(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
