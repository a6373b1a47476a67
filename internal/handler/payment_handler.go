package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/middleware"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
)

// PaymentHandler handles payment intents and checkout records.
type PaymentHandler struct {
	paymentService *service.PaymentService
	log            zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log.With().Str("component", "payment_handler").Logger(),
	}
}

// CreateIntent godoc
// POST /create-payment-intent
// Returns the client secret for a charge of price (major units).
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreatePaymentIntentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), claims.Email, req.Price)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, model.CreatePaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// Record godoc
// POST /payments
// Stores the payment and removes the paid cart item in one transaction.
func (h *PaymentHandler) Record(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.paymentService.Record(c.Request.Context(), claims.Email, req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// List godoc
// GET /payments?email=
func (h *PaymentHandler) List(c *gin.Context) {
	var q model.ListPaymentsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payments, err := h.paymentService.List(c.Request.Context(), q.Email)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}
