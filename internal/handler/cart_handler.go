package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
)

// CartHandler handles students' selected classes.
type CartHandler struct {
	cartService *service.CartService
	log         zerolog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService, log zerolog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log.With().Str("component", "cart_handler").Logger(),
	}
}

// ListByOwner godoc
// GET /my-selected-class/:email
func (h *CartHandler) ListByOwner(c *gin.Context) {
	items, err := h.cartService.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Add godoc
// POST /new-selected-class
func (h *CartHandler) Add(c *gin.Context) {
	var req model.AddCartItemRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, model.Inserted(item.ID))
}

// Remove godoc
// DELETE /selected-class-delete/:id
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.cartService.Remove(c.Request.Context(), id)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
