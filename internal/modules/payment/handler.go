package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCallbackRoutes mounts the gateway-facing endpoint. It must be
// reachable without authentication.
func (h *Handler) RegisterCallbackRoutes(r gin.IRoutes) {
	r.POST("/payment", h.Callback)
	r.GET("/payment/:status", h.StatusPage)
}

// RegisterTenantRoutes mounts the payer-facing endpoints.
func (h *Handler) RegisterTenantRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/checkout", h.Checkout)
	rg.GET("/payments/my", h.ListMyPayments)
	rg.GET("/rentals/my", h.ListMyRentals)
}

type checkoutInput struct {
	PropertyID int64  `json:"property_id" binding:"required,gt=0"`
	StartDate  string `json:"start_date" binding:"required"` // YYYY-MM-DD
}

// Checkout godoc
// @Summary Start a rent payment for an approved booking
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /payments/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid checkout body")
		return
	}

	redirectURL, err := h.service.Initiate(c.Request.Context(), c.GetInt64("user_id"), input.PropertyID, input.StartDate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect_url": redirectURL})
}

// Callback receives the gateway's form-encoded notification and sends
// the payer's browser to the matching status page.
func (h *Handler) Callback(c *gin.Context) {
	status := c.Query("status")
	tranID := c.PostForm("tran_id")
	cardType := c.PostForm("card_type")

	redirect, err := h.service.HandleCallback(c.Request.Context(), status, tranID, cardType)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed callback")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown transaction")
		default:
			c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process callback")
		}
		return
	}

	c.Redirect(http.StatusFound, redirect)
}

// StatusPage is where the gateway redirect lands the payer.
func (h *Handler) StatusPage(c *gin.Context) {
	status := c.Param("status")
	if !callbackStatuses[status] {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown payment status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": status})
}

func (h *Handler) ListMyPayments(c *gin.Context) {
	payments, err := h.service.ListMyPayments(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

func (h *Handler) ListMyRentals(c *gin.Context) {
	rentals, err := h.service.ListMyRentals(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": rentals})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Approved booking or property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Payment belongs to another user")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking is not approved for payment")
	case ErrGateway:
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway is unavailable, try again later")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}
