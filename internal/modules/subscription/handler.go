package subscription

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
	r.POST("/payment/subscription-status", h.Callback)
}

// RegisterUserRoutes mounts the buyer-facing endpoints.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscriptions/checkout", h.Checkout)
	rg.GET("/subscriptions/my", h.ListMyPackages)
}

type checkoutInput struct {
	Plan string `json:"plan" binding:"required,oneof=basic standard premium"`
}

// Checkout godoc
// @Summary Buy a credit package
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /subscriptions/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Plan must be basic, standard or premium")
		return
	}

	redirectURL, err := h.service.Purchase(c.Request.Context(), c.GetInt64("user_id"), input.Plan)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect_url": redirectURL})
}

func (h *Handler) Callback(c *gin.Context) {
	redirect, err := h.service.HandleCallback(c.Request.Context(), c.Query("status"), c.PostForm("tran_id"), c.PostForm("card_type"))
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

func (h *Handler) ListMyPackages(c *gin.Context) {
	packages, err := h.service.ListMyPackages(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid subscription input")
	case ErrInvalidPlan:
		response.Error(c, http.StatusBadRequest, "INVALID_PLAN", "Plan must be basic, standard or premium")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment or package not found")
	case ErrGateway:
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway is unavailable, try again later")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process subscription")
	}
}
