package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to already be guarded by AdminOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/pending", h.ListPending)
	rg.PATCH("/properties/:id/review", h.Review)
}

func (h *Handler) ListPending(c *gin.Context) {
	properties, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pending properties")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": properties})
}

type reviewInput struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

func (h *Handler) Review(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Decision must be approve or reject")
		return
	}

	property, err := h.service.Review(c.Request.Context(), id, input.Decision == "approve")
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case ErrInvalidState:
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Property is not awaiting review")
		default:
			c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to review property")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"property": gin.H{
			"id":     property.ID,
			"status": property.Status,
		},
	})
}
