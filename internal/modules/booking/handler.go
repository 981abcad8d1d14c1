package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentnest/internal/domain"
	"rentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTenantRoutes mounts the endpoints a tenant may call.
func (h *Handler) RegisterTenantRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.CreateRequest)
	rg.GET("/requests/my", h.ListMyRequests)
	rg.DELETE("/requests/:id", h.CancelRequest)
}

// RegisterOwnerRoutes mounts the endpoints an owner may call.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/requests/received", h.ListReceivedRequests)
	rg.PATCH("/requests/:id/decision", h.Decide)
}

// CreateRequest godoc
// @Summary Request to rent a property
// @Tags bookings
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /bookings/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tenantID := c.GetInt64("user_id")
	req, err := h.service.CreateRequest(c.Request.Context(), tenantID, input.PropertyID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"request": gin.H{
			"id":          req.ID,
			"property_id": req.PropertyID,
			"status":      req.Status,
		},
	})
}

func (h *Handler) CancelRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	tenantID := c.GetInt64("user_id")
	if err := h.service.CancelRequest(c.Request.Context(), tenantID, id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	var input DecideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Decision must be approved or rejected")
		return
	}

	ownerID := c.GetInt64("user_id")
	req, err := h.service.Decide(c.Request.Context(), ownerID, id, domain.BookingRequestStatus(input.Decision))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"request": gin.H{
			"id":     req.ID,
			"status": req.Status,
		},
	})
}

func (h *Handler) ListMyRequests(c *gin.Context) {
	requests, err := h.service.ListForTenant(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) ListReceivedRequests(c *gin.Context) {
	requests, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking request or property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this request")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Request state does not permit this operation")
	case ErrDuplicateRequest:
		response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "An active request for this property already exists")
	case ErrAlreadyDeclined:
		response.Error(c, http.StatusConflict, "ALREADY_DECLINED", "A previous request for this property was declined")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking request")
	}
}
