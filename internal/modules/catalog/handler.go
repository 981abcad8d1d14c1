package catalog

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

// RegisterPublicRoutes mounts browse endpoints that need no token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.ListAvailable)
	rg.GET("/properties/:id", h.GetProperty)
}

// RegisterOwnerRoutes mounts listing management for property owners.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.CreateListing)
	rg.PUT("/properties/:id", h.UpdateListing)
	// Not under /properties/:id, the public wildcard route owns that tree.
	rg.GET("/my/properties", h.ListMine)
}

// RegisterTenantRoutes mounts the contact unlock endpoints.
func (h *Handler) RegisterTenantRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/:id/unlock", h.UnlockContact)
	rg.GET("/properties/:id/contact", h.GetOwnerContact)
}

// ListAvailable godoc
// @Summary Browse approved listings
// @Tags properties
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /properties [get]
func (h *Handler) ListAvailable(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	properties, err := h.service.ListAvailable(c.Request.Context(), c.Query("city"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": properties})
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	property, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": property})
}

func (h *Handler) CreateListing(c *gin.Context) {
	var input CreateListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing body")
		return
	}

	property, err := h.service.CreateListing(c.Request.Context(), c.GetInt64("user_id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property": property})
}

func (h *Handler) UpdateListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	var input UpdateListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing body")
		return
	}

	property, err := h.service.UpdateListing(c.Request.Context(), c.GetInt64("user_id"), id, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": property})
}

func (h *Handler) ListMine(c *gin.Context) {
	properties, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": properties})
}

func (h *Handler) UnlockContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	owner, err := h.service.UnlockContact(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contactView(owner)})
}

func (h *Handler) GetOwnerContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	owner, err := h.service.GetOwnerContact(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contactView(owner)})
}

// contactView exposes only what an unlock pays for.
func contactView(owner *domain.User) gin.H {
	return gin.H{
		"name":    owner.Name,
		"email":   owner.Email,
		"phone":   owner.Phone,
		"address": owner.Address,
		"city":    owner.City,
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Property belongs to another owner")
	case ErrInsufficientCredits:
		response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "Not enough credits, purchase a package first")
	case ErrContactLocked:
		response.Error(c, http.StatusForbidden, "CONTACT_LOCKED", "Unlock this property to see owner contact details")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process property request")
	}
}
