package auth

import (
	"net/http"

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

// RegisterPublicRoutes mounts registration and login.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register/tenant", h.RegisterTenant)
	rg.POST("/auth/register/owner", h.RegisterOwner)
	rg.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts the profile endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.GetMe)
	rg.PUT("/users/me", h.UpdateProfile)
}

// RegisterTenant godoc
// @Summary Register a tenant account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /auth/register/tenant [post]
func (h *Handler) RegisterTenant(c *gin.Context) {
	h.register(c, domain.RoleTenant)
}

// RegisterOwner godoc
// @Summary Register a property owner account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /auth/register/owner [post]
func (h *Handler) RegisterOwner(c *gin.Context) {
	h.register(c, domain.RoleOwner)
}

func (h *Handler) register(c *gin.Context, role domain.UserRole) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email, password (min 8 chars) and name are required")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), input, role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  userView(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  userView(user),
		"token": token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetMe(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(user)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(user)})
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"email":         u.Email,
		"role":          u.Role,
		"name":          u.Name,
		"phone":         u.Phone,
		"address":       u.Address,
		"city":          u.City,
		"nid_number":    u.NIDNumber,
		"signature_url": u.SignatureURL,
		"credits":       u.Credits,
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid auth input")
	case ErrEmailAlreadyExists:
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case ErrInvalidCredentials:
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process auth request")
	}
}
