package auth

import (
	"net/http"

	"myapp_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the registration, login and session endpoints.
type Handler struct {
	service Service
	cookies CookieOptions
	logger  *zap.Logger
}

func NewHandler(service Service, cookies CookieOptions, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
		logger:  logger.Named("AuthHandler"),
	}
}

// CredentialsRequest is the body of register and login. max counts runes;
// the service enforces the 72 byte bcrypt limit.
type CredentialsRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}

// RegisterRoutes mounts the auth endpoints on router; authMW guards the
// ones that need a session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", authMW, h.logout)
	router.GET("/session", authMW, h.session)
}

func (h *Handler) register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Register: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.UserID, req.Password); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, gin.H{"message": "User registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Login: invalid request body", zap.Error(err))
		apiErr := common.BindingError(err)
		if apiErr.Code == common.ErrMissingFields.Code {
			apiErr = common.ErrMissingFields.WithMessage("Missing credentials")
		}
		common.RespondWithError(c, apiErr)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.cookies.setSession(c.Writer, result.Token, result.ExpiresAt)
	h.cookies.setEmail(c.Writer, result.User.Email)
	common.RespondOK(c, gin.H{"message": "Login successful", "email": result.User.Email})
}

func (h *Handler) logout(c *gin.Context) {
	session := common.GetSessionFromContext(c)
	if err := h.service.Logout(c.Request.Context(), session); err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.cookies.clear(c.Writer)
	common.RespondMessage(c, http.StatusOK, "Logged out successfully")
}

func (h *Handler) session(c *gin.Context) {
	session := common.GetSessionFromContext(c)
	if session == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	u := gin.H{"email": session.Email}
	if session.HasUser() {
		u["userId"] = session.UserID
	}
	common.RespondOK(c, gin.H{"user": u, "expires": session.ExpiresAt})
}
