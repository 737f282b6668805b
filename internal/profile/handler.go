package profile

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"myapp_backend/internal/common"
	"myapp_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// avatarField is the multipart file part carrying the avatar.
const avatarField = "avatar"

// Handler serves the profile endpoints for the signed-in user.
type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: cfg.UploadMaxBytes,
		logger:         logger.Named("ProfileHandler"),
	}
}

// RegisterRoutes mounts the profile endpoints behind mw. /editProfile is
// an alias of /profile.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, mw ...gin.HandlerFunc) {
	g := router.Group("", mw...)
	g.GET("/profile", h.getProfile)
	g.POST("/profile", h.saveProfile)
	g.GET("/editProfile", h.getProfile)
	g.POST("/editProfile", h.saveProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.service.GetProfile(c.Request.Context(), common.GetUserIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"profile": p})
}

func (h *Handler) saveProfile(c *gin.Context) {
	fields, avatar, err := h.readForm(c)
	if err != nil {
		h.logger.Debug("SaveProfile: unreadable form", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.service.SaveProfile(c.Request.Context(), common.GetUserIDFromContext(c), fields, avatar)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"success": true, "profile": p})
}

// readForm collects the first value of every submitted form key and the
// avatar part, if any. Multipart and urlencoded bodies are both accepted.
func (h *Handler) readForm(c *gin.Context) (map[string]string, *multipart.FileHeader, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var avatar *multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return nil, nil, err
		}
		fh, err := c.FormFile(avatarField)
		switch {
		case err == nil:
			avatar = fh
		case !errors.Is(err, http.ErrMissingFile):
			return nil, nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, nil, err
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, avatar, nil
}
