package profileform

import (
	"strconv"

	"myapp_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the editor layout and form checks.
type Handler struct {
	validator *Validator
	logger    *zap.Logger
}

func NewHandler(validator *Validator, logger *zap.Logger) *Handler {
	return &Handler{validator: validator, logger: logger.Named("ProfileFormHandler")}
}

type sectionResponse struct {
	Name   Section  `json:"name"`
	Fields []string `json:"fields"`
}

func newSectionResponse(s Section) sectionResponse {
	return sectionResponse{Name: s, Fields: Fields(s)}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile/sections", h.sections)
	router.POST("/profile/validate", h.validate)
}

// sections answers ?maritalStatus=&tab=. Without tab only the list is returned.
func (h *Handler) sections(c *gin.Context) {
	marital := c.Query("maritalStatus")

	visible := VisibleSections(marital)
	list := make([]sectionResponse, 0, len(visible))
	for _, s := range visible {
		list = append(list, newSectionResponse(s))
	}
	body := gin.H{"sections": list}

	if raw, ok := c.GetQuery("tab"); ok {
		tab, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("tab must be an integer"))
			return
		}
		current, ok := SectionFor(tab, marital)
		if !ok {
			common.RespondWithError(c, common.ErrNotFound.WithDetails("No section at tab "+raw))
			return
		}
		body["current"] = newSectionResponse(current)
	}

	common.RespondOK(c, body)
}

func (h *Handler) validate(c *gin.Context) {
	var form Form
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debug("Validate: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	if err := h.validator.Validate(&form); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"valid": true})
}
