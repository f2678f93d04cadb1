package api

import (
	"context"
	"net/http"
	"strconv"

	"messenger-formbot/internal/form"
	"messenger-formbot/internal/models"

	"github.com/gin-gonic/gin"
)

const maxListLimit = 500

// MessageLister reads the conversation transcript.
type MessageLister interface {
	Recent(ctx context.Context, limit int) ([]models.Message, error)
}

type DashboardHandler struct {
	Messages MessageLister
	Form     *form.Engine
}

// NewDashboardHandler builds the read-only API. messages may be nil when the
// message log is disabled.
func NewDashboardHandler(messages MessageLister, formEngine *form.Engine) *DashboardHandler {
	return &DashboardHandler{Messages: messages, Form: formEngine}
}

func (h *DashboardHandler) GetMessages(c *gin.Context) {
	if h.Messages == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "message log is disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	messages, err := h.Messages.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func (h *DashboardHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.Form.Questions()})
}

func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
