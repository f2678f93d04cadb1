package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"messenger-formbot/internal/automation"
	"messenger-formbot/internal/config"
	"messenger-formbot/internal/logger"
	"messenger-formbot/pkg/models"

	"github.com/gin-gonic/gin"
)

const eventReceived = "EVENT_RECEIVED"

type Handler struct {
	Config           *config.Config
	AutomationEngine *automation.Engine
	Log              *logger.Logger

	// dispatch runs event processing; events are handled off the request
	// goroutine so the platform gets its 200 right away.
	dispatch func(func())
	inflight sync.WaitGroup
}

func NewHandler(cfg *config.Config, automationEngine *automation.Engine, log *logger.Logger) *Handler {
	h := &Handler{
		Config:           cfg,
		AutomationEngine: automationEngine,
		Log:              log,
	}
	h.dispatch = h.goDispatch
	return h
}

func (h *Handler) goDispatch(f func()) {
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		f()
	}()
}

// Wait blocks until every dispatched event has been handled or ctx is done.
func (h *Handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			h.Log.Info("Webhook verified successfully")
			c.String(http.StatusOK, challenge)
		} else {
			h.Log.Warn("Webhook verification rejected", "mode", mode)
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

func (h *Handler) HandleMessage(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.Log.Warn("Error reading webhook body", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if h.Config.AppSecret != "" {
		if err := VerifySignature(h.Config.AppSecret, c.GetHeader(SignatureHeader), body); err != nil {
			h.Log.Warn("Rejected webhook signature", "error", err)
			c.Status(http.StatusForbidden)
			return
		}
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.Log.Warn("Error binding JSON", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if payload.Object != "page" {
		c.Status(http.StatusNotFound)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	for _, entry := range payload.Entry {
		for _, raw := range entry.Messaging {
			event := automation.NormalizeEvent(raw)
			h.Log.Debug("Received event", "sender_id", event.SenderID, "kind", event.Kind)
			h.dispatch(func() {
				_ = h.AutomationEngine.HandleEvent(ctx, event)
			})
		}
	}

	c.String(http.StatusOK, eventReceived)
}
