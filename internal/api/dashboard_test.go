package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-formbot/internal/form"
	"messenger-formbot/internal/models"
)

type stubLister struct {
	messages  []models.Message
	err       error
	lastLimit int
}

func (s *stubLister) Recent(_ context.Context, limit int) ([]models.Message, error) {
	s.lastLimit = limit
	return s.messages, s.err
}

func newRouter(h *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/messages", h.GetMessages)
	r.GET("/api/questions", h.GetQuestions)
	r.GET("/healthz", h.Health)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetMessages(t *testing.T) {
	lister := &stubLister{messages: []models.Message{{ID: 1, RecipientID: "psid-1", Content: "hi"}}}
	r := newRouter(NewDashboardHandler(lister, form.NewEngine(nil)))

	rec := get(r, "/api/messages?limit=1000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxListLimit, lister.lastLimit)

	var got []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "psid-1", got[0].RecipientID)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/messages?limit=abc").Code)

	lister.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, get(r, "/api/messages").Code)
}

func TestGetMessagesDisabled(t *testing.T) {
	r := newRouter(NewDashboardHandler(nil, form.NewEngine(nil)))
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/messages").Code)
}

func TestGetQuestionsAndHealth(t *testing.T) {
	engine := form.NewEngine([]form.Question{{Field: "color", Text: "Color?", TemplateType: form.TemplateButton}})
	r := newRouter(NewDashboardHandler(nil, engine))

	rec := get(r, "/api/questions")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Questions []form.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Questions, 1)
	assert.Equal(t, "color", body.Questions[0].Field)

	assert.JSONEq(t, `{"status":"ok"}`, get(r, "/healthz").Body.String())
}
