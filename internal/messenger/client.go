package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"messenger-formbot/internal/config"
	"messenger-formbot/internal/form"
)

const defaultTimeout = 10 * time.Second

var ErrNoRecipient = errors.New("recipient id is required")

// Client calls the Messenger Send API.
type Client struct {
	Config     *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config:     cfg,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// --- Message Structures ---

type Recipient struct {
	ID string `json:"id"`
}

type SendRequest struct {
	Recipient     Recipient    `json:"recipient"`
	MessagingType string       `json:"messaging_type"`
	Message       form.Message `json:"message"`
}

type SendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// APIError is returned when the Send API answers with an error status.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Status, e.Body)
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, url string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.PageAccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return respBody, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
	}

	return respBody, nil
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/%s/me/messages", c.Config.GraphAPIBaseURL, c.Config.GraphAPIVersion)
}

// --- Messaging Methods ---

// Send delivers msg to the user identified by the page-scoped id. It is
// attempted once; callers log failures.
func (c *Client) Send(ctx context.Context, recipientID string, msg form.Message) error {
	if recipientID == "" {
		return ErrNoRecipient
	}
	req := SendRequest{
		Recipient:     Recipient{ID: recipientID},
		MessagingType: "RESPONSE",
		Message:       msg,
	}
	respBody, err := c.sendRequest(ctx, http.MethodPost, c.messagesURL(), req)
	if err != nil {
		return fmt.Errorf("send to %s: %w", recipientID, err)
	}

	var resp SendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("send to %s: decode response: %w", recipientID, err)
	}
	return nil
}
