package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"messenger-formbot/internal/form"
	"messenger-formbot/internal/logger"
	"messenger-formbot/internal/metrics"
	"messenger-formbot/internal/models"
	"messenger-formbot/internal/ws"
)

const (
	// GetStartedPayload is the payload of the page's "Get Started" button.
	GetStartedPayload = "GET_STARTED"
	// DefaultStartCommand starts the form when typed by the user.
	DefaultStartCommand = "start"

	greetingConfidence = 0.8
)

// Sender delivers a rendered message to a user.
type Sender interface {
	Send(ctx context.Context, recipientID string, msg form.Message) error
}

// Recorder keeps a transcript of exchanged messages.
type Recorder interface {
	RecordMessage(ctx context.Context, msg models.Message) error
}

// Broadcaster publishes form progress to live observers.
type Broadcaster interface {
	BroadcastEvent(eventType string, data interface{})
}

// Engine turns inbound events into replies. All conversation state comes from
// the event itself, so HandleEvent is safe to call concurrently.
type Engine struct {
	Form         *form.Engine
	Sender       Sender
	Recorder     Recorder
	Feed         Broadcaster
	Metrics      *metrics.Metrics
	Log          *logger.Logger
	StartCommand string
}

type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.Recorder = r }
}

func WithFeed(b Broadcaster) Option {
	return func(e *Engine) { e.Feed = b }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.Metrics = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.Log = l }
}

// WithStartCommand sets the text that starts the form. Blank keeps the default.
func WithStartCommand(cmd string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(cmd) != "" {
			e.StartCommand = strings.TrimSpace(cmd)
		}
	}
}

func NewEngine(formEngine *form.Engine, sender Sender, opts ...Option) *Engine {
	e := &Engine{
		Form:         formEngine,
		Sender:       sender,
		Metrics:      metrics.New(),
		Log:          logger.NewNop(),
		StartCommand: DefaultStartCommand,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsStartCommand reports whether text is the start command, ignoring case and
// surrounding whitespace.
func (e *Engine) IsStartCommand(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), e.StartCommand)
}

// decision is the reply chosen for one event.
type decision struct {
	Message        form.Message
	FeedEvent      string
	QuestionNumber int
}

func (e *Engine) startHint() string {
	return fmt.Sprintf("Send %q to fill out the form.", e.StartCommand)
}

func (e *Engine) decide(ev Event) (decision, error) {
	switch ev.Kind {
	case EventPostback, EventQuickReply:
		if ev.Payload == GetStartedPayload {
			return e.start()
		}
		state, err := e.Form.DecodeState(ev.Payload)
		if err != nil {
			return decision{
				Message:   form.TextMessage("Sorry, I could not read that answer. " + e.startHint()),
				FeedEvent: ws.EventStateRejected,
			}, err
		}
		msg, err := e.Form.NextPrompt(state.QuestionNumber, state)
		if err != nil {
			return decision{}, err
		}
		feed := ws.EventAnswerRecorded
		if e.Form.Complete(state) {
			feed = ws.EventFormCompleted
		}
		return decision{Message: msg, FeedEvent: feed, QuestionNumber: state.QuestionNumber}, nil

	case EventText:
		if e.IsStartCommand(ev.Text) {
			return e.start()
		}
		if isGreeting(ev) {
			return decision{Message: form.TextMessage("Hi there! " + e.startHint())}, nil
		}
		return decision{Message: form.TextMessage(e.startHint())}, nil

	case EventAttachment:
		return decision{Message: form.TextMessage("I can only read text and button replies for now. " + e.startHint())}, nil
	}
	return decision{}, nil
}

func (e *Engine) start() (decision, error) {
	msg, err := e.Form.NextPrompt(0, form.NewState())
	if err != nil {
		return decision{}, err
	}
	return decision{Message: msg, FeedEvent: ws.EventFormStarted}, nil
}

func isGreeting(ev Event) bool {
	if ev.NLP == nil {
		return false
	}
	for _, entity := range ev.NLP.Entities["greetings"] {
		if entity.Confidence >= greetingConfidence && entity.Value != "false" {
			return true
		}
	}
	return false
}

// HandleEvent answers one inbound event. Send failures are logged and returned
// without a retry.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) error {
	e.Metrics.Events.WithLabelValues(string(ev.Kind)).Inc()
	if ev.Kind == EventIgnored || ev.SenderID == "" {
		return nil
	}
	log := e.Log.With("sender_id", ev.SenderID, "kind", ev.Kind)
	e.recordInbound(ctx, ev, log)

	d, err := e.decide(ev)
	if err != nil {
		var decodeErr *form.StateDecodeError
		if !errors.As(err, &decodeErr) {
			log.Error("Error building reply", "error", err)
			return err
		}
		e.Metrics.DecodeErrors.Inc()
		log.Warn("Rejected postback payload", "error", err)
	}
	if d.FeedEvent == ws.EventFormCompleted {
		e.Metrics.FormsCompleted.Inc()
	}
	e.checkPayloadSizes(d.Message, log)
	e.publish(ev, d)

	sendErr := e.Sender.Send(ctx, ev.SenderID, d.Message)
	if sendErr != nil {
		e.Metrics.SendFailures.Inc()
		log.Error("Error sending message", "error", sendErr)
	} else {
		e.Metrics.Prompts.WithLabelValues(d.Message.Kind().String()).Inc()
		log.Debug("Message sent", "template", d.Message.Kind().String(), "question_number", d.QuestionNumber)
	}
	e.recordOutbound(ctx, ev.SenderID, d.Message, sendErr, log)
	return sendErr
}

func (e *Engine) checkPayloadSizes(msg form.Message, log *logger.Logger) {
	for _, p := range msg.Payloads() {
		if len(p) > form.MaxPayloadLen {
			log.Warn("Postback payload exceeds platform limit", "length", len(p), "limit", form.MaxPayloadLen)
		}
	}
}

func (e *Engine) publish(ev Event, d decision) {
	if e.Feed == nil || d.FeedEvent == "" {
		return
	}
	e.Feed.BroadcastEvent(d.FeedEvent, map[string]interface{}{
		"sender_id":       ev.SenderID,
		"question_number": d.QuestionNumber,
	})
}

func (e *Engine) recordInbound(ctx context.Context, ev Event, log *logger.Logger) {
	if e.Recorder == nil {
		return
	}
	content := ev.Text
	if ev.HasPayload() {
		content = ev.Payload
	}
	if ev.Kind == EventAttachment {
		content = fmt.Sprintf("[%d attachment(s)]", ev.Attachments)
	}
	err := e.Recorder.RecordMessage(ctx, models.Message{
		RecipientID: ev.SenderID,
		Direction:   models.DirectionInbound,
		Kind:        string(ev.Kind),
		Content:     content,
		Status:      models.StatusReceived,
	})
	if err != nil {
		log.Warn("Error recording inbound message", "error", err)
	}
}

func (e *Engine) recordOutbound(ctx context.Context, recipientID string, msg form.Message, sendErr error, log *logger.Logger) {
	if e.Recorder == nil {
		return
	}
	content, err := json.Marshal(msg)
	if err != nil {
		log.Warn("Error encoding outbound message", "error", err)
		return
	}
	entry := models.Message{
		RecipientID: recipientID,
		Direction:   models.DirectionOutbound,
		Kind:        msg.Kind().String(),
		Content:     string(content),
		Status:      models.StatusSent,
	}
	if sendErr != nil {
		entry.Status = models.StatusFailed
		entry.Error = sendErr.Error()
	}
	if err := e.Recorder.RecordMessage(ctx, entry); err != nil {
		log.Warn("Error recording outbound message", "error", err)
	}
}
