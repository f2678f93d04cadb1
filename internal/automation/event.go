package automation

import (
	"messenger-formbot/pkg/models"
)

// EventKind classifies a normalized inbound event.
type EventKind string

const (
	EventText       EventKind = "text"
	EventPostback   EventKind = "postback"
	EventQuickReply EventKind = "quick_reply"
	EventAttachment EventKind = "attachment"
	EventIgnored    EventKind = "ignored"
)

// Event is the platform-independent view of one messaging event.
type Event struct {
	SenderID    string
	Kind        EventKind
	Text        string
	Payload     string
	Attachments int
	NLP         *models.NLP
}

// NormalizeEvent classifies a messaging event. Quick reply taps arrive as
// messages but carry a payload exactly like a postback.
func NormalizeEvent(ev models.MessagingEvent) Event {
	out := Event{SenderID: ev.Sender.ID, Kind: EventIgnored}

	switch {
	case ev.Postback != nil:
		out.Kind = EventPostback
		out.Payload = ev.Postback.Payload
	case ev.Message != nil && ev.Message.IsEcho:
		// our own outbound messages echoed back
	case ev.Message != nil && ev.Message.QuickReply != nil:
		out.Kind = EventQuickReply
		out.Payload = ev.Message.QuickReply.Payload
		out.Text = ev.Message.Text
	case ev.Message != nil && ev.Message.Text != "":
		out.Kind = EventText
		out.Text = ev.Message.Text
		out.NLP = ev.Message.NLP
	case ev.Message != nil && len(ev.Message.Attachments) > 0:
		out.Kind = EventAttachment
		out.Attachments = len(ev.Message.Attachments)
	}
	return out
}

// HasPayload reports whether the event carries a postback payload.
func (e Event) HasPayload() bool {
	return e.Kind == EventPostback || e.Kind == EventQuickReply
}
