package form

// MessageKind discriminates the variants of Message.
type MessageKind int

const (
	MessageText MessageKind = iota
	MessageButtons
	MessageQuickReplies
)

func (k MessageKind) String() string {
	switch k {
	case MessageButtons:
		return "button"
	case MessageQuickReplies:
		return "quick_replies"
	default:
		return "text"
	}
}

// Message is the rendered outbound message. Its JSON encoding is the Send API
// "message" object, so it can be handed to the messenger client unchanged.
type Message struct {
	Text         string       `json:"text,omitempty"`
	Attachment   *Attachment  `json:"attachment,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

type Attachment struct {
	Type    string          `json:"type"`
	Payload TemplatePayload `json:"payload"`
}

type TemplatePayload struct {
	TemplateType string   `json:"template_type"`
	Text         string   `json:"text"`
	Buttons      []Button `json:"buttons"`
}

type Button struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TextMessage builds a plain text message.
func TextMessage(text string) Message {
	return Message{Text: text}
}

// Kind reports which variant m holds.
func (m Message) Kind() MessageKind {
	switch {
	case m.Attachment != nil:
		return MessageButtons
	case len(m.QuickReplies) > 0:
		return MessageQuickReplies
	default:
		return MessageText
	}
}

// Payloads returns the option payloads in display order. Text messages have none.
func (m Message) Payloads() []string {
	var payloads []string
	if m.Attachment != nil {
		for _, b := range m.Attachment.Payload.Buttons {
			payloads = append(payloads, b.Payload)
		}
	}
	for _, q := range m.QuickReplies {
		payloads = append(payloads, q.Payload)
	}
	return payloads
}
