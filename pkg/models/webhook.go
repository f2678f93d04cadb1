package models

// WebhookPayload represents the incoming JSON payload from the Messenger Platform
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the events delivered for one page
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is a single message or postback. Exactly one of Message and
// Postback is set.
type MessagingEvent struct {
	Sender    Party     `json:"sender"`
	Recipient Party     `json:"recipient"`
	Timestamp int64     `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
	Postback  *Postback `json:"postback,omitempty"`
}

// Party identifies a user (PSID) or page
type Party struct {
	ID string `json:"id"`
}

// Message is an inbound text, quick reply tap or attachment
type Message struct {
	MID         string       `json:"mid"`
	Text        string       `json:"text,omitempty"`
	IsEcho      bool         `json:"is_echo,omitempty"`
	QuickReply  *QuickReply  `json:"quick_reply,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	NLP         *NLP         `json:"nlp,omitempty"`
}

// QuickReply carries the payload of the tapped quick reply chip
type QuickReply struct {
	Payload string `json:"payload"`
}

// Attachment is an image, video, file or location sent by the user
type Attachment struct {
	Type    string `json:"type"`
	Payload struct {
		URL string `json:"url,omitempty"`
	} `json:"payload"`
}

// Postback is sent when a user taps a postback button
type Postback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// NLP holds the built-in entity detection results, when enabled for the page
type NLP struct {
	Entities map[string][]NLPEntity `json:"entities"`
}

// NLPEntity is a single detected entity value
type NLPEntity struct {
	Confidence float64 `json:"confidence"`
	Value      string  `json:"value"`
}
