package form

import "fmt"

// FallbackText is sent for questions whose template type is not supported.
const FallbackText = "I am not sure how to do that yet..."

// Render builds the message for q. Every option carries, as its payload, the
// encoded state the conversation will be in once that option is chosen.
func Render(q Question, s State) (Message, error) {
	switch q.TemplateType {
	case TemplateButton:
		return renderButtons(q, s)
	case TemplateQuickReplies:
		return renderQuickReplies(q, s)
	default:
		return TextMessage(FallbackText), nil
	}
}

func renderButtons(q Question, s State) (Message, error) {
	buttons := make([]Button, 0, len(q.Options))
	for _, opt := range q.Options {
		payload, err := answerPayload(q, s, opt)
		if err != nil {
			return Message{}, err
		}
		buttons = append(buttons, Button{
			Type:    "postback",
			Title:   opt.Title,
			Payload: payload,
		})
	}
	return Message{
		Attachment: &Attachment{
			Type: "template",
			Payload: TemplatePayload{
				TemplateType: string(TemplateButton),
				Text:         q.Text,
				Buttons:      buttons,
			},
		},
	}, nil
}

func renderQuickReplies(q Question, s State) (Message, error) {
	replies := make([]QuickReply, 0, len(q.Options))
	for _, opt := range q.Options {
		payload, err := answerPayload(q, s, opt)
		if err != nil {
			return Message{}, err
		}
		replies = append(replies, QuickReply{
			ContentType: "text",
			Title:       opt.Title,
			Payload:     payload,
			ImageURL:    opt.ImageURL,
		})
	}
	return Message{Text: q.Text, QuickReplies: replies}, nil
}

func answerPayload(q Question, s State, opt Option) (string, error) {
	payload, err := EncodeState(s.RecordAnswer(q.Field, opt.Value))
	if err != nil {
		return "", fmt.Errorf("question %q option %q: %w", q.Field, opt.Title, err)
	}
	return payload, nil
}
