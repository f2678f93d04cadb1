package form

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// StateVersion is written into every encoded payload.
	StateVersion = 1
	// MaxPayloadLen is the longest postback payload the platform accepts.
	MaxPayloadLen = 1000
)

var errMissingQuestionNumber = errors.New("missing question_number")

// StateDecodeError reports a postback payload that does not hold a valid form state.
type StateDecodeError struct {
	Payload string
	Err     error
}

func (e *StateDecodeError) Error() string {
	return fmt.Sprintf("decode form state: %v", e.Err)
}

func (e *StateDecodeError) Unwrap() error {
	return e.Err
}

type envelope struct {
	Version        *int           `json:"v,omitempty"`
	QuestionNumber *int           `json:"question_number"`
	FormData       map[string]any `json:"form_data"`
}

// EncodeState serializes s into a payload string.
func EncodeState(s State) (string, error) {
	v := StateVersion
	qn := s.QuestionNumber
	data := s.FormData
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.Marshal(envelope{Version: &v, QuestionNumber: &qn, FormData: data})
	if err != nil {
		return "", fmt.Errorf("encode form state: %w", err)
	}
	return string(b), nil
}

// DecodeState parses a payload produced by EncodeState. Payloads without a
// version are read as version 1. Any other problem yields a *StateDecodeError,
// including a question number that does not match the number of answers.
func DecodeState(payload string) (State, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return State{}, &StateDecodeError{Payload: payload, Err: err}
	}
	if env.Version != nil && (*env.Version < 1 || *env.Version > StateVersion) {
		return State{}, &StateDecodeError{Payload: payload, Err: fmt.Errorf("unsupported version %d", *env.Version)}
	}
	if env.QuestionNumber == nil {
		return State{}, &StateDecodeError{Payload: payload, Err: errMissingQuestionNumber}
	}
	if *env.QuestionNumber < 0 {
		return State{}, &StateDecodeError{Payload: payload, Err: fmt.Errorf("negative question_number %d", *env.QuestionNumber)}
	}
	data := env.FormData
	if data == nil {
		data = map[string]any{}
	}
	if len(data) != *env.QuestionNumber {
		return State{}, &StateDecodeError{Payload: payload, Err: fmt.Errorf("question_number %d with %d answers", *env.QuestionNumber, len(data))}
	}
	return State{QuestionNumber: *env.QuestionNumber, FormData: data}, nil
}
