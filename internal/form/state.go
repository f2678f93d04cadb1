package form

import "maps"

// State is the whole progress of one conversation: the index of the next
// unanswered question and the answers recorded so far. It is never stored on
// the server; it travels inside option payloads.
type State struct {
	QuestionNumber int            `json:"question_number"`
	FormData       map[string]any `json:"form_data"`
}

// NewState returns the state of a form that has just been started.
func NewState() State {
	return State{FormData: map[string]any{}}
}

// RecordAnswer returns a copy of s with field set to value and the question
// number advanced by one. s itself is left untouched.
func (s State) RecordAnswer(field string, value any) State {
	data := make(map[string]any, len(s.FormData)+1)
	maps.Copy(data, s.FormData)
	data[field] = value
	return State{
		QuestionNumber: s.QuestionNumber + 1,
		FormData:       data,
	}
}

// Answer returns the recorded value for field.
func (s State) Answer(field string) (any, bool) {
	v, ok := s.FormData[field]
	return v, ok
}
