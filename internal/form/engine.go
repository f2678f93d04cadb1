package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// CompletionBanner prefixes the summary sent once every question is answered.
const CompletionBanner = "You have completed the form!  Here are your responses: "

// ErrQuestionIndex is returned for an index that can never name a question.
var ErrQuestionIndex = errors.New("question index out of range")

// Engine walks a fixed list of questions. It holds no per-conversation data,
// so a single Engine serves every conversation concurrently.
type Engine struct {
	questions []Question
}

// NewEngine copies questions into a new Engine.
func NewEngine(questions []Question) *Engine {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}
	return &Engine{questions: qs}
}

// Len is the number of questions in the form.
func (e *Engine) Len() int {
	return len(e.questions)
}

// Question returns the question at index i.
func (e *Engine) Question(i int) (Question, bool) {
	if i < 0 || i >= len(e.questions) {
		return Question{}, false
	}
	q := e.questions[i]
	q.Options = slices.Clone(q.Options)
	return q, true
}

// Questions returns a copy of the configured questions.
func (e *Engine) Questions() []Question {
	out := make([]Question, 0, len(e.questions))
	for i := range e.questions {
		q, _ := e.Question(i)
		out = append(out, q)
	}
	return out
}

// Complete reports whether s has answered every question.
func (e *Engine) Complete(s State) bool {
	return s.QuestionNumber >= len(e.questions)
}

// DecodeState decodes payload and checks that every answer belongs to one of
// the questions before its question number.
func (e *Engine) DecodeState(payload string) (State, error) {
	s, err := DecodeState(payload)
	if err != nil {
		return State{}, err
	}
	asked := e.questions[:min(s.QuestionNumber, len(e.questions))]
	for field := range s.FormData {
		if !slices.ContainsFunc(asked, func(q Question) bool { return q.Field == field }) {
			return State{}, &StateDecodeError{Payload: payload, Err: fmt.Errorf("unexpected answer for %q", field)}
		}
	}
	return s, nil
}

// NextPrompt returns the message for the question at index, or the completion
// summary once index runs past the last question.
func (e *Engine) NextPrompt(index int, s State) (Message, error) {
	if index < 0 {
		return Message{}, fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}
	if index >= len(e.questions) {
		return TextMessage(e.Summary(s)), nil
	}
	return Render(e.questions[index], s)
}

// Summary lists every recorded answer as "field: value", in question order.
// Answers for fields that are not part of the form come last, sorted by name.
func (e *Engine) Summary(s State) string {
	seen := make(map[string]bool, len(e.questions))
	pairs := make([]string, 0, len(s.FormData))
	for _, q := range e.questions {
		if seen[q.Field] {
			continue
		}
		seen[q.Field] = true
		if v, ok := s.FormData[q.Field]; ok {
			pairs = append(pairs, formatAnswer(q.Field, v))
		}
	}
	var extra []string
	for field := range s.FormData {
		if !seen[field] {
			extra = append(extra, field)
		}
	}
	slices.Sort(extra)
	for _, field := range extra {
		pairs = append(pairs, formatAnswer(field, s.FormData[field]))
	}
	return CompletionBanner + strings.Join(pairs, ", ")
}

func formatAnswer(field string, v any) string {
	return fmt.Sprintf("%s: %v", field, v)
}
