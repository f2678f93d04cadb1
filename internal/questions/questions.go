// Package questions loads the questionnaire the form engine walks through.
package questions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"messenger-formbot/internal/form"
)

// Platform limits on the number of options per template.
const (
	MaxButtons      = 3
	MaxQuickReplies = 13
)

//go:embed default.yaml
var defaultQuestions []byte

var (
	ErrNoQuestions    = errors.New("questionnaire has no questions")
	ErrPayloadTooLong = errors.New("answer payload exceeds the platform limit")
)

type document struct {
	Questions []form.Question `json:"questions" yaml:"questions"`
}

// Load reads the questionnaire at path. An empty path loads the built-in one.
func Load(path string) ([]form.Question, error) {
	if path == "" {
		return Parse(defaultQuestions, "yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Parse decodes a questionnaire in the given format ("json", "yaml" or "yml")
// and validates it. Option values are normalized to their JSON form so they
// compare equal to values decoded back from a payload.
func Parse(data []byte, format string) ([]form.Question, error) {
	var doc document
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported questions format %q", format)
	}

	if err := normalize(doc.Questions); err != nil {
		return nil, err
	}
	if err := Validate(doc.Questions); err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

func normalize(questions []form.Question) error {
	for i := range questions {
		questions[i].Index = i
		questions[i].Field = strings.TrimSpace(questions[i].Field)
		for j, opt := range questions[i].Options {
			switch opt.Value.(type) {
			case map[string]any, []any:
				return fmt.Errorf("question %d option %q: value must be a scalar", i, opt.Title)
			}
			b, err := json.Marshal(opt.Value)
			if err != nil {
				return fmt.Errorf("question %d option %q: %w", i, opt.Title, err)
			}
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				return fmt.Errorf("question %d option %q: %w", i, opt.Title, err)
			}
			questions[i].Options[j].Value = v
		}
	}
	return nil
}

// Validate checks a questionnaire against the rules the renderer relies on.
// Unknown template types are allowed; they render as a fallback text.
func Validate(questions []form.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	fields := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.Field == "" {
			return fmt.Errorf("question %d: field is required", i)
		}
		if prev, ok := fields[q.Field]; ok {
			return fmt.Errorf("question %d: field %q already used by question %d", i, q.Field, prev)
		}
		fields[q.Field] = i
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d (%s): text is required", i, q.Field)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d (%s): at least one option is required", i, q.Field)
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt.Title) == "" {
				return fmt.Errorf("question %d (%s): option title is required", i, q.Field)
			}
		}
		switch q.TemplateType {
		case form.TemplateButton:
			if len(q.Options) > MaxButtons {
				return fmt.Errorf("question %d (%s): %d buttons, at most %d allowed", i, q.Field, len(q.Options), MaxButtons)
			}
		case form.TemplateQuickReplies:
			if len(q.Options) > MaxQuickReplies {
				return fmt.Errorf("question %d (%s): %d quick replies, at most %d allowed", i, q.Field, len(q.Options), MaxQuickReplies)
			}
		}
	}

	n, err := worstCasePayloadLen(questions)
	if err != nil {
		return err
	}
	if n > form.MaxPayloadLen {
		return fmt.Errorf("%w: longest answers encode to %d bytes, limit is %d", ErrPayloadTooLong, n, form.MaxPayloadLen)
	}
	return nil
}

// worstCasePayloadLen is the length of the last payload of a form where every
// answer is the option value with the longest encoding.
func worstCasePayloadLen(questions []form.Question) (int, error) {
	s := form.NewState()
	for _, q := range questions {
		var longest any
		size := -1
		for _, opt := range q.Options {
			b, err := json.Marshal(opt.Value)
			if err != nil {
				return 0, fmt.Errorf("question %d (%s) option %q: %w", q.Index, q.Field, opt.Title, err)
			}
			if len(b) > size {
				longest, size = opt.Value, len(b)
			}
		}
		s = s.RecordAnswer(q.Field, longest)
	}
	payload, err := form.EncodeState(s)
	if err != nil {
		return 0, err
	}
	return len(payload), nil
}
