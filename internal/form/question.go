package form

// TemplateType selects how a question is rendered.
type TemplateType string

const (
	TemplateButton       TemplateType = "button"
	TemplateQuickReplies TemplateType = "quick_replies"
)

// Question is a single step of the form. Questions are loaded once at start-up
// and never modified afterwards.
type Question struct {
	Index        int          `json:"index" yaml:"index"`
	Field        string       `json:"field" yaml:"field"`
	Text         string       `json:"text" yaml:"text"`
	TemplateType TemplateType `json:"template_type" yaml:"template_type"`
	Options      []Option     `json:"options" yaml:"options"`
}

// Option is one selectable answer. Value is a JSON scalar (string, bool, number or nil).
type Option struct {
	Title    string `json:"title" yaml:"title"`
	Value    any    `json:"value" yaml:"value"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}
