package question

// Catalog defines the question catalog schema loaded from JSON or YAML.
type Catalog struct {
	Version   int          `json:"version" yaml:"version"`
	Questions []Definition `json:"questions" yaml:"questions"`
}

// Definition describes a single survey question.
type Definition struct {
	ID        string     `json:"id" yaml:"id"`
	Prompt    string     `json:"prompt" yaml:"prompt"`
	Kind      string     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Options   []string   `json:"options,omitempty" yaml:"options,omitempty"`
	Condition *Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Condition gates a question on a previously recorded answer. The loader
// does not check that TargetID refers to an existing question; unresolved
// references are handled at progression time.
type Condition struct {
	TargetID      string `json:"target_id" yaml:"target_id"`
	ExpectedValue string `json:"expected_value" yaml:"expected_value"`
}
