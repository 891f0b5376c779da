package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolSchema describes the JSON schema for tool parameters.
type ToolSchema struct {
	Type                 string                `json:"type,omitempty"`
	Properties           map[string]ToolSchema `json:"properties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	AdditionalProperties *bool                 `json:"additionalProperties,omitempty"`
}

// ToolDefinition describes a callable tool exposed to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ToolSchema
}

// ToolCall describes a tool invocation emitted by the model.
type ToolCall struct {
	ID   string
	Name string
	Args ToolCallArgs
}

// ToolCallArgs holds decoded JSON arguments for a tool call.
type ToolCallArgs map[string]json.RawMessage

// RequiredString returns a required string argument.
func (args ToolCallArgs) RequiredString(key string) (string, error) {
	raw, ok := args[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("%s is required", key)
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// ParseToolCallArgs decodes a JSON argument payload from the model.
func ParseToolCallArgs(payload string) (ToolCallArgs, error) {
	if strings.TrimSpace(payload) == "" {
		return ToolCallArgs{}, nil
	}
	var args ToolCallArgs
	if err := json.Unmarshal([]byte(payload), &args); err != nil {
		return nil, fmt.Errorf("parse tool arguments: %w", err)
	}
	return args, nil
}

// Tool names exposed to the survey model.
const (
	ToolRecordAnswer = "record_answer"
	ToolSkipQuestion = "skip_question"
	ToolSaveSurvey   = "save_survey"
)

func boolPointer(value bool) *bool {
	return &value
}

// SurveyToolDefinitions returns the tools available during the survey phase.
func SurveyToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolRecordAnswer,
			Description: "Record the respondent's answer to the current question. Call this first whenever the respondent answers.",
			Parameters: &ToolSchema{
				Type: "object",
				Properties: map[string]ToolSchema{
					"answer": {Type: "string"},
				},
				Required:             []string{"answer"},
				AdditionalProperties: boolPointer(false),
			},
		},
		{
			Name:        ToolSkipQuestion,
			Description: "Skip the current question without an answer when the respondent declines to answer it.",
			Parameters: &ToolSchema{
				Type:                 "object",
				AdditionalProperties: boolPointer(false),
			},
		},
	}
}

// ClosingToolDefinitions returns the tools available during the closing phase.
func ClosingToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolSaveSurvey,
			Description: "Save the completed survey and end the call. Call this once after thanking the respondent.",
			Parameters: &ToolSchema{
				Type:                 "object",
				AdditionalProperties: boolPointer(false),
			},
		},
	}
}
