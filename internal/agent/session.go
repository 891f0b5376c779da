// Package agent drives the survey conversation for one call: it keeps the
// dialogue history, re-injects the engine's progress summary as system
// context after every state change, and maps the model's tool calls onto
// the progression engine.
package agent

import (
	"strings"

	"canvass/internal/survey"
)

// Phase is the session's conversational stage. The survey phase asks and
// records questions; the closing phase thanks the respondent and saves.
type Phase string

const (
	PhaseSurveying Phase = "surveying"
	PhaseClosing   Phase = "closing"
)

// Message is one turn in the session history.
type Message struct {
	Role       string
	Content    string
	ToolCallID string
	ToolCalls  []ToolCall
}

// Roles used in session history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Session tracks one call's conversation state. It owns the engine for the
// call and is single-threaded, like the engine beneath it.
type Session struct {
	Engine              *survey.Engine
	Instructions        string
	ClosingInstructions string
	History             []Message

	phase Phase
}

// NewSession starts a session in the surveying phase, or directly in the
// closing phase when the catalog is somehow already exhausted.
func NewSession(engine *survey.Engine, instructions, closingInstructions string) *Session {
	session := &Session{
		Engine:              engine,
		Instructions:        instructions,
		ClosingInstructions: closingInstructions,
	}
	session.phase = PhaseSurveying
	if engine.IsComplete() {
		session.phase = PhaseClosing
	}
	return session
}

// Phase returns the current conversational stage.
func (s *Session) Phase() Phase {
	return s.phase
}

// SyncPhase moves the session to the closing phase once the engine reports
// completion. Phases never move backwards.
func (s *Session) SyncPhase() {
	if s.phase == PhaseSurveying && s.Engine.IsComplete() {
		s.phase = PhaseClosing
	}
}

// SystemContext builds the system message for the current phase: the phase
// instructions followed by the engine's progress summary. Rebuilt from
// state on every call so it always reflects the latest answers.
func (s *Session) SystemContext() string {
	instructions := s.Instructions
	if s.phase == PhaseClosing {
		instructions = s.ClosingInstructions
	}
	parts := []string{}
	if strings.TrimSpace(instructions) != "" {
		parts = append(parts, strings.TrimSpace(instructions))
	}
	parts = append(parts, s.Engine.Summarize())
	return strings.Join(parts, "\n\n")
}

// AppendUser adds a transcribed respondent utterance to the history.
func (s *Session) AppendUser(text string) {
	s.History = append(s.History, Message{Role: RoleUser, Content: text})
}

// AppendAssistant adds a model reply, including any tool calls it made.
func (s *Session) AppendAssistant(content string, toolCalls []ToolCall) {
	s.History = append(s.History, Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls})
}

// AppendToolResult adds a tool invocation result keyed to its call id.
func (s *Session) AppendToolResult(callID, content string) {
	s.History = append(s.History, Message{Role: RoleTool, ToolCallID: callID, Content: content})
}
