package config

const (
	defaultRoomPrefix = "survey-call-"
	defaultAgentName  = "survey-agent"
	defaultProvider   = "openai"
	defaultMaxTurns   = 40
)

// Normalize fills defaults for optional fields.
func Normalize(cfg *Config) {
	if cfg.Dialer.RoomPrefix == "" {
		cfg.Dialer.RoomPrefix = defaultRoomPrefix
	}
	if cfg.Dialer.AgentName == "" {
		cfg.Dialer.AgentName = defaultAgentName
	}
	if cfg.Agent.Provider == "" {
		cfg.Agent.Provider = defaultProvider
	}
	if cfg.Agent.MaxTurns <= 0 {
		cfg.Agent.MaxTurns = defaultMaxTurns
	}
}
