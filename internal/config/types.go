package config

// Config is the campaign configuration loaded from .canvass.yml.
type Config struct {
	Version  int            `yaml:"version"`
	Campaign CampaignConfig `yaml:"campaign"`
	Dialer   DialerConfig   `yaml:"dialer"`
	Agent    AgentConfig    `yaml:"agent"`
}

// CampaignConfig locates the contact sheet, question catalog, and archive.
type CampaignConfig struct {
	Sheet     string `yaml:"sheet"`
	Questions string `yaml:"questions"`
	Archive   string `yaml:"archive"`
}

// DialerConfig describes the telephony dispatch endpoint. The trunk id and
// API token come from the environment, not the file.
type DialerConfig struct {
	BaseURL    string `yaml:"base_url"`
	AgentName  string `yaml:"agent_name"`
	RoomPrefix string `yaml:"room_prefix"`
}

// AgentConfig describes the conversation model driving the survey dialogue.
type AgentConfig struct {
	Provider            string `yaml:"provider"`
	Model               string `yaml:"model"`
	Instructions        string `yaml:"instructions"`
	ClosingInstructions string `yaml:"closing_instructions"`
	MaxTurns            int    `yaml:"max_turns"`
}
