package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for secrets kept out of the config file.
const (
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvDialerAPIToken = "DIALER_API_TOKEN"
	EnvOutboundTrunk  = "SIP_OUTBOUND_TRUNK_ID"
)

// LoadEnv loads a .env file if one exists. Missing files are fine; the
// environment may already be populated by the caller's shell or supervisor.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// RequireEnv returns a trimmed environment value or an error naming the
// missing variable.
func RequireEnv(name string) (string, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("missing %s in environment", name)
	}
	return value, nil
}
