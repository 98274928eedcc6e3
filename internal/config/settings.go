// Package config provides the planner policy and process settings.
// Settings come from environment variables with sensible defaults; the
// policy comes from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort         = 8788
	DefaultLogLevel     = "info"
	DefaultScriptWriter = WriterTemplate
	DefaultModel        = "z-ai/glm-4.5-air:free"
	DefaultBaseURL      = "https://openrouter.ai"

	EnvPort         = "REELPLAN_PORT"
	EnvLogLevel     = "REELPLAN_LOG_LEVEL"
	EnvPolicyFile   = "REELPLAN_POLICY_FILE"
	EnvScriptWriter = "REELPLAN_SCRIPT_WRITER"

	EnvOpenRouterKey          = "OPENROUTER_API_KEY"
	EnvOpenRouterModel        = "OPENROUTER_MODEL"
	EnvOpenRouterBaseURL      = "OPENROUTER_BASE_URL"
	EnvOpenRouterAllowedHosts = "OPENROUTER_ALLOWED_HOSTS"
)

const (
	WriterTemplate   = "template"
	WriterOpenRouter = "openrouter"
)

type Settings struct {
	Port         int
	LogLevel     string
	PolicyFile   string
	ScriptWriter string

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string
}

// FromEnv reads Settings from the process environment. Only malformed values
// fail here; callers apply flag overrides and then call Validate.
func FromEnv() (Settings, error) {
	s := Settings{
		Port:              DefaultPort,
		LogLevel:          getenvDefault(EnvLogLevel, DefaultLogLevel),
		PolicyFile:        os.Getenv(EnvPolicyFile),
		ScriptWriter:      strings.ToLower(getenvDefault(EnvScriptWriter, DefaultScriptWriter)),
		OpenRouterAPIKey:  os.Getenv(EnvOpenRouterKey),
		OpenRouterModel:   getenvDefault(EnvOpenRouterModel, DefaultModel),
		OpenRouterBaseURL: getenvDefault(EnvOpenRouterBaseURL, DefaultBaseURL),
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if err := ValidatePort(port); err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		s.Port = port
	}

	if hosts := os.Getenv(EnvOpenRouterAllowedHosts); hosts != "" {
		s.OpenRouterAllowedHosts = strings.Split(hosts, ",")
	}

	return s, nil
}

func (s Settings) Validate() error {
	switch s.ScriptWriter {
	case WriterTemplate:
		return nil
	case WriterOpenRouter:
		if s.OpenRouterAPIKey == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvOpenRouterKey, EnvScriptWriter, WriterOpenRouter)
		}
		return nil
	default:
		return fmt.Errorf("invalid %s %q: want %s or %s", EnvScriptWriter, s.ScriptWriter, WriterTemplate, WriterOpenRouter)
	}
}

// ValidatePort checks a TCP listen port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// Version is set at build time via ldflags.
var Version = "0.1.0"
