package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultSummaryPrompt is used when no custom prompt is configured.
// The transcript is substituted for the %s placeholder.
const DefaultSummaryPrompt = `Summarize the text delimited by ####
The text is a transcription of a meeting.
The summary should include the main topics discussed.
The summary should have a maximum of 300 characters.
The summary should be in running text.
At the end, all agreements and arrangements
made in the meeting should be presented in bullet point format.

The final format I want is:

Meeting Summary:
- write the summary here.

text: ####%s####`

const (
	DefaultPort          = 8501
	DefaultFlushInterval = 5 * time.Second
	DefaultLanguage      = "pt"
	DefaultWhisperModel  = "whisper-1"
	DefaultChatModel     = "gpt-3.5-turbo-1106"
)

type Config struct {
	MeetingsDir   string
	OpenAIAPIKey  string
	OpenAIBaseURL string // overridable for self-hosted gateways
	Port          int
	FlushInterval time.Duration
	Language      string // language hint for transcription, empty = auto-detect
	WhisperModel  string
	ChatModel     string
	SummaryPrompt string
	LogLevel      string
	LogFormat     string // json or console
}

type fileConfig struct {
	MeetingsDir          string `toml:"meetings_dir"`
	OpenAIAPIKey         string `toml:"openai_api_key"`
	OpenAIBaseURL        string `toml:"openai_base_url"`
	Port                 int    `toml:"port"`
	FlushIntervalSeconds int    `toml:"flush_interval_seconds"`
	Language             string `toml:"language"`
	WhisperModel         string `toml:"whisper_model"`
	ChatModel            string `toml:"chat_model"`
	SummaryPrompt        string `toml:"summary_prompt"`
	LogLevel             string `toml:"log_level"`
	LogFormat            string `toml:"log_format"`
}

func Load() (*Config, error) {
	// Like the original tool, a .env in the working directory is honored.
	_ = godotenv.Load()

	cfg := &Config{
		MeetingsDir:   defaultMeetingsDir(),
		OpenAIBaseURL: "https://api.openai.com/v1",
		Port:          DefaultPort,
		FlushInterval: DefaultFlushInterval,
		Language:      DefaultLanguage,
		WhisperModel:  DefaultWhisperModel,
		ChatModel:     DefaultChatModel,
		SummaryPrompt: DefaultSummaryPrompt,
		LogLevel:      "info",
		LogFormat:     "console",
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.MeetingsDir != "" {
				cfg.MeetingsDir = expandTilde(fc.MeetingsDir)
			}
			if fc.OpenAIAPIKey != "" {
				cfg.OpenAIAPIKey = fc.OpenAIAPIKey
			}
			if fc.OpenAIBaseURL != "" {
				cfg.OpenAIBaseURL = fc.OpenAIBaseURL
			}
			if fc.Port > 0 {
				cfg.Port = fc.Port
			}
			if fc.FlushIntervalSeconds > 0 {
				cfg.FlushInterval = time.Duration(fc.FlushIntervalSeconds) * time.Second
			}
			if fc.Language != "" {
				cfg.Language = fc.Language
			}
			if fc.WhisperModel != "" {
				cfg.WhisperModel = fc.WhisperModel
			}
			if fc.ChatModel != "" {
				cfg.ChatModel = fc.ChatModel
			}
			if fc.SummaryPrompt != "" {
				cfg.SummaryPrompt = fc.SummaryPrompt
			}
			if fc.LogLevel != "" {
				cfg.LogLevel = fc.LogLevel
			}
			if fc.LogFormat != "" {
				cfg.LogFormat = fc.LogFormat
			}
		}
	}

	applyEnvOverrides(cfg)

	// Ensure the meetings directory exists
	if err := os.MkdirAll(cfg.MeetingsDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("MEETTRANSCRIPT_MEETINGS_DIR"); v != "" {
		cfg.MeetingsDir = expandTilde(v)
	}
	if v := os.Getenv("MEETTRANSCRIPT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("MEETTRANSCRIPT_LANGUAGE"); v != "" {
		cfg.Language = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "meet-transcript")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "meet-transcript")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultMeetingsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "meetings")
	}
	return filepath.Join(".", "meetings")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
