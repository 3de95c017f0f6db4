package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start main server.
type Profile struct {
	// LLM configuration. Every provider except anthropic speaks the
	// OpenAI-compatible protocol.
	LLMProvider      string // openai, anthropic, deepseek, openrouter, ollama
	LLMAPIKey        string // Ambient API key; empty means the heuristic summarizer is used
	LLMBaseURL       string
	LLMModel         string
	LLMTimeout       int // Remote call timeout in seconds (default: 30)
	LLMMaxConcurrent int // Concurrent outbound LLM calls (default: 4)

	// SummarizeRateLimit is the per-client request rate for the summarize
	// route in requests per second. Zero disables limiting.
	SummarizeRateLimit float64

	UNIXSock    string
	Mode        string
	DSN         string
	Driver      string
	Version     string
	InstanceURL string
	Addr        string
	Data        string
	Port        int
}

// Provider default configurations for LLM.
// Used when ALEMENO_AI_LLM_BASE_URL / ALEMENO_AI_LLM_MODEL are not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"anthropic": {
		BaseURL: "https://api.anthropic.com",
		Model:   "claude-haiku-4-5-20251001",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"openrouter": {
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/gpt-4o-mini",
	},
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an ambient LLM API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("ALEMENO_AI_LLM_PROVIDER", "openai")
	// OPENAI_API_KEY is the conventional name and wins over the prefixed one.
	p.LLMAPIKey = getEnvOrDefault("OPENAI_API_KEY", getEnvOrDefault("ALEMENO_AI_LLM_API_KEY", ""))
	p.LLMBaseURL = getEnvOrDefault("ALEMENO_AI_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("ALEMENO_AI_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("ALEMENO_AI_LLM_TIMEOUT_SECONDS", 30)
	p.LLMMaxConcurrent = getEnvOrDefaultInt("ALEMENO_AI_LLM_MAX_CONCURRENT", 4)
	p.SummarizeRateLimit = getEnvOrDefaultFloat("ALEMENO_SUMMARIZE_RATE_LIMIT", 0)

	if p.LLMBaseURL == "" || p.LLMModel == "" {
		if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
			if p.LLMBaseURL == "" {
				p.LLMBaseURL = defaults.BaseURL
			}
			if p.LLMModel == "" {
				p.LLMModel = defaults.Model
			}
		} else {
			slog.Info("Using generic OpenAI-compatible provider", "provider", p.LLMProvider)
		}
	}

	if rawURL := os.Getenv("DATABASE_URL"); rawURL != "" {
		driver, dsn, err := ParseDatabaseURL(rawURL)
		if err != nil {
			slog.Warn("Ignoring DATABASE_URL", "error", err)
			return
		}
		p.Driver = driver
		p.DSN = dsn
	}
}

// ParseDatabaseURL maps a DATABASE_URL onto a driver name and DSN.
// Supported forms are sqlite:///relative.db, sqlite:////abs/path.db,
// sqlite:///:memory: and postgres:// or postgresql:// URLs.
func ParseDatabaseURL(rawURL string) (string, string, error) {
	switch {
	case strings.HasPrefix(rawURL, "sqlite:///"):
		dsn := strings.TrimPrefix(rawURL, "sqlite:///")
		if dsn == "" {
			return "", "", errors.New("sqlite database path is empty")
		}
		return "sqlite", dsn, nil
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return "postgres", rawURL, nil
	default:
		return "", "", errors.Errorf("unsupported database url scheme: %s", rawURL)
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Relative data directories are resolved against the working directory.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported database driver: %s", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "alemeno")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/alemeno"
		}
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		p.DSN = filepath.Join(dataDir, fmt.Sprintf("alemeno_%s.db", p.Mode))
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn required for postgres driver")
	}

	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 30
	}
	if p.LLMMaxConcurrent <= 0 {
		p.LLMMaxConcurrent = 4
	}
	return nil
}
