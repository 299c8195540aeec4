package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"taskdash/infrastructure/logger"

	"github.com/spf13/viper"
)

// envFiles are applied before the config is read so their values are visible
// to the env-precedence checks below. Values never override the OS environment.
var envFiles = []string{"config.env", ".env"}

type Config struct {
	App       App       `json:"app"`
	YouTube   YouTube   `json:"youtube"`
	Jira      Jira      `json:"jira"`
	AI        AI        `json:"ai"`
	Storage   Storage   `json:"storage"`
	Scheduler Scheduler `json:"scheduler"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
	// Password gates the single-user dashboard login.
	Password string `json:"password"`
}

type YouTube struct {
	// LoopbackPort is the fixed local port the OAuth redirect listener binds.
	LoopbackPort int `json:"loopbackPort"`
	// AuthTimeoutSeconds bounds how long an authentication waits for the
	// browser redirect before giving up.
	AuthTimeoutSeconds int `json:"authTimeoutSeconds"`
}

type Jira struct {
	BaseURL  string `json:"baseURL"`
	Email    string `json:"email"`
	APIToken string `json:"apiToken"`
}

type AI struct {
	Provider string `json:"provider"` // openai | anthropic
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
}

type Storage struct {
	// DataDir holds all local state: credentials, settings, snapshots,
	// upload history and the job registry.
	DataDir string `json:"dataDir"`
}

type Scheduler struct {
	PollIntervalSeconds int `json:"pollIntervalSeconds"`
}

var C Config

func init() {
	for _, p := range envFiles {
		applyEnvFile(p)
	}
	LoadConfig()
	initApp(&C)
	initYouTube(&C)
	initJira(&C)
	initAI(&C)
	initStorage(&C)
	initScheduler(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	if v := os.Getenv("DASHBOARD_PASSWORD"); v != "" {
		C.App.Password = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10310
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10310
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; dashboard login will fail. Provide SECRET_KEY via environment.")
	}
}

func initYouTube(C *Config) {
	if v := os.Getenv("YOUTUBE_LOOPBACK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.YouTube.LoopbackPort = p
		}
	}
	if C.YouTube.LoopbackPort == 0 {
		C.YouTube.LoopbackPort = 8766
	}
	if C.YouTube.AuthTimeoutSeconds == 0 {
		C.YouTube.AuthTimeoutSeconds = 300
	}
}

func initJira(C *Config) {
	C.Jira.BaseURL = getConfigValue(C.Jira.BaseURL, "JIRA_BASE_URL", "")
	C.Jira.Email = getConfigValue(C.Jira.Email, "JIRA_EMAIL", "")
	C.Jira.APIToken = getConfigValue(C.Jira.APIToken, "JIRA_API_TOKEN", "")
}

func initAI(C *Config) {
	C.AI.Provider = getConfigValue(C.AI.Provider, "AI_PROVIDER", "openai")
	C.AI.APIKey = getConfigValue(C.AI.APIKey, "AI_API_KEY", "")
	C.AI.Model = getConfigValue(C.AI.Model, "AI_MODEL", "")
	if C.AI.Endpoint == "" {
		switch C.AI.Provider {
		case "anthropic":
			C.AI.Endpoint = "https://api.anthropic.com/v1/messages"
		default:
			C.AI.Endpoint = "https://api.openai.com/v1/chat/completions"
		}
	}
}

func initStorage(C *Config) {
	C.Storage.DataDir = getConfigValue(C.Storage.DataDir, "TASKDASH_DATA_DIR", "data")
	if err := os.MkdirAll(C.Storage.DataDir, 0o755); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create data directory")
	}
}

func initScheduler(C *Config) {
	if C.Scheduler.PollIntervalSeconds == 0 {
		C.Scheduler.PollIntervalSeconds = 30
	}
}

// applyEnvFile sets KEY=VALUE pairs from a dotenv-style file into the process
// environment. Missing files are skipped; blank lines, # comments and an
// optional "export " prefix are tolerated. Already-set variables are kept.
func applyEnvFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, val)
		}
	}
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	// Environment variable takes precedence when provided
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}
