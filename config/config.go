package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Mail sources
	Mail  MailConfig
	Gmail GmailConfig

	// Extraction pipeline
	Parsing ParsingConfig
	Output  OutputConfig

	// HTTP API hardening
	API APIConfig

	// Timezone is the IANA zone used to resolve date expressions such
	// as "last week". "Local" uses the host zone.
	Timezone string
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// MailConfig selects and configures the mailbox the extractor reads.
// Provider is "imap" or "gmail"; anything else leaves the service
// without a mail source, which still serves ad-hoc parsing.
type MailConfig struct {
	Provider string

	// IMAP
	Server   string
	Port     int
	Username string
	Password string
	UseSSL   bool
	Folder   string
}

type GmailConfig struct {
	CredentialsPath string
	User            string
	RatePerMinute   int
}

// ParsingConfig carries the extraction matchers. Empty lists fall back
// to the built-in defaults.
type ParsingConfig struct {
	Keywords     []string
	TimePatterns []string
	Terminators  []string

	CacheSize int
	CacheTTL  time.Duration
}

type OutputConfig struct {
	DefaultFormat string
	FilePath      string
}

type APIConfig struct {
	AuthToken       string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/eod-extractor/
func Load() (*Config, error) {
	return load("")
}

// LoadFile loads configuration from an explicitly named file. Unlike
// Load, a missing or unreadable file is an error.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

func load(explicitFile string) (*Config, error) {
	if explicitFile != "" {
		viper.SetConfigFile(explicitFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/eod-extractor/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicitFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Mailbox
	cfg.Mail.Provider = strings.ToLower(viper.GetString("email.provider"))
	cfg.Mail.Server = viper.GetString("email.server")
	cfg.Mail.Port = viper.GetInt("email.port")
	cfg.Mail.Username = viper.GetString("email.username")
	cfg.Mail.Password = viper.GetString("email.password")
	cfg.Mail.UseSSL = viper.GetBool("email.use_ssl")
	cfg.Mail.Folder = viper.GetString("email.folder")
	if mailUser := viper.GetString("email_username"); mailUser != "" {
		cfg.Mail.Username = mailUser
	}
	if mailPass := viper.GetString("email_password"); mailPass != "" {
		cfg.Mail.Password = mailPass
	}

	// Gmail API
	cfg.Gmail.CredentialsPath = viper.GetString("gmail.credentials_path")
	cfg.Gmail.User = viper.GetString("gmail.user")
	cfg.Gmail.RatePerMinute = viper.GetInt("gmail.rate_per_minute")
	if gmailCreds := viper.GetString("gmail_credentials"); gmailCreds != "" {
		cfg.Gmail.CredentialsPath = gmailCreds
	}

	// Extraction matchers, passed through verbatim: entries may be
	// regular expressions or pure-whitespace markers such as "\n\n\n",
	// so no trimming or splitting happens here.
	cfg.Parsing.Keywords = viper.GetStringSlice("parsing.eod_keywords")
	cfg.Parsing.TimePatterns = viper.GetStringSlice("parsing.time_patterns")
	cfg.Parsing.Terminators = viper.GetStringSlice("parsing.section_terminators")
	cfg.Parsing.CacheSize = viper.GetInt("parsing.cache_size")
	cfg.Parsing.CacheTTL = viper.GetDuration("parsing.cache_ttl")

	// Output
	cfg.Output.DefaultFormat = viper.GetString("output.default_format")
	cfg.Output.FilePath = viper.GetString("output.file_path")

	// API hardening
	cfg.API.AuthToken = expandEnvVar(viper.GetString("api.auth_token"))
	cfg.API.RateLimitPerMin = viper.GetInt("api.rate_limit_per_min")
	if apiToken := viper.GetString("api_auth_token"); apiToken != "" {
		cfg.API.AuthToken = apiToken
	}

	cfg.Timezone = viper.GetString("timezone")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("email.provider", "imap")
	viper.SetDefault("email.port", 993)
	viper.SetDefault("email.use_ssl", true)
	viper.SetDefault("email.folder", "INBOX")
	viper.SetDefault("gmail.user", "me")
	viper.SetDefault("gmail.rate_per_minute", 60)
	viper.SetDefault("parsing.cache_size", 1024)
	viper.SetDefault("parsing.cache_ttl", "15m")
	viper.SetDefault("output.default_format", "json")
	viper.SetDefault("api.rate_limit_per_min", 60)
	viper.SetDefault("timezone", "Local")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
