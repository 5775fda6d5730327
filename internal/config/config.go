package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeBasic  = "basic"
	AuthModeBearer = "bearer"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Config struct {
	GithubOwner    string        `mapstructure:"github_owner"`
	GithubRepo     string        `mapstructure:"github_repo"`
	ProjectName    string        `mapstructure:"project_name"`
	APIURL         string        `mapstructure:"api_url"`
	ProjectDir     string        `mapstructure:"project_dir"`
	MetadataFile   string        `mapstructure:"metadata_file"`
	TokenFile      string        `mapstructure:"token_file"`
	AuthMode       string        `mapstructure:"auth_mode"`
	EnableRollback bool          `mapstructure:"enable_rollback"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		GithubOwner:  "labsyspharm",
		GithubRepo:   "OMERO_scripts",
		APIURL:       "https://api.github.com/",
		ProjectDir:   ".",
		MetadataFile: "setup.cfg",
		TokenFile:    "~/.git_release_token",
		AuthMode:     AuthModeBasic,
		LockTimeout:  30 * time.Second,
		HTTPTimeout:  60 * time.Second,
		LogLevel:     "info",
		LogFormat:    LogFormatConsole,
	}
}

// Project returns the display name used in release titles.
func (c *Config) Project() string {
	if c.ProjectName != "" {
		return c.ProjectName
	}
	return c.GithubRepo
}

// GitHost returns the git host served by the configured API: github.com for
// api.github.com, the API host itself for GitHub Enterprise.
func (c *Config) GitHost() string {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "api.github.com" {
		return "github.com"
	}
	return host
}

// TokenPath returns the token file path with a leading ~ expanded.
func (c *Config) TokenPath() (string, error) {
	return ExpandHome(c.TokenFile)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("invalid api_url: unsupported scheme %q", u.Scheme)
	}
	if c.MetadataFile == "" {
		return fmt.Errorf("metadata_file cannot be empty")
	}
	if c.TokenFile == "" {
		return fmt.Errorf("token_file cannot be empty")
	}
	switch c.AuthMode {
	case AuthModeBasic, AuthModeBearer:
	default:
		return fmt.Errorf("invalid auth_mode %q: expected %s or %s", c.AuthMode, AuthModeBasic, AuthModeBearer)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LoadConfig loads configuration from the working directory and environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".")
}

// LoadConfigFrom loads .release-tagger.yaml from dir, then applies environment overrides.
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".release-tagger")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	// Configure environment variables
	v.SetEnvPrefix("RELEASE_TAGGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	if err := v.BindEnv("github_owner", "RELEASE_TAGGER_GITHUB_OWNER", "GITHUB_OWNER"); err != nil {
		return nil, fmt.Errorf("failed to bind github_owner env: %w", err)
	}
	if err := v.BindEnv("github_repo", "RELEASE_TAGGER_GITHUB_REPO", "GITHUB_REPO"); err != nil {
		return nil, fmt.Errorf("failed to bind github_repo env: %w", err)
	}
	defaults := DefaultConfig()
	v.SetDefault("github_owner", defaults.GithubOwner)
	v.SetDefault("github_repo", defaults.GithubRepo)
	v.SetDefault("project_name", defaults.ProjectName)
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("project_dir", defaults.ProjectDir)
	v.SetDefault("metadata_file", defaults.MetadataFile)
	v.SetDefault("token_file", defaults.TokenFile)
	v.SetDefault("auth_mode", defaults.AuthMode)
	v.SetDefault("enable_rollback", defaults.EnableRollback)
	v.SetDefault("lock_timeout", defaults.LockTimeout)
	v.SetDefault("http_timeout", defaults.HTTPTimeout)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
