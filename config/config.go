// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"GUIDEFE_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"GUIDEFE_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"GUIDEFE_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"GUIDEFE_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"GUIDEFE_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"GUIDEFE_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Languages struct {
		Default   string   `env:"GUIDEFE_DEFAULT_LANGUAGE,overwrite" yaml:"default"`
		Supported []string `env:"GUIDEFE_LANGUAGES,overwrite" yaml:"supported"`
		// Base URL of a remote host serving /languages/<code>.json.
		// Empty means dictionaries are read from the bundled files.
		RawDictionaryOrigin string  `env:"GUIDEFE_DICTIONARY_ORIGIN,overwrite" yaml:"dictionaryOrigin"`
		DictionaryOrigin    url.URL `yaml:"-"`
		Preload             bool    `env:"GUIDEFE_PRELOAD_LANGUAGES,overwrite" yaml:"preload"`
	} `yaml:"languages"`

	Cache struct {
		Enabled bool          `env:"GUIDEFE_CACHE,overwrite" yaml:"enabled"`
		Size    int           `env:"GUIDEFE_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		TTL     time.Duration `env:"GUIDEFE_CACHE_TTL,overwrite" yaml:"cacheTTL"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"GUIDEFE_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"GUIDEFE_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"GUIDEFE_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"GUIDEFE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"GUIDEFE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"GUIDEFE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"GUIDEFE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled           bool `env:"GUIDEFE_LIMITER,overwrite" yaml:"enabled"`
		RequestsPerSecond int  `env:"GUIDEFE_LIMITER_RPS,overwrite" yaml:"requestsPerSecond"`
		Burst             int  `env:"GUIDEFE_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (GUIDEFE_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		// Command-line flag has the highest precedence.
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("GUIDEFE_CONFIGFILE"); envVar != "" {
		// Environment variable is next.
		configFilePath = envVar
	} else {
		// If neither flag nor env var was provided, use the default value
		// from the flag ("./config.yaml").
		configFilePath = parsedConfigFlagValue
		// Then, perform a fallback check for "./config.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	// Heuristically check for containerized environment and warn if host is not a wildcard address.
	if isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

var staticSkippedPathPrefixes = []string{"/img/", "/css/", "/js/"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	// Check for a Kubernetes-injected environment variable.
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	// Check for existence of container-specific files.
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if _, err := os.Stat("/.containerenv"); err == nil {
		return true
	}

	// Check the cgroup of the current process.
	// #nosec G304 -- We are checking for the existence and content of a well-known system file for heuristics.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err == nil {
		content := string(cgroup)

		// Check for keywords common in container cgroup paths.
		return strings.Contains(content, "docker") ||
			strings.Contains(content, "kubepods") ||
			strings.Contains(content, "containerd") ||
			strings.Contains(content, "lxc") ||
			strings.Contains(content, "crio") ||
			// systemd-nspawn containers
			strings.Contains(content, ".machine")
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
