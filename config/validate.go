// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/server/utils"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errNoDefaultLanguage            = errors.New("Languages.Default cannot be empty")
	errNoSupportedLanguages         = errors.New("Languages.Supported cannot be empty")
	errInvalidCacheSize             = errors.New("Cache.Size must be positive when the cache is enabled")
	errInvalidLogFormat             = errors.New("invalid Log.Format value")
	errInvalidLimiterRate           = errors.New("Limiter.RequestsPerSecond must be positive when the limiter is enabled")
	errInvalidLimiterBurst          = errors.New("Limiter.Burst must be positive when the limiter is enabled")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	// Handle listener configuration
	if cfg.Basic.UnixSocket != "" {
		if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
			return errUnixSocketWithHostPort
		}

		// Handle unix socket permissions
		switch {
		case cfg.Basic.RawUnixSocketPermissions == "":
			cfg.Basic.UnixSocketPermissions = 0o666
		case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			rawModeUint64, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

			cfg.Basic.UnixSocketPermissions = os.FileMode(rawModeUint64)
		case fileModeStringRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			mode := os.FileMode(0)

			for i, c := range cfg.Basic.RawUnixSocketPermissions {
				// If permission bit is set
				if c != '-' {
					// Set i-th bit from the end
					const bitsInByte = 8

					mode |= 1 << (bitsInByte - i)
				}
			}

			cfg.Basic.UnixSocketPermissions = mode
		default:
			return errUnixSocketInvalidPermissions
		}

		// Check if user is valid
		if cfg.Basic.UnixSocketUser != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketUser) {
				if _, err := user.LookupId(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			} else {
				if _, err := user.Lookup(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			}
		}

		// Check if group is valid
		if cfg.Basic.UnixSocketGroup != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketGroup) {
				if _, err := user.LookupGroupId(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			} else {
				if _, err := user.LookupGroup(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			}
		}
	} else {
		// Set TCP defaults
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8282"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}
	}

	// Normalize language codes. Comparisons elsewhere are case-insensitive,
	// so store them lowercased once.
	cfg.Languages.Default = strings.ToLower(strings.TrimSpace(cfg.Languages.Default))
	if cfg.Languages.Default == "" {
		return errNoDefaultLanguage
	}

	supported := make([]string, 0, len(cfg.Languages.Supported))

	for _, code := range cfg.Languages.Supported {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" && !slices.Contains(supported, code) {
			supported = append(supported, code)
		}
	}

	if len(supported) == 0 {
		return errNoSupportedLanguages
	}

	if !slices.Contains(supported, cfg.Languages.Default) {
		log.Warn().
			Str("default", cfg.Languages.Default).
			Msg("Default language missing from supported list; adding it")

		supported = append(supported, cfg.Languages.Default)
	}

	cfg.Languages.Supported = supported

	// Validate the dictionary origin when one is configured.
	if cfg.Languages.RawDictionaryOrigin != "" {
		parsedURL, err := utils.ParseURL(cfg.Languages.RawDictionaryOrigin, "dictionary origin")
		if err != nil {
			return fmt.Errorf("invalid dictionary origin URL: %w", err)
		}

		cfg.Languages.DictionaryOrigin = *parsedURL
	}

	// Validate RepoURL
	repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo")
	if err != nil {
		return fmt.Errorf("invalid repo URL: %w", err)
	}

	cfg.Instance.RepoURL = repoURL.String()

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return errInvalidLogFormat
	}

	// Skip validating Limiter configuration if it's not enabled
	if !cfg.Limiter.Enabled {
		return nil
	}

	if cfg.Limiter.RequestsPerSecond <= 0 {
		return errInvalidLimiterRate
	}

	if cfg.Limiter.Burst <= 0 {
		return errInvalidLimiterBurst
	}

	return nil
}
