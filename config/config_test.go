// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"slices"
	"testing"
)

/*
TestLoadConfig focuses on verifying main functionality (e.g. fallback when invalid input),
and *shouldn't* need exhaustive scenarios
*/

// TestLoadConfig is a test function that verifies the behavior of the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string            // Description of the test case
		env     map[string]string // Name of the environment variable and its value
		wantErr bool              // Whether an error is expected
	}{
		{
			name: "Valid configuration",
			env: map[string]string{
				"GUIDEFE_HOST":      "localhost",
				"GUIDEFE_PORT":      "8282",
				"GUIDEFE_LANGUAGES": "en,fr",
			},
			wantErr: false,
		},
		{
			name: "Default language added to supported list",
			env: map[string]string{
				"GUIDEFE_DEFAULT_LANGUAGE": "ja",
				"GUIDEFE_LANGUAGES":        "en,fr",
			},
			wantErr: false,
		},
		{
			name: "Invalid GUIDEFE_DICTIONARY_ORIGIN",
			env: map[string]string{
				"GUIDEFE_DICTIONARY_ORIGIN": "not-a-valid-origin",
			},
			wantErr: true,
		},
		{
			name: "Invalid GUIDEFE_LOG_FORMAT",
			env: map[string]string{
				"GUIDEFE_LOG_FORMAT": "xml",
			},
			wantErr: true,
		},
		{
			name: "Limiter enabled with invalid rate",
			env: map[string]string{
				"GUIDEFE_LIMITER":     "true",
				"GUIDEFE_LIMITER_RPS": "-5",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up environment; t.Setenv restores previous values on cleanup.
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Create a new ServerConfig instance
			config := &ServerConfig{}

			// Call LoadConfig
			err := config.LoadConfig()

			// Check for errors
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if !tt.wantErr {
				// Test whether config fields were set correctly
				if host, ok := tt.env["GUIDEFE_HOST"]; ok && config.Basic.Host != host {
					t.Errorf("LoadConfig() Host = %v, want %v", config.Basic.Host, host)
				}

				if port, ok := tt.env["GUIDEFE_PORT"]; ok && config.Basic.Port != port {
					t.Errorf("LoadConfig() Port = %v, want %v", config.Basic.Port, port)
				}

				if !slices.Contains(config.Languages.Supported, config.Languages.Default) {
					t.Errorf("LoadConfig() Supported = %v does not contain default %v",
						config.Languages.Supported, config.Languages.Default)
				}

				if tt.env["GUIDEFE_LANGUAGES"] == "en,fr" {
					if !slices.Contains(config.Languages.Supported, "en") ||
						!slices.Contains(config.Languages.Supported, "fr") {
						t.Errorf("LoadConfig() Supported = %v, want en and fr present", config.Languages.Supported)
					}
				}
			}
		})
	}
}
