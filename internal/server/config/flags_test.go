package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		start       *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:  "all flags",
			args:  []string{"cmd", "-a", "9090", "-d", "db", "-s", "secret", "-t", "15", "-r", "60", "-l", "debug"},
			start: &Config{},
			expected: &Config{
				Port:                         "9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  15 * time.Minute,
				RefreshTokenValidityDuration: time.Hour,
				LogLevel:                     "debug",
			},
		},
		{
			name:  "unset durations keep sub-minute values",
			args:  []string{"cmd", "-c", "conf.json", "-s", "x"},
			start: &Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: &Config{
				SecretKey:                   "x",
				AccessTokenValidityDuration: 90 * time.Second,
			},
		},
		{
			name:        "non-numeric ttl",
			args:        []string{"cmd", "-t", "abc"},
			start:       &Config{},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(tt.start) })
				return
			}
			require.NotPanics(t, func() { parseFlags(tt.start) })
			assert.Empty(t, cmp.Diff(tt.expected, tt.start))
		})
	}
}
