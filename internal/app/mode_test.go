package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/consvc/internal/domain"
)

func TestIsDebugFlag(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"/debug", true},
		{"-debug", true},
		{"/DEBUG", true},
		{"-Debug", true},
		{"debug", false},
		{"--debug", false},
		{"/debugger", false},
		{"/", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDebugFlag(tt.arg), "IsDebugFlag(%q)", tt.arg)
	}
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, domain.ModeManaged, ParseMode(nil))
	assert.Equal(t, domain.ModeManaged, ParseMode([]string{"--config", "x.toml"}))
	assert.Equal(t, domain.ModeInteractive, ParseMode([]string{"--config", "x.toml", "/Debug"}))
}

func TestStripModeFlags(t *testing.T) {
	got := StripModeFlags([]string{"-debug", "--log-level", "debug", "/DEBUG"})
	assert.Equal(t, []string{"--log-level", "debug"}, got)
}
