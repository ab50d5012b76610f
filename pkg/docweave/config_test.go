package docweave

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", config.LogLevel)
	}
	if config.MaxDepth != 100 {
		t.Errorf("MaxDepth = %d, want 100", config.MaxDepth)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("DOCWEAVE_LOG_LEVEL", "debug")
	t.Setenv("DOCWEAVE_MAX_DEPTH", "7")

	config := ConfigFromEnvironment()

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", config.MaxDepth)
	}
}

func TestConfigFromEnvironmentIgnoresGarbage(t *testing.T) {
	t.Setenv("DOCWEAVE_MAX_DEPTH", "not a number")

	config := ConfigFromEnvironment()

	if config.MaxDepth != 100 {
		t.Errorf("MaxDepth = %d, want default 100", config.MaxDepth)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{LogLevel: "warn", MaxDepth: 5}, false},
		{"off level", Config{LogLevel: "off", MaxDepth: 1}, false},
		{"bad level", Config{LogLevel: "verbose", MaxDepth: 5}, true},
		{"zero depth", Config{LogLevel: "info", MaxDepth: 0}, true},
		{"negative depth", Config{LogLevel: "info", MaxDepth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetGlobalConfig(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	SetGlobalConfig(&Config{LogLevel: "error", MaxDepth: 3})

	got := GetGlobalConfig()
	if got.LogLevel != "error" || got.MaxDepth != 3 {
		t.Errorf("GetGlobalConfig() = %+v", got)
	}

	// Copies, not aliases.
	got.MaxDepth = 99
	if GetGlobalConfig().MaxDepth != 3 {
		t.Error("GetGlobalConfig must return a copy")
	}
}
