package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
		Engine: EngineConfig{
			TickResolution: 33,
			FrameInterval:  16 * time.Millisecond,
			PlaybackRate:   1,
		},
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Test server defaults
	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, defaultReadTimeout)
	}

	// Test logging defaults
	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}
	if cfg.Logging.Pretty != defaultLogPretty {
		t.Errorf("Logging.Pretty = %v, want %v", cfg.Logging.Pretty, defaultLogPretty)
	}

	// Test engine defaults
	if cfg.Engine.TickResolution != defaultEngineTickResolution {
		t.Errorf("Engine.TickResolution = %d, want %d", cfg.Engine.TickResolution, defaultEngineTickResolution)
	}
	if cfg.Engine.TickImmediately != defaultEngineTickImmediate {
		t.Errorf("Engine.TickImmediately = %v, want %v", cfg.Engine.TickImmediately, defaultEngineTickImmediate)
	}
	if cfg.Engine.FrameInterval != defaultEngineFrameInterval {
		t.Errorf("Engine.FrameInterval = %v, want %v", cfg.Engine.FrameInterval, defaultEngineFrameInterval)
	}
	if cfg.Engine.PlaybackRate != defaultEnginePlaybackRate {
		t.Errorf("Engine.PlaybackRate = %v, want %v", cfg.Engine.PlaybackRate, defaultEnginePlaybackRate)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "invalid server port (too low)",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid server port (too high)",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid write timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid tick resolution",
			mutate:  func(c *Config) { c.Engine.TickResolution = 0 },
			wantErr: true,
		},
		{
			name:    "invalid frame interval",
			mutate:  func(c *Config) { c.Engine.FrameInterval = 0 },
			wantErr: true,
		},
		{
			name:    "invalid playback rate",
			mutate:  func(c *Config) { c.Engine.PlaybackRate = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineConfigEnvVars(t *testing.T) {
	t.Setenv("KINETOPHONE_ENGINE_TICKRESOLUTION", "50")
	t.Setenv("KINETOPHONE_ENGINE_TICKIMMEDIATELY", "true")
	t.Setenv("KINETOPHONE_ENGINE_FRAMEINTERVAL", "40ms")
	t.Setenv("KINETOPHONE_ENGINE_PLAYBACKRATE", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.TickResolution != 50 {
		t.Errorf("Engine.TickResolution = %d, want 50", cfg.Engine.TickResolution)
	}
	if !cfg.Engine.TickImmediately {
		t.Errorf("Engine.TickImmediately = false, want true")
	}
	if cfg.Engine.FrameInterval != 40*time.Millisecond {
		t.Errorf("Engine.FrameInterval = %v, want 40ms", cfg.Engine.FrameInterval)
	}
	if cfg.Engine.PlaybackRate != 1.5 {
		t.Errorf("Engine.PlaybackRate = %v, want 1.5", cfg.Engine.PlaybackRate)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinetophone.yaml")
	content := "server:\n  port: 9090\nengine:\n  tickresolution: 100\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Engine.TickResolution != 100 {
		t.Errorf("Engine.TickResolution = %d, want 100", cfg.Engine.TickResolution)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Engine.FrameInterval != defaultEngineFrameInterval {
		t.Errorf("Engine.FrameInterval = %v, want %v", cfg.Engine.FrameInterval, defaultEngineFrameInterval)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadFrom() error = nil, want error for missing file")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  playbackrate: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want validation error")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		item  string
		want  bool
	}{
		{
			name:  "item exists",
			slice: []string{"one", "two", "three"},
			item:  "two",
			want:  true,
		},
		{
			name:  "item does not exist",
			slice: []string{"one", "two", "three"},
			item:  "four",
			want:  false,
		},
		{
			name:  "empty slice",
			slice: []string{},
			item:  "one",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contains(tt.slice, tt.item)
			if got != tt.want {
				t.Errorf("contains() = %v, want %v", got, tt.want)
			}
		})
	}
}
