package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vpet/internal/pet"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
state_dir: /tmp/vpet-state
decay_interval: 5s
cooldown: 2s
death_delay: 1s
sound: false
metrics_textfile: /tmp/vpet.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if cfg.StateDir != "/tmp/vpet-state" {
		t.Errorf("state_dir: got %q", cfg.StateDir)
	}
	if cfg.DecayInterval != 5*time.Second {
		t.Errorf("decay_interval: got %v", cfg.DecayInterval)
	}
	if cfg.Cooldown != 2*time.Second {
		t.Errorf("cooldown: got %v", cfg.Cooldown)
	}
	if cfg.DeathDelay != time.Second {
		t.Errorf("death_delay: got %v", cfg.DeathDelay)
	}
	if cfg.Sound {
		t.Error("sound: expected false")
	}
	if cfg.MetricsTextfile != "/tmp/vpet.prom" {
		t.Errorf("metrics_textfile: got %q", cfg.MetricsTextfile)
	}
	if cfg.LogPath() != filepath.Join("/tmp/vpet-state", "vpet.log") {
		t.Errorf("log path: got %q", cfg.LogPath())
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "sound: true\n"))
	if err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if cfg.DecayInterval != pet.DefaultDecayInterval {
		t.Errorf("Expected default decay interval %v, got %v", pet.DefaultDecayInterval, cfg.DecayInterval)
	}
	if cfg.Cooldown != pet.DefaultCooldown {
		t.Errorf("Expected default cooldown %v, got %v", pet.DefaultCooldown, cfg.Cooldown)
	}
	if cfg.DeathDelay != pet.DefaultDeathDelay {
		t.Errorf("Expected default death delay %v, got %v", pet.DefaultDeathDelay, cfg.DeathDelay)
	}
	if strings.HasPrefix(cfg.StateDir, "~") {
		t.Errorf("Expected ~ to be expanded, got %q", cfg.StateDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got %v", err)
	}
	if !cfg.Sound {
		t.Error("Expected sound on by default")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"Bad yaml", "decay_interval: [", "parse yaml"},
		{"Zero decay", "decay_interval: 0s", "decay_interval"},
		{"Negative cooldown", "cooldown: -1s", "cooldown"},
		{"Zero death delay", "death_delay: 0s", "death_delay"},
		{"Blank state dir", "state_dir: \"  \"", "state_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error mentioning %q, got %v", tt.errPart, err)
			}
		})
	}
}

// startWatch runs Watch on path and returns the reload channel and a stop
// function that checks for a clean shutdown.
func startWatch(t *testing.T, path string) (<-chan *Config, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	reloaded := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)

	return reloaded, func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Expected clean shutdown, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Expected Watch to return after cancel")
		}
	}
}

// waitSound waits for a reload with the given sound setting. A truncating
// write can surface an intermediate empty file first.
func waitSound(t *testing.T, reloaded <-chan *Config, want bool) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Sound == want {
				return
			}
		case <-timeout:
			t.Fatalf("Expected a reload with sound %t", want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "sound: true\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	if err := os.WriteFile(path, []byte("sound: false\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}
	waitSound(t, reloaded, false)
}

func TestWatchAtomicSave(t *testing.T) {
	path := writeConfig(t, "sound: true\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte("sound: false\n"), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Failed to rename config: %v", err)
	}
	waitSound(t, reloaded, false)

	// A second atomic save is still seen
	if err := os.WriteFile(tmp, []byte("sound: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Failed to rename config: %v", err)
	}
	waitSound(t, reloaded, true)
}

func TestWatchFileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	reloaded, stop := startWatch(t, path)
	defer stop()

	if err := os.WriteFile(path, []byte("sound: false\n"), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	waitSound(t, reloaded, false)
}

func TestWatchIgnoresSiblings(t *testing.T) {
	path := writeConfig(t, "sound: true\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	if err := os.WriteFile(other, []byte("sound: false\n"), 0644); err != nil {
		t.Fatalf("Failed to write sibling: %v", err)
	}
	select {
	case cfg := <-reloaded:
		t.Errorf("Expected no reload for a sibling file, got %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchKeepsConfigOnBadReload(t *testing.T) {
	path := writeConfig(t, "sound: true\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	if err := os.WriteFile(path, []byte("cooldown: -1s\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}
	select {
	case cfg := <-reloaded:
		if cfg.Cooldown < 0 {
			t.Errorf("Expected an invalid config to be rejected, got cooldown %v", cfg.Cooldown)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent", "config.yaml"), func(*Config) {})
	if err == nil {
		t.Error("Expected an error watching a missing directory")
	}
}
