package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

const defaultLogLimit = 200

// Settings is what the demo remembers between runs.
type Settings struct {
	Wheel wheel.State `json:"wheel"`
	Theme int         `json:"theme"` // Stored as int for JSON compatibility
}

// settingsPath returns the path to the state file, creating its directory.
func settingsPath() (string, error) {
	var dir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\HorizontalWheel
		dir = filepath.Join(appData, "HorizontalWheel")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		// Linux/macOS: ~/.config/horizontalwheel
		dir = filepath.Join(home, ".config", "horizontalwheel")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// LoadSettings reads the saved settings. A missing file yields defaults.
func LoadSettings() (*Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return &Settings{Theme: int(renderer.ThemeClassic)}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{Theme: int(renderer.ThemeClassic)}, nil
		}
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &s, nil
}

// SaveSettings writes s to the state file.
func SaveSettings(s *Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// logBuffer keeps the most recent log lines for the log pane.
type logBuffer struct {
	mu    sync.RWMutex
	lines []string
	limit int
}

func newLogBuffer(limit int) *logBuffer {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return &logBuffer{limit: limit}
}

// Append timestamps msg and drops the oldest lines past the limit.
func (b *logBuffer) Append(at time.Time, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, fmt.Sprintf("[%s] %s", at.Format(time.Stamp), msg))
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *logBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines.
func (b *logBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}
