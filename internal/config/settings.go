// Package config loads and persists the application settings file and
// turns its keybinding section into the in-memory keymap table consumed
// by the event loop.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fivver/internal/action"
	"fivver/internal/keymap"
)

// KeyBindingValue supports "q" or ["q", "ctrl+c"] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	// Fall back to single string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig holds key binding overrides for one mode.
// Keys are action names (e.g. "quit", "submit"), values are the key
// sequences bound to them. Chords are space-joined ("g g").
type KeyBindingsConfig map[string]KeyBindingValue

// Settings represents the contents of ~/.fivver/settings.json. All fields
// are optional; zero values fall back to defaults at the point of use.
type Settings struct {
	DBPath       string                       `json:"db_path,omitempty"`
	Debug        *bool                        `json:"debug,omitempty"`
	DriverName   string                       `json:"driver_name,omitempty"`
	DriverPort   int                          `json:"driver_port,omitempty"`
	FrameRate    float64                      `json:"frame_rate,omitempty"`
	KeyBindings  map[string]KeyBindingsConfig `json:"keybindings,omitempty"`
	LoginURL     string                       `json:"login_url,omitempty"`
	MaxLogFiles  *int                         `json:"max_log_files,omitempty"`
	SettleMillis int                          `json:"settle_millis,omitempty"`
	TickRate     float64                      `json:"tick_rate,omitempty"`
}

// Defaults applied when the settings file is absent or leaves a field
// unset.
const (
	DefaultDBPath       = "~/.fivver/fivver.db"
	DefaultDriverName   = "geckodriver"
	DefaultDriverPort   = 4444
	DefaultFrameRate    = 4.0
	DefaultLoginURL     = "https://www.fiverr.com/login"
	DefaultSettleMillis = 2000
	DefaultTickRate     = 1.0
)

// GetSettingsFilePath returns the path to the settings file.
func GetSettingsFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.fivver/settings.json"
	}
	return filepath.Join(homeDir, ".fivver", "settings.json")
}

// LoadSettings reads the settings file. A missing file is not an error;
// it yields empty settings so defaults apply.
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsFilePath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return &settings, nil
}

// Save writes the settings file, creating the directory if needed.
func (s *Settings) Save() error {
	return s.saveTo(GetSettingsFilePath())
}

func (s *Settings) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// TickInterval converts the configured tick rate (ticks per second) to a
// duration.
func (s *Settings) TickInterval() time.Duration {
	rate := s.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// FrameInterval converts the configured frame rate (frames per second) to
// a duration.
func (s *Settings) FrameInterval() time.Duration {
	rate := s.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// Driver returns the configured driver executable name.
func (s *Settings) Driver() string {
	if s.DriverName == "" {
		return DefaultDriverName
	}
	return s.DriverName
}

// EndpointURL returns the local WebDriver endpoint to connect to.
func (s *Settings) EndpointURL() string {
	port := s.DriverPort
	if port == 0 {
		port = DefaultDriverPort
	}
	return fmt.Sprintf("http://localhost:%d", port)
}

// SettleDelay returns the wait inserted after launching the driver before
// connecting to its endpoint.
func (s *Settings) SettleDelay() time.Duration {
	ms := s.SettleMillis
	if ms <= 0 {
		ms = DefaultSettleMillis
	}
	return time.Duration(ms) * time.Millisecond
}

// Login returns the configured login page URL.
func (s *Settings) Login() string {
	if s.LoginURL == "" {
		return DefaultLoginURL
	}
	return s.LoginURL
}

// DatabasePath returns the attempt history database path with ~ expanded.
func (s *Settings) DatabasePath() string {
	path := s.DBPath
	if path == "" {
		path = DefaultDBPath
	}
	if len(path) > 0 && path[0] == '~' {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

// defaultBindings maps action names to their built-in key sequences per
// mode. User settings override or extend these entries.
var defaultBindings = map[keymap.Mode]KeyBindingsConfig{
	keymap.ModeHome: {
		"quit":    {"q", "ctrl+c", "ctrl+d"},
		"submit":  {"enter"},
		"suspend": {"ctrl+z"},
	},
}

// BuildKeymap merges the default bindings with the settings overrides and
// resolves action names into a keymap table. Unknown action names are a
// configuration error.
func (s *Settings) BuildKeymap() (keymap.Table, error) {
	table := keymap.Table{}

	apply := func(mode keymap.Mode, bindings KeyBindingsConfig) error {
		if table[mode] == nil {
			table[mode] = map[string]action.Action{}
		}
		for name, sequences := range bindings {
			act, err := action.Parse(name)
			if err != nil {
				return fmt.Errorf("keybinding in mode %q: %w", mode, err)
			}
			for _, seq := range sequences {
				table[mode][seq] = act
			}
		}
		return nil
	}

	for mode, bindings := range defaultBindings {
		if err := apply(mode, bindings); err != nil {
			return nil, err
		}
	}
	for mode, bindings := range s.KeyBindings {
		if err := apply(keymap.Mode(mode), bindings); err != nil {
			return nil, err
		}
	}

	return table, nil
}
