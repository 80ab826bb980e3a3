package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fivver/internal/action"
	"fivver/internal/keymap"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := loadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.Equal(t, DefaultDriverName, settings.Driver())
	assert.Equal(t, "http://localhost:4444", settings.EndpointURL())
	assert.Equal(t, DefaultLoginURL, settings.Login())
	assert.Equal(t, 2*time.Second, settings.SettleDelay())
	assert.Equal(t, time.Second, settings.TickInterval())
	assert.Equal(t, 250*time.Millisecond, settings.FrameInterval())
}

func TestLoadSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	settings := &Settings{
		DriverName:   "chromedriver",
		DriverPort:   9515,
		SettleMillis: 500,
		TickRate:     2,
	}
	require.NoError(t, settings.saveTo(path))

	loaded, err := loadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "chromedriver", loaded.Driver())
	assert.Equal(t, "http://localhost:9515", loaded.EndpointURL())
	assert.Equal(t, 500*time.Millisecond, loaded.SettleDelay())
	assert.Equal(t, 500*time.Millisecond, loaded.TickInterval())
}

func TestLoadSettingsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := loadSettingsFrom(path)
	assert.Error(t, err)
}

func TestBuildKeymapDefaults(t *testing.T) {
	settings := &Settings{}

	table, err := settings.BuildKeymap()
	require.NoError(t, err)

	home := table[keymap.ModeHome]
	require.NotNil(t, home)
	assert.Equal(t, action.Quit{}, home["q"])
	assert.Equal(t, action.Suspend{}, home["ctrl+z"])
	assert.Equal(t, action.Submit{}, home["enter"])
}

func TestBuildKeymapOverridesAndChords(t *testing.T) {
	settings := &Settings{
		KeyBindings: map[string]KeyBindingsConfig{
			"home": {
				"render": {"q"},
				"quit":   {"g q"},
			},
		},
	}

	table, err := settings.BuildKeymap()
	require.NoError(t, err)

	home := table[keymap.ModeHome]
	assert.Equal(t, action.Render{}, home["q"])
	assert.Equal(t, action.Quit{}, home["g q"])
	// Untouched defaults survive the merge.
	assert.Equal(t, action.Quit{}, home["ctrl+c"])
}

func TestBuildKeymapUnknownAction(t *testing.T) {
	settings := &Settings{
		KeyBindings: map[string]KeyBindingsConfig{
			"home": {"launch-missiles": {"x"}},
		},
	}

	_, err := settings.BuildKeymap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch-missiles")
}

func TestKeyBindingValueJSON(t *testing.T) {
	var settings Settings
	raw := `{"keybindings": {"home": {"quit": "q", "submit": ["enter", "ctrl+s"]}}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &settings))

	home := settings.KeyBindings["home"]
	assert.Equal(t, KeyBindingValue{"q"}, home["quit"])
	assert.Equal(t, KeyBindingValue{"enter", "ctrl+s"}, home["submit"])

	data, err := json.Marshal(home["quit"])
	require.NoError(t, err)
	assert.Equal(t, `"q"`, string(data))
}
