package portal

import (
	"encoding/json"
	"fmt"

	log "github.com/go-pkgz/lgr"
)

// DefaultLanguage is the language tag stored on first run
const DefaultLanguage = "en"

// supported UI language tags
var supportedLanguages = []string{"en", "hi"}

// Settings returns the stored preferences, defaults if none stored yet
func (r *Repository) Settings() (Settings, error) {
	settings, _, err := r.loadSettings()
	return settings, err
}

// SaveSettings persists the preferences record
func (r *Repository) SaveSettings(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.store.Set(KeySettings, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// SetLanguage switches the UI language, rejecting unsupported tags
func (r *Repository) SetLanguage(lang string) error {
	supported := false
	for _, l := range supportedLanguages {
		if l == lang {
			supported = true
			break
		}
	}
	if !supported {
		return &ValidationError{Field: "lang", Reason: fmt.Sprintf("unsupported language %q", lang)}
	}

	settings, _, err := r.loadSettings()
	if err != nil {
		return err
	}
	settings.Lang = lang
	if err := r.SaveSettings(settings); err != nil {
		return err
	}
	log.Printf("[INFO] language switched to %q", lang)
	return nil
}

// loadSettings reads the settings record, reporting absence separately so
// the initializer can tell "never written" from "defaults written"
func (r *Repository) loadSettings() (Settings, bool, error) {
	data, ok, err := r.store.Get(KeySettings)
	if err != nil {
		return Settings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return Settings{Lang: DefaultLanguage}, false, nil
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	if settings.Lang == "" {
		settings.Lang = DefaultLanguage
	}
	return settings, true, nil
}
