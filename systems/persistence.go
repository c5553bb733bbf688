package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/quasilyte/gdata"
)

// SettingsStore is the backing store for saved volume settings
type SettingsStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var settingsStore SettingsStore

// InitPersistence opens the gdata store used for volume settings
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.SettingsStore.AppName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	settingsStore = m
	return nil
}

// UseSettingsStore replaces the backing store, e.g. with an in-memory one.
func UseSettingsStore(s SettingsStore) {
	settingsStore = s
}

// LoadSettings loads volume settings from disk. It returns nil, nil when
// persistence is not initialized or nothing has been saved yet.
func LoadSettings() (*cfg.VolumeSettings, error) {
	if settingsStore == nil {
		return nil, nil
	}

	data, err := settingsStore.LoadItem(cfg.SettingsStore.ItemKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	settings := cfg.DefaultVolumeSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	if settings.Categories == nil {
		settings.Categories = make(map[string]float64)
	}

	return &settings, nil
}

// SaveSettings saves volume settings to disk
func SaveSettings(s cfg.VolumeSettings) error {
	if settingsStore == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := settingsStore.SaveItem(cfg.SettingsStore.ItemKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}
