package config

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int

	// Concurrency limiting
	DefaultMaxConcurrent     int
	ConcurrencyResetInterval float64 // seconds between counter resets

	// Frame timing used until the host reports a real delta
	FrameDelta float64 // seconds (1/60 = one frame at 60fps)

	// Randomization presets
	StandardVolumeRange [2]float64
	StandardSpeedRange  [2]float64

	// Labels used when a source carries no path metadata
	DefaultMusicLabel string
	DefaultSFXLabel   string
	RootLabel         string
}

// SettingsStoreConfig names where volume settings are persisted
type SettingsStoreConfig struct {
	AppName string
	ItemKey string
}

var Audio AudioConfig
var SettingsStore SettingsStoreConfig

func init() {
	Audio = AudioConfig{
		SampleRate:               44100,
		DefaultMaxConcurrent:     5,
		ConcurrencyResetInterval: 0.5,
		FrameDelta:               1.0 / 60.0,
		StandardVolumeRange:      [2]float64{0.6, 1.0},
		StandardSpeedRange:       [2]float64{0.7, 1.3},
		DefaultMusicLabel:        "Music",
		DefaultSFXLabel:          "Sound Effect",
		RootLabel:                "Audio",
	}

	SettingsStore = SettingsStoreConfig{
		AppName: "doomerang",
		ItemKey: "audio",
	}
}
