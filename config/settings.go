package config

// VolumeSettings is a ready-made volume configuration: a master level, a mute
// flag and one multiplier per named category. Hosts with a fixed set of
// categories can use it directly as the engine's config type.
type VolumeSettings struct {
	Master     float64            `json:"master"`
	Muted      bool               `json:"muted"`
	Categories map[string]float64 `json:"categories"`
}

// DefaultVolumeSettings returns full volume, unmuted, with no category overrides.
func DefaultVolumeSettings() VolumeSettings {
	return VolumeSettings{
		Master:     1.0,
		Categories: make(map[string]float64),
	}
}

func (s VolumeSettings) MasterVolume() float64 {
	return s.Master
}

func (s VolumeSettings) IsMuted() bool {
	return s.Muted
}

// Category returns the multiplier for name, or 1.0 when none is set.
func (s VolumeSettings) Category(name string) float64 {
	if v, ok := s.Categories[name]; ok {
		return v
	}
	return 1.0
}

// WithCategory returns a copy of s with the multiplier for name replaced.
// The receiver's map is never mutated, so a settings value already handed to
// the engine stays unchanged.
func (s VolumeSettings) WithCategory(name string, volume float64) VolumeSettings {
	categories := make(map[string]float64, len(s.Categories)+1)
	for k, v := range s.Categories {
		categories[k] = v
	}
	categories[name] = volume
	s.Categories = categories
	return s
}
