package components

// VolumeConfig is the host's volume configuration. The engine only reads it.
type VolumeConfig interface {
	MasterVolume() float64
}

// Muter is implemented by configs that support a global mute. Configs that
// don't implement it are never muted.
type Muter interface {
	IsMuted() bool
}

// EffectiveVolume returns the master volume, or 0 when the config is muted.
func EffectiveVolume(cfg VolumeConfig) float64 {
	if m, ok := cfg.(Muter); ok && m.IsMuted() {
		return 0
	}
	return cfg.MasterVolume()
}

// AudioCategory is implemented by host-defined category enums. Categories
// are compared by value, so implementations must be comparable.
//
// VolumeMultiplier should return a value in [0, 1]; larger values are
// accepted and simply scale loudness past unity.
type AudioCategory[C any] interface {
	comparable
	VolumeMultiplier(cfg C) float64
}
