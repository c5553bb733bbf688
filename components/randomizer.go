package components

import (
	"math/rand/v2"

	cfg "github.com/automoto/doomerang-audio/config"
)

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min, Max float64
}

// PlaybackRandomizer draws volume and/or speed once from uniform ranges when
// an instance is created, for variety between repeated plays
type PlaybackRandomizer struct {
	VolumeRange *Range
	SpeedRange  *Range
}

// StandardRandomizer varies volume in [0.6, 1.0] and speed in [0.7, 1.3].
func StandardRandomizer() PlaybackRandomizer {
	v := cfg.Audio.StandardVolumeRange
	s := cfg.Audio.StandardSpeedRange
	return PlaybackRandomizer{
		VolumeRange: &Range{Min: v[0], Max: v[1]},
		SpeedRange:  &Range{Min: s[0], Max: s[1]},
	}
}

func (r PlaybackRandomizer) WithVolume(min, max float64) PlaybackRandomizer {
	r.VolumeRange = &Range{Min: min, Max: max}
	return r
}

func (r PlaybackRandomizer) WithSpeed(min, max float64) PlaybackRandomizer {
	r.SpeedRange = &Range{Min: min, Max: max}
	return r
}

// Apply rolls the configured ranges into p. A rolled volume is linear.
func (r PlaybackRandomizer) Apply(p *PlaybackSettings) {
	if r.VolumeRange != nil {
		p.Volume = LinearVolume(r.VolumeRange.roll())
	}
	if r.SpeedRange != nil {
		p.Speed = r.SpeedRange.roll()
	}
}

func (r Range) roll() float64 {
	lo, hi := r.Min, r.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}
