package components

import "github.com/yohamta/donburi"

// PlaybackMode controls what happens when a sound reaches its end
type PlaybackMode int

const (
	PlaybackOnce    PlaybackMode = iota // play once and stay alive
	PlaybackLoop                        // restart from the beginning forever
	PlaybackDespawn                     // dispose the instance once the sink stops
)

func (m PlaybackMode) String() string {
	switch m {
	case PlaybackOnce:
		return "once"
	case PlaybackLoop:
		return "loop"
	case PlaybackDespawn:
		return "despawn"
	}
	return "unknown"
}

// PlaybackSettings is the per-instance base volume, speed and end behaviour
type PlaybackSettings struct {
	Mode   PlaybackMode
	Volume Volume
	Speed  float64 // 1.0 = normal speed
}

// LoopPlayback is the default for music.
func LoopPlayback() PlaybackSettings {
	return PlaybackSettings{Mode: PlaybackLoop, Volume: LinearVolume(1), Speed: 1}
}

// DespawnPlayback is the default for sound effects.
func DespawnPlayback() PlaybackSettings {
	return PlaybackSettings{Mode: PlaybackDespawn, Volume: LinearVolume(1), Speed: 1}
}

func OncePlayback() PlaybackSettings {
	return PlaybackSettings{Mode: PlaybackOnce, Volume: LinearVolume(1), Speed: 1}
}

func (p PlaybackSettings) WithVolume(v Volume) PlaybackSettings {
	p.Volume = v
	return p
}

func (p PlaybackSettings) WithSpeed(speed float64) PlaybackSettings {
	p.Speed = speed
	return p
}

var Playback = donburi.NewComponentType[PlaybackSettings]()
