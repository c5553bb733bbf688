package components

import "github.com/yohamta/donburi"

// Sink is the backend output of a playing instance. The engine pushes
// loudness through it and closes it on disposal.
type Sink interface {
	SetVolume(volume float64)
	Volume() float64
	IsPlaying() bool
	Close() error
}

// SpeedSetter is implemented by sinks that can change playback speed.
type SpeedSetter interface {
	SetSpeed(speed float64)
}

// SinkData holds the attached output sink of an instance
type SinkData struct {
	Sink Sink
}

var AudioSink = donburi.NewComponentType[SinkData]()
