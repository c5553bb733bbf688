package components

import (
	"github.com/yohamta/donburi"
)

// AudioData stores per-world engine state (singleton component)
type AudioData struct {
	Frame uint64  // incremented once at the start of every tick
	Delta float64 // seconds elapsed since the previous tick

	Root    donburi.Entity // optional collection point for new instances
	HasRoot bool
}

var Audio = donburi.NewComponentType[AudioData]()

// RequestQueueData holds playback requests in submission order
type RequestQueueData struct {
	Pending []Request
}

var RequestQueue = donburi.NewComponentType[RequestQueueData]()

// ConfigStateData holds the host's volume configuration and a generation
// counter bumped on every replacement. Each volume pass remembers the
// generation it last applied.
type ConfigStateData[C any] struct {
	Config     C
	Generation uint64

	MusicApplied uint64
	SFXApplied   uint64
}

// ParentData links an instance to the audio root it was nested under
type ParentData struct {
	Parent donburi.Entity
}

var Parent = donburi.NewComponentType[ParentData]()

// DisposeReason tells why an instance was removed
type DisposeReason int

const (
	DisposeStopped  DisposeReason = iota // explicit stop request or call
	DisposeLimited                       // over its source's concurrency cap
	DisposeFaded                         // fade-out completed
	DisposeFinished                      // one-shot playback reached its end
)

func (r DisposeReason) String() string {
	switch r {
	case DisposeStopped:
		return "stopped"
	case DisposeLimited:
		return "limited"
	case DisposeFaded:
		return "faded"
	case DisposeFinished:
		return "finished"
	}
	return "unknown"
}

// InstanceDisposed is published once for every disposed instance
type InstanceDisposed struct {
	Entity donburi.Entity
	Source Source
	Music  bool
	Reason DisposeReason
}
