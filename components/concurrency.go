package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// MaxConcurrentData caps how many instances sharing this instance's source
// may stay alive at once
type MaxConcurrentData struct {
	Max int
}

var MaxConcurrent = donburi.NewComponentType[MaxConcurrentData]()

// RepeatingTimer fires once every Interval seconds of accumulated delta.
// It is a looping single-tween gween sequence; a fired tick is a completed tween.
type RepeatingTimer struct {
	Interval float64
	seq      *gween.Sequence
}

func NewRepeatingTimer(interval float64) RepeatingTimer {
	t := RepeatingTimer{Interval: interval}
	if interval > 0 {
		t.seq = gween.NewSequence(gween.New(0, 1, float32(interval), ease.Linear))
		t.seq.SetLoop(-1)
	}
	return t
}

// Tick advances the timer by dt seconds and reports whether it fired.
func (t *RepeatingTimer) Tick(dt float64) bool {
	if t.seq == nil {
		// Zero or negative intervals fire on every tick
		return true
	}
	_, fired, _ := t.seq.Update(float32(dt))
	return fired
}

// SoundEffectCounterData tracks, per source, the peak number of sound effects
// kept alive by the concurrency limiter since the last periodic reset.
//
// The counts are advisory: the limiter recomputes its cap from scratch on
// every pass and never reads them.
type SoundEffectCounterData struct {
	Counts map[SourceID]int
	Timer  RepeatingTimer
}

// NewSoundEffectCounter creates a counter that resets every interval seconds.
func NewSoundEffectCounter(interval float64) SoundEffectCounterData {
	return SoundEffectCounterData{
		Counts: make(map[SourceID]int),
		Timer:  NewRepeatingTimer(interval),
	}
}

var SoundEffectCounter = donburi.NewComponentType[SoundEffectCounterData]()
