package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// FadeOutData drives a linear fade from Initial to silence over Duration
// seconds, after which the instance is disposed
type FadeOutData struct {
	Elapsed  float64
	Duration float64
	Initial  float64 // linear volume captured when the fade was requested
	Base     float64 // resolved volume at capture, used to rescale on config changes
	Ratio    float64 // Initial / Base at capture, 1 when Base was silent

	// StartedFrame is the frame the fade was attached on. The fade only
	// advances on later frames.
	StartedFrame uint64

	tween *gween.Tween
}

// NewFadeOut starts a fade from initial to silence over duration seconds.
func NewFadeOut(initial, base, duration float64, frame uint64) FadeOutData {
	ratio := 1.0
	if base > 0 {
		ratio = initial / base
	}
	return FadeOutData{
		Duration:     duration,
		Initial:      initial,
		Base:         base,
		Ratio:        ratio,
		StartedFrame: frame,
		tween:        gween.New(float32(initial), 0, float32(duration), ease.Linear),
	}
}

// Factor returns max(0, 1 - elapsed/duration).
func (f *FadeOutData) Factor() float64 {
	if f.Duration <= 0 || f.Elapsed >= f.Duration {
		return 0
	}
	factor := 1 - f.Elapsed/f.Duration
	if factor < 0 {
		return 0
	}
	return factor
}

// Current returns the volume at the current elapsed time, clamped to
// [0, Initial].
func (f *FadeOutData) Current() float64 {
	if f.Elapsed >= f.Duration {
		return 0
	}
	if f.tween == nil {
		f.tween = gween.New(float32(f.Initial), 0, float32(f.Duration), ease.Linear)
	}
	v, _ := f.tween.Set(float32(f.Elapsed))
	return clampVolume(float64(v), f.Initial)
}

// Advance moves the fade forward by dt seconds. It returns the new volume and
// whether the fade has completed.
func (f *FadeOutData) Advance(dt float64) (float64, bool) {
	f.Elapsed += dt
	if f.Elapsed >= f.Duration {
		return 0, true
	}
	return f.Current(), false
}

// Rescale moves the fade onto a new resolved base volume, keeping its
// progress. The starting volume stays at the same fraction of the base it
// had at capture, so passing through a silent base loses nothing.
func (f *FadeOutData) Rescale(base float64) {
	f.Initial = base * f.Ratio
	f.Base = base
	f.tween = gween.New(float32(f.Initial), 0, float32(f.Duration), ease.Linear)
}

func clampVolume(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

var FadeOut = donburi.NewComponentType[FadeOutData]()
