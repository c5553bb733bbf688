package components

import cfg "github.com/automoto/doomerang-audio/config"

// RequestKind identifies one of the playback request types
type RequestKind int

const (
	RequestPlayMusic RequestKind = iota
	RequestPlaySFX
	RequestStopMusic
	RequestStopAllMusic
	RequestFadeOutMusic
)

func (k RequestKind) String() string {
	switch k {
	case RequestPlayMusic:
		return "PlayMusic"
	case RequestPlaySFX:
		return "PlaySFX"
	case RequestStopMusic:
		return "StopMusic"
	case RequestStopAllMusic:
		return "StopAllMusic"
	case RequestFadeOutMusic:
		return "FadeOutMusic"
	}
	return "Unknown"
}

// Request is a queued playback command
type Request interface {
	Kind() RequestKind
}

// PlayMusic requests a new music instance. A nil Playback means looping
// playback at full volume.
type PlayMusic[M any] struct {
	Source     Source
	Category   M
	Playback   *PlaybackSettings
	Randomizer *PlaybackRandomizer
}

func NewPlayMusic[M any](source Source, category M) PlayMusic[M] {
	return PlayMusic[M]{Source: source, Category: category}
}

func (r PlayMusic[M]) Kind() RequestKind { return RequestPlayMusic }

func (r PlayMusic[M]) WithPlayback(p PlaybackSettings) PlayMusic[M] {
	r.Playback = &p
	return r
}

// PlaySFX requests a new sound effect instance. A nil Playback means
// dispose-on-finish at full volume; MaxConcurrent <= 0 means the default cap.
type PlaySFX[S any] struct {
	Source        Source
	Category      S
	Playback      *PlaybackSettings
	Randomizer    *PlaybackRandomizer
	MaxConcurrent int
}

func NewPlaySFX[S any](source Source, category S) PlaySFX[S] {
	return PlaySFX[S]{
		Source:        source,
		Category:      category,
		MaxConcurrent: cfg.Audio.DefaultMaxConcurrent,
	}
}

func (r PlaySFX[S]) Kind() RequestKind { return RequestPlaySFX }

func (r PlaySFX[S]) WithPlayback(p PlaybackSettings) PlaySFX[S] {
	r.Playback = &p
	return r
}

func (r PlaySFX[S]) WithMaxConcurrent(max int) PlaySFX[S] {
	r.MaxConcurrent = max
	return r
}

// WithVolume randomizes volume in [min, max] when the instance is created.
func (r PlaySFX[S]) WithVolume(min, max float64) PlaySFX[S] {
	rnd := r.randomizer().WithVolume(min, max)
	r.Randomizer = &rnd
	return r
}

// WithSpeed randomizes speed in [min, max] when the instance is created.
func (r PlaySFX[S]) WithSpeed(min, max float64) PlaySFX[S] {
	rnd := r.randomizer().WithSpeed(min, max)
	r.Randomizer = &rnd
	return r
}

// Randomized applies the standard volume and speed variation.
func (r PlaySFX[S]) Randomized() PlaySFX[S] {
	rnd := StandardRandomizer()
	r.Randomizer = &rnd
	return r
}

func (r PlaySFX[S]) randomizer() PlaybackRandomizer {
	if r.Randomizer == nil {
		return PlaybackRandomizer{}
	}
	return *r.Randomizer
}

// StopMusic disposes every music instance of Category
type StopMusic[M any] struct {
	Category M
}

func (r StopMusic[M]) Kind() RequestKind { return RequestStopMusic }

// StopAllMusic disposes every music instance
type StopAllMusic struct{}

func (StopAllMusic) Kind() RequestKind { return RequestStopAllMusic }

// FadeOutMusic fades every music instance of Category to silence over
// Duration seconds, then disposes it
type FadeOutMusic[M any] struct {
	Category M
	Duration float64
}

func (r FadeOutMusic[M]) Kind() RequestKind { return RequestFadeOutMusic }
