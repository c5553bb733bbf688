package systems

import (
	"log"

	"github.com/automoto/doomerang-audio/archetypes"
	"github.com/automoto/doomerang-audio/components"
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpawnOption customizes an instance created with SpawnMusic or SpawnSFX
type SpawnOption func(*spawnSettings)

type spawnSettings struct {
	playback      *components.PlaybackSettings
	randomizer    *components.PlaybackRandomizer
	maxConcurrent int
	label         string
}

func WithPlayback(p components.PlaybackSettings) SpawnOption {
	return func(s *spawnSettings) { s.playback = &p }
}

func WithRandomizer(r components.PlaybackRandomizer) SpawnOption {
	return func(s *spawnSettings) { s.randomizer = &r }
}

// WithMaxConcurrent sets the per-source cap of a sound effect. Values <= 0
// select the default cap. Music ignores it.
func WithMaxConcurrent(max int) SpawnOption {
	return func(s *spawnSettings) { s.maxConcurrent = max }
}

// WithLabel overrides the display name derived from the source path.
func WithLabel(label string) SpawnOption {
	return func(s *spawnSettings) { s.label = label }
}

// Submit queues playback requests. They are handled in submission order by
// the next ProcessRequests pass.
func (a *Audio[M, S, C]) Submit(e *ecs.ECS, requests ...components.Request) {
	queue := components.RequestQueue.Get(a.stateEntry(e.World))
	queue.Pending = append(queue.Pending, requests...)
}

// ProcessRequests drains the request queue. Each request sees the effects of
// the ones before it; requests submitted while draining wait for the next pass.
func (a *Audio[M, S, C]) ProcessRequests(e *ecs.ECS) {
	queue := components.RequestQueue.Get(a.stateEntry(e.World))
	if len(queue.Pending) == 0 {
		return
	}
	pending := queue.Pending
	queue.Pending = make([]components.Request, 0, cap(pending))

	for _, req := range pending {
		a.route(e, req)
	}
}

func (a *Audio[M, S, C]) route(e *ecs.ECS, req components.Request) {
	switch r := req.(type) {
	case components.PlayMusic[M]:
		a.playMusic(e, r)
	case *components.PlayMusic[M]:
		a.playMusic(e, *r)
	case components.PlaySFX[S]:
		a.playSFX(e, r)
	case *components.PlaySFX[S]:
		a.playSFX(e, *r)
	case components.StopMusic[M]:
		a.stopMusic(e.World, r.Category)
	case *components.StopMusic[M]:
		a.stopMusic(e.World, r.Category)
	case components.StopAllMusic, *components.StopAllMusic:
		a.stopAllMusic(e.World)
	case components.FadeOutMusic[M]:
		a.fadeOut(e.World, r.Category, r.Duration)
	case *components.FadeOutMusic[M]:
		a.fadeOut(e.World, r.Category, r.Duration)
	default:
		log.Printf("Warning: Ignoring %v request of type %T", req.Kind(), req)
	}
}

func (a *Audio[M, S, C]) playMusic(e *ecs.ECS, r components.PlayMusic[M]) {
	opts := []SpawnOption{}
	if r.Playback != nil {
		opts = append(opts, WithPlayback(*r.Playback))
	}
	if r.Randomizer != nil {
		opts = append(opts, WithRandomizer(*r.Randomizer))
	}
	a.SpawnMusic(e, r.Source, r.Category, opts...)
}

func (a *Audio[M, S, C]) playSFX(e *ecs.ECS, r components.PlaySFX[S]) {
	opts := []SpawnOption{WithMaxConcurrent(r.MaxConcurrent)}
	if r.Playback != nil {
		opts = append(opts, WithPlayback(*r.Playback))
	}
	if r.Randomizer != nil {
		opts = append(opts, WithRandomizer(*r.Randomizer))
	}
	a.SpawnSFX(e, r.Source, r.Category, opts...)
}

func (a *Audio[M, S, C]) stopMusic(w donburi.World, category M) {
	for _, ent := range a.registry(w).musicOf(w, category) {
		a.dispose(w, ent, components.DisposeStopped)
	}
}

func (a *Audio[M, S, C]) stopAllMusic(w donburi.World) {
	for _, ent := range a.registry(w).allMusic(w) {
		a.dispose(w, ent, components.DisposeStopped)
	}
}

// SpawnMusic creates a music instance immediately, bypassing the request
// queue. Playback defaults to looping at full volume.
func (a *Audio[M, S, C]) SpawnMusic(e *ecs.ECS, source components.Source, category M, opts ...SpawnOption) *donburi.Entry {
	s := newSpawnSettings(components.LoopPlayback(), opts)

	entry := archetypes.MusicInstance.Spawn(e.World, a.musicCategory)
	a.musicCategory.SetValue(entry, category)
	a.initInstance(e.World, entry, source, s, cfg.Audio.DefaultMusicLabel)

	a.registry(e.World).addMusic(entry.Entity(), category, source.ID)
	return entry
}

// SpawnSFX creates a sound effect instance immediately, bypassing the request
// queue. Playback defaults to disposing the instance when it finishes.
func (a *Audio[M, S, C]) SpawnSFX(e *ecs.ECS, source components.Source, category S, opts ...SpawnOption) *donburi.Entry {
	s := newSpawnSettings(components.DespawnPlayback(), opts)
	if s.maxConcurrent <= 0 {
		s.maxConcurrent = cfg.Audio.DefaultMaxConcurrent
	}

	entry := archetypes.SFXInstance.Spawn(e.World, a.sfxCategory)
	a.sfxCategory.SetValue(entry, category)
	components.MaxConcurrent.SetValue(entry, components.MaxConcurrentData{Max: s.maxConcurrent})
	a.initInstance(e.World, entry, source, s, cfg.Audio.DefaultSFXLabel)

	a.registry(e.World).addSFX(entry.Entity(), category, source.ID)
	return entry
}

func newSpawnSettings(playback components.PlaybackSettings, opts []SpawnOption) spawnSettings {
	s := spawnSettings{playback: &playback}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (a *Audio[M, S, C]) initInstance(w donburi.World, entry *donburi.Entry, source components.Source, s spawnSettings, fallback string) {
	playback := *s.playback
	if s.randomizer != nil {
		s.randomizer.Apply(&playback)
	}

	label := s.label
	if label == "" {
		label = components.LabelFor(source.Path, fallback)
	}

	components.AudioSource.SetValue(entry, source)
	components.Playback.SetValue(entry, playback)
	components.Name.SetValue(entry, components.NameData{Name: label})
	a.nest(w, entry)
}
