package systems

import (
	"log"

	"github.com/automoto/doomerang-audio/archetypes"
	"github.com/automoto/doomerang-audio/components"
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// InstanceDisposed is published for every disposed instance and delivered
// by FlushAudioEvents at the end of the tick.
var InstanceDisposed = events.NewEventType[components.InstanceDisposed]()

// Audio manages music and sound effect instances in one donburi world.
//
// M and S are the host's music and sound effect category types, C its volume
// configuration. Music and sound effects live in separate component types so
// an instance is always one or the other, never both.
type Audio[M components.AudioCategory[C], S components.AudioCategory[C], C components.VolumeConfig] struct {
	musicCategory *donburi.ComponentType[M]
	sfxCategory   *donburi.ComponentType[S]
	configState   *donburi.ComponentType[components.ConfigStateData[C]]
	index         *donburi.ComponentType[instanceIndex[M, S]]

	initial C
	sinks   SinkFactory
}

// NewAudio creates an engine that starts with the given volume configuration.
func NewAudio[M components.AudioCategory[C], S components.AudioCategory[C], C components.VolumeConfig](initial C) *Audio[M, S, C] {
	return &Audio[M, S, C]{
		musicCategory: donburi.NewComponentType[M]().SetName("MusicCategory"),
		sfxCategory:   donburi.NewComponentType[S]().SetName("SFXCategory"),
		configState:   donburi.NewComponentType[components.ConfigStateData[C]]().SetName("AudioConfig"),
		index:         donburi.NewComponentType[instanceIndex[M, S]]().SetName("AudioInstances"),
		initial:       initial,
	}
}

// WithSinkFactory makes the engine create output sinks for new instances
// itself (see AttachPendingSinks). Without a factory the host attaches sinks
// with AttachSink.
func (a *Audio[M, S, C]) WithSinkFactory(f SinkFactory) *Audio[M, S, C] {
	a.sinks = f
	return a
}

// InstallMinimal only sets up the shared state (config, counters, registry,
// request queue) so the host can schedule the systems itself. A custom
// schedule must run BeginFrame first in every tick.
func (a *Audio[M, S, C]) InstallMinimal(e *ecs.ECS) {
	a.stateEntry(e.World)
}

// Install sets up the shared state and adds every audio system in order.
func (a *Audio[M, S, C]) Install(e *ecs.ECS) {
	a.InstallMinimal(e)

	e.AddSystem(a.BeginFrame)
	e.AddSystem(a.ProcessRequests)
	e.AddSystem(a.AttachPendingSinks)
	// New sinks get their first volume before config changes are applied
	e.AddSystem(a.ApplyVolumeToNewMusic)
	e.AddSystem(a.ApplyVolumeToNewSFX)
	e.AddSystem(a.UpdateMusicVolume)
	e.AddSystem(a.UpdateSFXVolume)
	e.AddSystem(a.DespawnFinished)
	e.AddSystem(a.EnforceSFXConcurrency)
	e.AddSystem(a.ProcessFadeOuts)
	e.AddSystem(a.FlushAudioEvents)
}

// stateEntry returns the engine's singleton entry, creating it if needed
func (a *Audio[M, S, C]) stateEntry(w donburi.World) *donburi.Entry {
	if entry, ok := a.index.First(w); ok {
		return entry
	}

	entry := archetypes.AudioState.Spawn(w, a.configState, a.index)
	components.Audio.SetValue(entry, components.AudioData{
		Delta: cfg.Audio.FrameDelta,
	})
	components.SoundEffectCounter.SetValue(entry,
		components.NewSoundEffectCounter(cfg.Audio.ConcurrencyResetInterval))
	components.RequestQueue.SetValue(entry, components.RequestQueueData{
		Pending: make([]components.Request, 0, 8),
	})
	a.configState.SetValue(entry, components.ConfigStateData[C]{
		Config:     a.initial,
		Generation: 1,
	})
	a.index.SetValue(entry, newInstanceIndex[M, S]())
	return entry
}

func (a *Audio[M, S, C]) state(w donburi.World) *components.AudioData {
	return components.Audio.Get(a.stateEntry(w))
}

func (a *Audio[M, S, C]) configData(w donburi.World) *components.ConfigStateData[C] {
	return a.configState.Get(a.stateEntry(w))
}

func (a *Audio[M, S, C]) registry(w donburi.World) *instanceIndex[M, S] {
	return a.index.Get(a.stateEntry(w))
}

// Config returns the current volume configuration.
func (a *Audio[M, S, C]) Config(e *ecs.ECS) C {
	return a.configData(e.World).Config
}

// SetConfig replaces the volume configuration. Every live instance is
// re-resolved on the next tick.
func (a *Audio[M, S, C]) SetConfig(e *ecs.ECS, config C) {
	state := a.configData(e.World)
	state.Config = config
	state.Generation++
}

// SetFrameDelta sets the seconds elapsed per tick. It stays in effect until
// changed, so fixed-step hosts only call it once.
func (a *Audio[M, S, C]) SetFrameDelta(e *ecs.ECS, seconds float64) {
	a.state(e.World).Delta = seconds
}

// BeginFrame advances the engine's frame counter
func (a *Audio[M, S, C]) BeginFrame(e *ecs.ECS) {
	a.state(e.World).Frame++
}

// FlushAudioEvents delivers disposal events and drops registry entries for
// entities the host removed directly.
func (a *Audio[M, S, C]) FlushAudioEvents(e *ecs.ECS) {
	InstanceDisposed.ProcessEvents(e.World)
	a.registry(e.World).prune(e.World)
}

// CreateRoot spawns an audio root entity. New instances are nested under it
// until the root is cleared.
func (a *Audio[M, S, C]) CreateRoot(e *ecs.ECS) *donburi.Entry {
	root := archetypes.AudioRoot.Spawn(e.World)
	components.Name.SetValue(root, components.NameData{Name: cfg.Audio.RootLabel})
	a.SetRoot(e, root)
	return root
}

// SetRoot uses an existing entity as the audio root.
func (a *Audio[M, S, C]) SetRoot(e *ecs.ECS, root *donburi.Entry) {
	state := a.state(e.World)
	state.Root = root.Entity()
	state.HasRoot = true
}

// Root returns the audio root, if one is set and still alive.
func (a *Audio[M, S, C]) Root(e *ecs.ECS) (*donburi.Entry, bool) {
	state := a.state(e.World)
	if !state.HasRoot || !e.World.Valid(state.Root) {
		return nil, false
	}
	return e.World.Entry(state.Root), true
}

// Children returns the instances nested under the audio root.
func (a *Audio[M, S, C]) Children(e *ecs.ECS) []donburi.Entity {
	root, ok := a.Root(e)
	if !ok {
		return nil
	}
	var children []donburi.Entity
	for _, ent := range append(a.Music(e), a.SFX(e)...) {
		entry := e.World.Entry(ent)
		if entry.HasComponent(components.Parent) && components.Parent.Get(entry).Parent == root.Entity() {
			children = append(children, ent)
		}
	}
	return children
}

// ClearRoot disposes every instance nested under the root and forgets it.
// The root entity itself is left to its owner.
func (a *Audio[M, S, C]) ClearRoot(e *ecs.ECS) {
	for _, ent := range a.Children(e) {
		a.dispose(e.World, ent, components.DisposeStopped)
	}
	state := a.state(e.World)
	state.HasRoot = false
}

func (a *Audio[M, S, C]) nest(w donburi.World, entry *donburi.Entry) {
	state := a.state(w)
	if !state.HasRoot || !w.Valid(state.Root) {
		return
	}
	entry.AddComponent(components.Parent)
	components.Parent.SetValue(entry, components.ParentData{Parent: state.Root})
}

// Dispose stops and removes an instance. Disposing an instance that is
// already gone does nothing.
func (a *Audio[M, S, C]) Dispose(e *ecs.ECS, ent donburi.Entity) {
	a.dispose(e.World, ent, components.DisposeStopped)
}

// Finish disposes an instance whose playback the backend reports as ended.
func (a *Audio[M, S, C]) Finish(e *ecs.ECS, ent donburi.Entity) {
	a.dispose(e.World, ent, components.DisposeFinished)
}

func (a *Audio[M, S, C]) dispose(w donburi.World, ent donburi.Entity, reason components.DisposeReason) {
	if !w.Valid(ent) {
		return
	}
	entry := w.Entry(ent)

	var source components.Source
	if entry.HasComponent(components.AudioSource) {
		source = *components.AudioSource.Get(entry)
	}

	idx := a.registry(w)
	music := entry.HasComponent(tags.Music)
	if entry.HasComponent(a.musicCategory) {
		idx.removeMusic(ent, *a.musicCategory.Get(entry), source.ID)
	}
	if entry.HasComponent(a.sfxCategory) {
		idx.removeSFX(ent, *a.sfxCategory.Get(entry), source.ID)
	}

	if entry.HasComponent(components.AudioSink) {
		if sink := components.AudioSink.Get(entry).Sink; sink != nil {
			if err := sink.Close(); err != nil {
				log.Printf("Warning: Could not close audio sink for %q: %v", source.Path, err)
			}
		}
	}

	w.Remove(ent)

	InstanceDisposed.Publish(w, components.InstanceDisposed{
		Entity: ent,
		Source: source,
		Music:  music,
		Reason: reason,
	})
}

// Music returns every live music instance in creation order.
func (a *Audio[M, S, C]) Music(e *ecs.ECS) []donburi.Entity {
	return a.registry(e.World).allMusic(e.World)
}

// MusicOf returns the live music instances of category in creation order.
func (a *Audio[M, S, C]) MusicOf(e *ecs.ECS, category M) []donburi.Entity {
	return a.registry(e.World).musicOf(e.World, category)
}

// SFX returns every live sound effect instance in creation order.
func (a *Audio[M, S, C]) SFX(e *ecs.ECS) []donburi.Entity {
	return a.registry(e.World).allSFX(e.World)
}

// SFXOf returns the live sound effect instances of category in creation order.
func (a *Audio[M, S, C]) SFXOf(e *ecs.ECS, category S) []donburi.Entity {
	return a.registry(e.World).sfxOf(e.World, category)
}

// OfSource returns the live instances, music or sound effect, playing source.
func (a *Audio[M, S, C]) OfSource(e *ecs.ECS, source components.SourceID) []donburi.Entity {
	return a.registry(e.World).ofSource(e.World, source)
}
