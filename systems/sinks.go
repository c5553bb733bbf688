package systems

import (
	"log"

	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var awaitingSink = donburi.NewQuery(filter.Contains(tags.AwaitingSink, components.AudioSource, components.Playback))

// SinkFactory creates a started output sink for an instance.
type SinkFactory interface {
	NewSink(source components.Source, playback components.PlaybackSettings) (components.Sink, error)
}

// AttachSink hands an instance its output sink. The sink gets its first
// volume on the next tick.
func (a *Audio[M, S, C]) AttachSink(e *ecs.ECS, ent donburi.Entity, sink components.Sink) {
	if !e.World.Valid(ent) {
		return
	}
	entry := e.World.Entry(ent)
	if entry.HasComponent(components.AudioSink) {
		if old := components.AudioSink.Get(entry).Sink; old != nil && old != sink {
			if err := old.Close(); err != nil {
				log.Printf("Warning: Could not close replaced audio sink: %v", err)
			}
		}
	} else {
		entry.AddComponent(components.AudioSink)
	}
	components.AudioSink.SetValue(entry, components.SinkData{Sink: sink})

	if entry.HasComponent(tags.AwaitingSink) {
		entry.RemoveComponent(tags.AwaitingSink)
	}
	if !entry.HasComponent(tags.SinkReady) {
		entry.AddComponent(tags.SinkReady)
	}
}

// AttachPendingSinks creates sinks for new instances through the configured
// SinkFactory. It does nothing when the host attaches sinks itself.
func (a *Audio[M, S, C]) AttachPendingSinks(e *ecs.ECS) {
	if a.sinks == nil {
		return
	}

	var pending []*donburi.Entry
	awaitingSink.Each(e.World, func(entry *donburi.Entry) {
		if entry.HasComponent(a.musicCategory) || entry.HasComponent(a.sfxCategory) {
			pending = append(pending, entry)
		}
	})

	var unplayable []donburi.Entity
	for _, entry := range pending {
		source := *components.AudioSource.Get(entry)
		playback := *components.Playback.Get(entry)
		sink, err := a.sinks.NewSink(source, playback)
		if err != nil {
			log.Printf("Warning: Could not create audio sink for %q: %v", source.Path, err)
			if playback.Mode == components.PlaybackDespawn {
				// Nothing will ever play, so it is finished already
				unplayable = append(unplayable, entry.Entity())
				continue
			}
			// Looping and play-once instances stay silent until stopped
			entry.RemoveComponent(tags.AwaitingSink)
			continue
		}
		a.AttachSink(e, entry.Entity(), sink)
	}

	for _, ent := range unplayable {
		a.dispose(e.World, ent, components.DisposeFinished)
	}
}

// DespawnFinished disposes dispose-on-finish instances whose sink has stopped.
func (a *Audio[M, S, C]) DespawnFinished(e *ecs.ECS) {
	w := e.World
	idx := a.registry(w)

	var finished []donburi.Entity
	for _, ent := range append(idx.allMusic(w), idx.allSFX(w)...) {
		entry := w.Entry(ent)
		if !entry.HasComponent(components.AudioSink) || entry.HasComponent(tags.SinkReady) {
			continue
		}
		if components.Playback.Get(entry).Mode != components.PlaybackDespawn {
			continue
		}
		if sink := components.AudioSink.Get(entry).Sink; sink != nil && !sink.IsPlaying() {
			finished = append(finished, ent)
		}
	}

	for _, ent := range finished {
		a.dispose(w, ent, components.DisposeFinished)
	}
}
