package systems

import (
	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var (
	newMusicSinks = donburi.NewQuery(filter.Contains(tags.Music, tags.SinkReady, components.AudioSink))
	newSFXSinks   = donburi.NewQuery(filter.Contains(tags.SFX, tags.SinkReady, components.AudioSink))
)

// ResolveVolume computes the linear loudness of an instance:
// effective master (0 when muted) * category multiplier * instance volume.
func ResolveVolume[K components.AudioCategory[C], C components.VolumeConfig](config C, category K, volume components.Volume) float64 {
	return components.EffectiveVolume(config) * category.VolumeMultiplier(config) * volume.ToLinear()
}

// ApplyVolumeToNewMusic gives music sinks attached since the last tick their
// resolved volume (or their fade-scaled volume when already fading).
func (a *Audio[M, S, C]) ApplyVolumeToNewMusic(e *ecs.ECS) {
	applyNewVolumes(e.World, a.configData(e.World).Config, a.musicCategory, newMusicSinks)
}

// ApplyVolumeToNewSFX is ApplyVolumeToNewMusic for sound effects.
func (a *Audio[M, S, C]) ApplyVolumeToNewSFX(e *ecs.ECS) {
	applyNewVolumes(e.World, a.configData(e.World).Config, a.sfxCategory, newSFXSinks)
}

// UpdateMusicVolume re-resolves every music instance after a config change.
func (a *Audio[M, S, C]) UpdateMusicVolume(e *ecs.ECS) {
	state := a.configData(e.World)
	if state.MusicApplied == state.Generation {
		return
	}
	state.MusicApplied = state.Generation
	updateVolumes(e.World, state.Config, a.musicCategory, a.registry(e.World).allMusic(e.World))
}

// UpdateSFXVolume re-resolves every sound effect instance after a config change.
func (a *Audio[M, S, C]) UpdateSFXVolume(e *ecs.ECS) {
	state := a.configData(e.World)
	if state.SFXApplied == state.Generation {
		return
	}
	state.SFXApplied = state.Generation
	updateVolumes(e.World, state.Config, a.sfxCategory, a.registry(e.World).allSFX(e.World))
}

func resolveEntry[K components.AudioCategory[C], C components.VolumeConfig](config C, category *donburi.ComponentType[K], entry *donburi.Entry) float64 {
	return ResolveVolume(config, *category.Get(entry), components.Playback.Get(entry).Volume)
}

func applyNewVolumes[K components.AudioCategory[C], C components.VolumeConfig](w donburi.World, config C, category *donburi.ComponentType[K], query *donburi.Query) {
	// Collect first: removing the tag changes the entry's archetype
	var ready []*donburi.Entry
	query.Each(w, func(entry *donburi.Entry) {
		// Instances of another engine sharing the world are left alone
		if entry.HasComponent(category) {
			ready = append(ready, entry)
		}
	})

	for _, entry := range ready {
		playback := components.Playback.Get(entry)
		if sink := components.AudioSink.Get(entry).Sink; sink != nil {
			if s, ok := sink.(components.SpeedSetter); ok {
				s.SetSpeed(playback.Speed)
			}
			volume := resolveEntry(config, category, entry)
			if entry.HasComponent(components.FadeOut) {
				volume = components.FadeOut.Get(entry).Current()
			}
			sink.SetVolume(volume)
		}
		entry.RemoveComponent(tags.SinkReady)
	}
}

func updateVolumes[K components.AudioCategory[C], C components.VolumeConfig](w donburi.World, config C, category *donburi.ComponentType[K], instances []donburi.Entity) {
	for _, ent := range instances {
		entry := w.Entry(ent)
		if !entry.HasComponent(category) {
			continue
		}

		volume := resolveEntry(config, category, entry)
		if entry.HasComponent(components.FadeOut) {
			fade := components.FadeOut.Get(entry)
			fade.Rescale(volume)
			volume = fade.Current()
		}

		// Sinks still waiting for their first volume get it from the
		// new-sink pass
		if !entry.HasComponent(components.AudioSink) || entry.HasComponent(tags.SinkReady) {
			continue
		}
		if sink := components.AudioSink.Get(entry).Sink; sink != nil {
			sink.SetVolume(volume)
		}
	}
}
