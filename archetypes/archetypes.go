package archetypes

import (
	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
)

var (
	// Category components are generic per engine instance, so they are
	// passed to Spawn rather than listed here.
	MusicInstance = newArchetype(
		tags.Music,
		tags.AwaitingSink,
		components.AudioSource,
		components.Playback,
		components.Name,
	)
	SFXInstance = newArchetype(
		tags.SFX,
		tags.AwaitingSink,
		components.AudioSource,
		components.Playback,
		components.Name,
		components.MaxConcurrent,
	)
	AudioRoot = newArchetype(
		tags.AudioRoot,
		components.Name,
	)
	AudioState = newArchetype(
		components.Audio,
		components.SoundEffectCounter,
		components.RequestQueue,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
