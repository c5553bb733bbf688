package systems

import (
	"github.com/automoto/doomerang-audio/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// EnforceSFXConcurrency disposes sound effects beyond their source's cap.
// Instances are kept oldest first, so the newest ones over the cap go.
// Music is never limited.
func (a *Audio[M, S, C]) EnforceSFXConcurrency(e *ecs.ECS) {
	w := e.World
	state := a.stateEntry(w)
	delta := components.Audio.Get(state).Delta

	counter := components.SoundEffectCounter.Get(state)
	if counter.Timer.Tick(delta) {
		clear(counter.Counts)
	}

	kept := make(map[components.SourceID]int)
	var excess []donburi.Entity
	for _, ent := range a.registry(w).allSFX(w) {
		entry := w.Entry(ent)
		if !entry.HasComponent(components.MaxConcurrent) {
			continue
		}
		source := components.AudioSource.Get(entry).ID
		if kept[source] >= components.MaxConcurrent.Get(entry).Max {
			excess = append(excess, ent)
			continue
		}
		kept[source]++
	}

	for source, n := range kept {
		if n > counter.Counts[source] {
			counter.Counts[source] = n
		}
	}

	for _, ent := range excess {
		a.dispose(w, ent, components.DisposeLimited)
	}
}

// PeakSFX returns the most sound effects of source kept alive at once since
// the counter was last reset.
func (a *Audio[M, S, C]) PeakSFX(e *ecs.ECS, source components.SourceID) int {
	counter := components.SoundEffectCounter.Get(a.stateEntry(e.World))
	return counter.Counts[source]
}
