package systems

import (
	"slices"

	"github.com/automoto/doomerang-audio/components"
	"github.com/yohamta/donburi"
)

// entitySet is an insertion-ordered set of entities
type entitySet struct {
	entities []donburi.Entity
}

func (s *entitySet) add(e donburi.Entity) {
	s.entities = append(s.entities, e)
}

func (s *entitySet) remove(e donburi.Entity) {
	if i := slices.Index(s.entities, e); i >= 0 {
		s.entities = slices.Delete(s.entities, i, i+1)
	}
}

// live drops entities the world no longer knows about (removed by the host)
// and returns a snapshot of the rest, safe to iterate while disposing.
func (s *entitySet) live(w donburi.World) []donburi.Entity {
	s.entities = slices.DeleteFunc(s.entities, func(e donburi.Entity) bool {
		return !w.Valid(e)
	})
	return slices.Clone(s.entities)
}

// instanceIndex is the registry of live instances: every music and sound
// effect entity in creation order, plus secondary indices by category and
// by source. Enumeration order everywhere is creation order.
type instanceIndex[M, S comparable] struct {
	music entitySet
	sfx   entitySet

	musicByCategory map[M]*entitySet
	sfxByCategory   map[S]*entitySet
	bySource        map[components.SourceID]*entitySet
}

func newInstanceIndex[M, S comparable]() instanceIndex[M, S] {
	return instanceIndex[M, S]{
		musicByCategory: make(map[M]*entitySet),
		sfxByCategory:   make(map[S]*entitySet),
		bySource:        make(map[components.SourceID]*entitySet),
	}
}

func (idx *instanceIndex[M, S]) addMusic(e donburi.Entity, category M, source components.SourceID) {
	idx.music.add(e)
	addTo(idx.musicByCategory, category, e)
	addTo(idx.bySource, source, e)
}

func (idx *instanceIndex[M, S]) addSFX(e donburi.Entity, category S, source components.SourceID) {
	idx.sfx.add(e)
	addTo(idx.sfxByCategory, category, e)
	addTo(idx.bySource, source, e)
}

func (idx *instanceIndex[M, S]) removeMusic(e donburi.Entity, category M, source components.SourceID) {
	idx.music.remove(e)
	removeFrom(idx.musicByCategory, category, e)
	removeFrom(idx.bySource, source, e)
}

func (idx *instanceIndex[M, S]) removeSFX(e donburi.Entity, category S, source components.SourceID) {
	idx.sfx.remove(e)
	removeFrom(idx.sfxByCategory, category, e)
	removeFrom(idx.bySource, source, e)
}

func (idx *instanceIndex[M, S]) allMusic(w donburi.World) []donburi.Entity {
	return idx.music.live(w)
}

func (idx *instanceIndex[M, S]) allSFX(w donburi.World) []donburi.Entity {
	return idx.sfx.live(w)
}

func (idx *instanceIndex[M, S]) musicOf(w donburi.World, category M) []donburi.Entity {
	return liveIn(w, idx.musicByCategory, category)
}

func (idx *instanceIndex[M, S]) sfxOf(w donburi.World, category S) []donburi.Entity {
	return liveIn(w, idx.sfxByCategory, category)
}

func (idx *instanceIndex[M, S]) ofSource(w donburi.World, source components.SourceID) []donburi.Entity {
	return liveIn(w, idx.bySource, source)
}

// prune drops every entity removed behind the registry's back.
func (idx *instanceIndex[M, S]) prune(w donburi.World) {
	idx.music.live(w)
	idx.sfx.live(w)
	pruneAll(w, idx.musicByCategory)
	pruneAll(w, idx.sfxByCategory)
	pruneAll(w, idx.bySource)
}

func addTo[K comparable](m map[K]*entitySet, key K, e donburi.Entity) {
	set, ok := m[key]
	if !ok {
		set = &entitySet{}
		m[key] = set
	}
	set.add(e)
}

func removeFrom[K comparable](m map[K]*entitySet, key K, e donburi.Entity) {
	set, ok := m[key]
	if !ok {
		return
	}
	set.remove(e)
	if len(set.entities) == 0 {
		delete(m, key)
	}
}

func liveIn[K comparable](w donburi.World, m map[K]*entitySet, key K) []donburi.Entity {
	set, ok := m[key]
	if !ok {
		return nil
	}
	live := set.live(w)
	if len(live) == 0 {
		delete(m, key)
	}
	return live
}

func pruneAll[K comparable](w donburi.World, m map[K]*entitySet) {
	for key, set := range m {
		if len(set.live(w)) == 0 {
			delete(m, key)
		}
	}
}
