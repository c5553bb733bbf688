package systems

import (
	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ProcessFadeOuts advances every fade by the frame delta, writes the faded
// volume to the sink and disposes instances whose fade has completed.
// Fades attached during the current frame start advancing on the next one.
func (a *Audio[M, S, C]) ProcessFadeOuts(e *ecs.ECS) {
	w := e.World
	state := a.state(w)
	delta, frame := state.Delta, state.Frame

	var done []donburi.Entity
	for _, ent := range a.registry(w).allMusic(w) {
		entry := w.Entry(ent)
		// Fades of another engine sharing the world are advanced by that engine
		if !entry.HasComponent(a.musicCategory) || !entry.HasComponent(components.FadeOut) {
			continue
		}
		fade := components.FadeOut.Get(entry)
		if fade.StartedFrame == frame {
			continue
		}

		volume, finished := fade.Advance(delta)
		if finished {
			done = append(done, ent)
			continue
		}
		if entry.HasComponent(components.AudioSink) && !entry.HasComponent(tags.SinkReady) {
			if sink := components.AudioSink.Get(entry).Sink; sink != nil {
				sink.SetVolume(volume)
			}
		}
	}

	for _, ent := range done {
		a.dispose(w, ent, components.DisposeFaded)
	}
}

// fadeOut attaches a fade to every music instance of category. A later
// request replaces an earlier fade and starts from the current loudness.
func (a *Audio[M, S, C]) fadeOut(w donburi.World, category M, duration float64) {
	config := a.configData(w).Config
	frame := a.state(w).Frame
	if duration < 0 {
		duration = 0
	}

	for _, ent := range a.registry(w).musicOf(w, category) {
		entry := w.Entry(ent)
		base := resolveEntry(config, a.musicCategory, entry)
		fade := components.NewFadeOut(currentVolume(entry, base), base, duration, frame)

		if !entry.HasComponent(components.FadeOut) {
			entry.AddComponent(components.FadeOut)
		}
		components.FadeOut.SetValue(entry, fade)
	}
}

// currentVolume is the loudness an instance is playing at right now.
func currentVolume(entry *donburi.Entry, base float64) float64 {
	if entry.HasComponent(components.AudioSink) && !entry.HasComponent(tags.SinkReady) {
		if sink := components.AudioSink.Get(entry).Sink; sink != nil {
			return sink.Volume()
		}
	}
	if entry.HasComponent(components.FadeOut) {
		return components.FadeOut.Get(entry).Current()
	}
	return base
}
