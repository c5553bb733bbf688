package systems

import (
	"testing"

	"github.com/automoto/doomerang-audio/components"
)

func TestFadeOutMusic(t *testing.T) {
	e, a, factory := newTestAudio(testSettings{master: 0.8, music: 1, sfx: 1})
	disposed := recordDisposals(e)
	a.SetFrameDelta(e, 0.5)

	a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	e.Update()
	sink := factory.sinks[0]
	if !approxEqual(sink.volume, 0.8) {
		t.Fatalf("initial volume = %v, want 0.8", sink.volume)
	}

	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 1})
	e.Update()
	if !approxEqual(sink.volume, 0.8) {
		t.Errorf("volume on the fade's first frame = %v, want 0.8", sink.volume)
	}

	e.Update()
	if !approxEqual(sink.volume, 0.4) {
		t.Errorf("volume after 0.5s = %v, want 0.4", sink.volume)
	}
	if len(a.Music(e)) != 1 {
		t.Fatalf("music disposed before the fade finished")
	}

	e.Update()
	if len(a.Music(e)) != 0 {
		t.Fatalf("music alive after the fade finished")
	}
	if sink.closed != 1 {
		t.Errorf("sink closed %d times, want 1", sink.closed)
	}
	if len(*disposed) != 1 || (*disposed)[0].Reason != components.DisposeFaded {
		t.Errorf("disposal events = %+v, want one faded", *disposed)
	}
}

func TestFadeOutOnlyTargetsCategory(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())

	a.Submit(e,
		components.NewPlayMusic(themeSource, musicBackground),
		components.NewPlayMusic(windSource, musicAmbient),
		components.NewPlaySFX(punchSource, sfxCombat).WithPlayback(components.OncePlayback()),
		components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 0.01},
	)
	for i := 0; i < 3; i++ {
		e.Update()
	}

	if got := a.MusicOf(e, musicBackground); len(got) != 0 {
		t.Errorf("background music still alive: %v", got)
	}
	if got := a.MusicOf(e, musicAmbient); len(got) != 1 {
		t.Errorf("ambient music = %v, want one instance", got)
	}
	if got := a.SFX(e); len(got) != 1 {
		t.Errorf("sound effects = %v, want one instance", got)
	}
}

func TestFadeOutZeroDuration(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())

	a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	e.Update()

	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground})
	e.Update()
	if len(a.Music(e)) != 1 {
		t.Fatalf("zero-duration fade disposed on the frame it was requested")
	}

	e.Update()
	if len(a.Music(e)) != 0 {
		t.Errorf("zero-duration fade did not dispose on the next frame")
	}
}

func TestFadeOutLastRequestWins(t *testing.T) {
	e, a, factory := newTestAudio(fullVolume())
	a.SetFrameDelta(e, 0.5)

	a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	e.Update()

	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 1})
	e.Update()
	e.Update()
	sink := factory.sinks[0]
	if !approxEqual(sink.volume, 0.5) {
		t.Fatalf("volume after 0.5s of 1s = %v, want 0.5", sink.volume)
	}

	// A slower fade restarts from the current loudness
	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 2})
	e.Update()
	entry := e.World.Entry(a.Music(e)[0])
	fade := components.FadeOut.Get(entry)
	if fade.Duration != 2 || !approxEqual(fade.Initial, 0.5) {
		t.Fatalf("fade = duration %v initial %v, want 2 and 0.5", fade.Duration, fade.Initial)
	}

	e.Update()
	if !approxEqual(sink.volume, 0.375) {
		t.Errorf("volume 0.5s into the new fade = %v, want 0.375", sink.volume)
	}
}

func TestFadeOutRescalesOnConfigChange(t *testing.T) {
	e, a, factory := newTestAudio(fullVolume())
	a.SetFrameDelta(e, 0.5)

	a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	e.Update()
	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 2})
	e.Update()
	e.Update()

	sink := factory.sinks[0]
	if !approxEqual(sink.volume, 0.75) {
		t.Fatalf("volume after 0.5s of 2s = %v, want 0.75", sink.volume)
	}

	a.SetConfig(e, testSettings{master: 0.5, music: 1, sfx: 1})
	e.Update()
	// Halved base, one more half second: 0.5 * (1 - 1/2)
	if !approxEqual(sink.volume, 0.25) {
		t.Errorf("volume after config change = %v, want 0.25", sink.volume)
	}
}

func TestFadeOutBeforeSinkAttached(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())
	a.sinks = nil
	a.SetFrameDelta(e, 0.5)

	entry := a.SpawnMusic(e, themeSource, musicBackground)
	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 2})
	e.Update()
	e.Update()

	sink := &fakeSink{volume: 1, playing: true}
	a.AttachSink(e, entry.Entity(), sink)
	e.Update()

	// Attached 0.5s into a 2s fade, which then advances to 1s
	if !approxEqual(sink.volume, 0.5) {
		t.Errorf("late sink volume = %v, want 0.5", sink.volume)
	}
}

func TestFadeOutWithTwoEnginesInOneWorld(t *testing.T) {
	e, a, factory := newTestAudio(fullVolume())
	other := NewAudio[testMusic, testSfx](fullVolume()).WithSinkFactory(&fakeFactory{})
	other.Install(e)
	a.SetFrameDelta(e, 0.25)
	other.SetFrameDelta(e, 0.25)

	a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	e.Update()
	a.Submit(e, components.FadeOutMusic[testMusic]{Category: musicBackground, Duration: 1})
	e.Update()

	sink := factory.sinks[0]
	e.Update()
	if !approxEqual(sink.volume, 0.75) {
		t.Fatalf("volume after one tick = %v, want 0.75", sink.volume)
	}
	e.Update()
	if !approxEqual(sink.volume, 0.5) {
		t.Fatalf("volume after two ticks = %v, want 0.5", sink.volume)
	}
	if len(a.Music(e)) != 1 {
		t.Fatalf("music disposed halfway through the fade")
	}

	e.Update()
	e.Update()
	if len(a.Music(e)) != 0 {
		t.Errorf("music alive after the fade finished")
	}
	if len(other.Music(e)) != 0 {
		t.Errorf("other engine sees music: %v", other.Music(e))
	}
}
