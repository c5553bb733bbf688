package systems

import (
	"testing"

	"github.com/automoto/doomerang-audio/components"
)

func TestEnforceSFXConcurrency(t *testing.T) {
	e, a, factory := newTestAudio(fullVolume())
	disposed := recordDisposals(e)

	for i := 0; i < 5; i++ {
		a.Submit(e, components.NewPlaySFX(punchSource, sfxCombat).WithMaxConcurrent(3))
	}
	e.Update()

	alive := a.OfSource(e, punchSource.ID)
	if len(alive) != 3 {
		t.Fatalf("%d instances alive, want 3", len(alive))
	}
	if len(*disposed) != 2 {
		t.Fatalf("got %d disposal events, want 2", len(*disposed))
	}
	for _, ev := range *disposed {
		if ev.Reason != components.DisposeLimited || ev.Music {
			t.Errorf("disposal event = %+v, want a limited sound effect", ev)
		}
	}

	// The oldest instances survive
	for i, s := range factory.sinks {
		wantClosed := 0
		if i >= 3 {
			wantClosed = 1
		}
		if s.closed != wantClosed {
			t.Errorf("sink %d closed %d times, want %d", i, s.closed, wantClosed)
		}
	}

	if got := a.PeakSFX(e, punchSource.ID); got != 3 {
		t.Errorf("PeakSFX() = %d, want 3", got)
	}
}

func TestConcurrencyIsPerSource(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())

	for i := 0; i < 3; i++ {
		a.Submit(e,
			components.NewPlaySFX(punchSource, sfxCombat).WithMaxConcurrent(2),
			components.NewPlaySFX(clickSource, sfxCombat).WithMaxConcurrent(2),
		)
	}
	e.Update()

	if got := len(a.OfSource(e, punchSource.ID)); got != 2 {
		t.Errorf("punch instances = %d, want 2", got)
	}
	if got := len(a.OfSource(e, clickSource.ID)); got != 2 {
		t.Errorf("click instances = %d, want 2", got)
	}
}

func TestConcurrencyAcrossTicks(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())

	for i := 0; i < 4; i++ {
		a.Submit(e, components.NewPlaySFX(punchSource, sfxCombat).WithMaxConcurrent(2))
		e.Update()
	}

	if got := len(a.OfSource(e, punchSource.ID)); got != 2 {
		t.Errorf("instances after 4 ticks = %d, want 2", got)
	}
}

func TestMusicIsNeverLimited(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())

	for i := 0; i < 8; i++ {
		a.Submit(e, components.NewPlayMusic(themeSource, musicBackground))
	}
	e.Update()

	if got := len(a.Music(e)); got != 8 {
		t.Errorf("music instances = %d, want 8", got)
	}
}

func TestFinishedSoundEffectsFreeTheirSlot(t *testing.T) {
	e, a, factory := newTestAudio(fullVolume())
	disposed := recordDisposals(e)

	a.Submit(e, components.NewPlaySFX(punchSource, sfxCombat).WithMaxConcurrent(1))
	e.Update()

	factory.sinks[0].playing = false
	a.Submit(e, components.NewPlaySFX(punchSource, sfxCombat).WithMaxConcurrent(1))
	e.Update()

	alive := a.OfSource(e, punchSource.ID)
	if len(alive) != 1 {
		t.Fatalf("%d instances alive, want 1", len(alive))
	}
	if len(*disposed) != 1 || (*disposed)[0].Reason != components.DisposeFinished {
		t.Fatalf("disposal events = %+v, want one finished", *disposed)
	}
	if factory.sinks[1].closed != 0 {
		t.Errorf("new instance was limited instead of the finished one")
	}
}

func TestPeakSFXResets(t *testing.T) {
	e, a, _ := newTestAudio(fullVolume())
	a.SetFrameDelta(e, 0.25)

	a.Submit(e,
		components.NewPlaySFX(punchSource, sfxCombat),
		components.NewPlaySFX(punchSource, sfxCombat),
	)
	e.Update()
	if got := a.PeakSFX(e, punchSource.ID); got != 2 {
		t.Fatalf("PeakSFX() = %d, want 2", got)
	}

	for _, ent := range a.SFX(e) {
		a.Dispose(e, ent)
	}
	// Second tick reaches the 0.5s reset interval
	e.Update()
	if got := a.PeakSFX(e, punchSource.ID); got != 0 {
		t.Errorf("PeakSFX() after reset = %d, want 0", got)
	}
}
