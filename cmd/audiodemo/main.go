package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// channel is both the music and the sound effect category of the demo.
// Its multiplier is the per-channel level stored in the volume settings.
type channel string

const (
	channelMusic channel = "music"
	channelSFX   channel = "sfx"
)

func (c channel) VolumeMultiplier(s config.VolumeSettings) float64 {
	return s.Category(string(c))
}

type Game struct {
	ecs    *ecs.ECS
	audio  *systems.Audio[channel, channel, config.VolumeSettings]
	loader *assets.AudioLoader

	music components.Source
	sfx   components.Source
}

func NewGame(dir, music, sfx string, settings config.VolumeSettings) *Game {
	ctx := audio.NewContext(config.Audio.SampleRate)
	loader := assets.NewAudioLoader(ctx, os.DirFS(dir))

	g := &Game{
		ecs:    ecs.NewECS(donburi.NewWorld()),
		loader: loader,
		music:  loader.Source(music),
		sfx:    loader.Source(sfx),
	}
	if _, err := loader.Preload(sfx); err != nil {
		log.Printf("Warning: Could not preload %s: %v", sfx, err)
	}

	g.audio = systems.NewAudio[channel, channel](settings).WithSinkFactory(loader)
	g.audio.Install(g.ecs)
	g.audio.CreateRoot(g.ecs)
	systems.InstanceDisposed.Subscribe(g.ecs.World, func(w donburi.World, ev components.InstanceDisposed) {
		log.Printf("Disposed %s (%v)", components.LabelFor(ev.Source.Path, "instance"), ev.Reason)
	})
	return g
}

func (g *Game) Update() error {
	g.audio.SetFrameDelta(g.ecs, 1/float64(ebiten.TPS()))

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.audio.Submit(g.ecs, components.NewPlayMusic(g.music, channelMusic))
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.audio.Submit(g.ecs, components.NewPlaySFX(g.sfx, channelSFX).Randomized().WithMaxConcurrent(3))
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.audio.Submit(g.ecs, components.FadeOutMusic[channel]{Category: channelMusic, Duration: 2})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.audio.Submit(g.ecs, components.StopAllMusic{})
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.changeSettings(func(s config.VolumeSettings) config.VolumeSettings {
			s.Master = min(s.Master+0.1, 1)
			return s
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.changeSettings(func(s config.VolumeSettings) config.VolumeSettings {
			s.Master = max(s.Master-0.1, 0)
			return s
		})
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		g.changeSettings(func(s config.VolumeSettings) config.VolumeSettings {
			s.Muted = !s.Muted
			return s
		})
	}

	g.ecs.Update()
	return nil
}

func (g *Game) changeSettings(change func(config.VolumeSettings) config.VolumeSettings) {
	settings := change(g.audio.Config(g.ecs))
	g.audio.SetConfig(g.ecs, settings)
	_ = systems.SaveSettings(settings)
}

func (g *Game) Draw(screen *ebiten.Image) {
	settings := g.audio.Config(g.ecs)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"M: play music  SPACE: sound  F: fade music  S: stop music\nUP/DOWN: master  0: mute\n\n"+
			"master %.1f  muted %v\nmusic instances %d  sound instances %d  peak %d",
		settings.Master, settings.Muted,
		len(g.audio.Music(g.ecs)), len(g.audio.SFX(g.ecs)), g.audio.PeakSFX(g.ecs, g.sfx.ID),
	))
}

func (g *Game) Layout(width, height int) (int, int) {
	return 480, 270
}

func main() {
	dir := flag.String("dir", ".", "Directory containing the audio files")
	music := flag.String("music", "music.ogg", "Music file, relative to -dir")
	sfx := flag.String("sfx", "sound.wav", "Sound effect file, relative to -dir")
	flag.Parse()

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	settings := config.DefaultVolumeSettings()
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		settings = *saved
	}

	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("Doomerang Audio")
	if err := ebiten.RunGame(NewGame(*dir, *music, *sfx, settings)); err != nil {
		log.Fatal(err)
	}
}
