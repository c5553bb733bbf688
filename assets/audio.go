package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/automoto/doomerang-audio/components"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

type stream interface {
	io.ReadSeeker
	Length() int64
}

// AudioLoader loads audio sources from a file system and plays them through
// an ebiten audio context. It is the engine's SinkFactory.
type AudioLoader struct {
	context *audio.Context
	fsys    fs.FS

	mu      sync.Mutex
	ids     map[string]components.SourceID
	cache   map[components.SourceID][]byte // decoded PCM
	sources []components.Source
}

// NewAudioLoader creates a new audio loader reading from fsys
func NewAudioLoader(ctx *audio.Context, fsys fs.FS) *AudioLoader {
	return &AudioLoader{
		context: ctx,
		fsys:    fsys,
		ids:     make(map[string]components.SourceID),
		cache:   make(map[components.SourceID][]byte),
	}
}

// Source returns the handle for path. The same path always yields the same
// SourceID, which is what the concurrency limiter groups by.
func (l *AudioLoader) Source(path string) components.Source {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id, ok := l.ids[path]; ok {
		return l.sources[id-1]
	}
	src := components.Source{ID: components.SourceID(len(l.sources) + 1), Path: path}
	l.ids[path] = src.ID
	l.sources = append(l.sources, src)
	return src
}

// Preload decodes a source and caches it without creating a player.
// Call this at startup to avoid decode lag on first play.
func (l *AudioLoader) Preload(path string) (components.Source, error) {
	src := l.Source(path)
	_, err := l.pcm(src)
	return src, err
}

// NewSink creates a started player for source. Looping playback wraps the
// stream in an infinite loop.
func (l *AudioLoader) NewSink(source components.Source, playback components.PlaybackSettings) (components.Sink, error) {
	data, err := l.pcm(source)
	if err != nil {
		return nil, err
	}

	var player *audio.Player
	if playback.Mode == components.PlaybackLoop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
		player, err = l.context.NewPlayer(loop)
	} else {
		player, err = l.context.NewPlayer(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %s: %w", source.Path, err)
	}

	// Start silent; the engine sets the resolved volume on the next pass
	player.SetVolume(0)
	player.Play()
	return &PlayerSink{player: player}, nil
}

func (l *AudioLoader) pcm(source components.Source) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[source.ID]; ok {
		return cached, nil
	}

	data, err := fs.ReadFile(l.fsys, source.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", source.Path, err)
	}

	s, err := l.decode(source.Path, data)
	if err != nil {
		return nil, err
	}
	decoded, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", source.Path, err)
	}

	l.cache[source.ID] = decoded
	return decoded, nil
}

func (l *AudioLoader) decode(path string, data []byte) (stream, error) {
	rate := l.context.SampleRate()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode mp3 %s: %w", path, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// PlayerSink adapts an ebiten audio player to components.Sink
type PlayerSink struct {
	player *audio.Player
}

func (s *PlayerSink) SetVolume(volume float64) { s.player.SetVolume(volume) }
func (s *PlayerSink) Volume() float64          { return s.player.Volume() }
func (s *PlayerSink) IsPlaying() bool          { return s.player.IsPlaying() }

func (s *PlayerSink) Close() error {
	s.player.Pause()
	return s.player.Close()
}
