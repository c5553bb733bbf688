package components

import (
	"path"
	"strings"

	"github.com/yohamta/donburi"
)

// SourceID identifies an audio asset. It is only ever compared, never
// dereferenced.
type SourceID uint64

// Source is a handle to an audio asset plus optional path metadata
type Source struct {
	ID   SourceID
	Path string
}

var AudioSource = donburi.NewComponentType[Source]()

// NameData is a human-readable label for an instance
type NameData struct {
	Name string
}

var Name = donburi.NewComponentType[NameData]()

// LabelFor derives a label from an asset path
// (e.g., "audio/sfx/punch.wav" -> "punch"), or returns fallback when the path
// carries nothing usable.
func LabelFor(assetPath, fallback string) string {
	assetPath = strings.TrimSpace(strings.ReplaceAll(assetPath, "\\", "/"))
	if assetPath == "" {
		return fallback
	}
	base := path.Base(assetPath)
	label := strings.TrimSuffix(base, path.Ext(base))
	if label == "" || label == "." || label == "/" {
		return fallback
	}
	return label
}
