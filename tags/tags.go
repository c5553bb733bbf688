package tags

import "github.com/yohamta/donburi"

var (
	Music     = donburi.NewTag().SetName("Music")
	SFX       = donburi.NewTag().SetName("SFX")
	AudioRoot = donburi.NewTag().SetName("AudioRoot")

	// SinkReady marks an instance whose output sink was attached since the
	// last volume pass. Removed once the initial volume is written.
	SinkReady = donburi.NewTag().SetName("SinkReady")

	// AwaitingSink marks an instance no sink has been requested for yet.
	AwaitingSink = donburi.NewTag().SetName("AwaitingSink")
)
