package config

import "testing"

func TestVolumeSettingsCategory(t *testing.T) {
	s := DefaultVolumeSettings()
	if got := s.Category("music"); got != 1.0 {
		t.Errorf("Category() with no override = %v, want 1.0", got)
	}

	changed := s.WithCategory("music", 0.3)
	if got := changed.Category("music"); got != 0.3 {
		t.Errorf("Category() after WithCategory = %v, want 0.3", got)
	}
	if _, ok := s.Categories["music"]; ok {
		t.Error("WithCategory mutated the original settings")
	}
}

func TestVolumeSettingsMute(t *testing.T) {
	s := DefaultVolumeSettings()
	if s.IsMuted() || s.MasterVolume() != 1.0 {
		t.Fatalf("defaults = %+v, want unmuted at full volume", s)
	}
	s.Muted = true
	if !s.IsMuted() {
		t.Error("IsMuted() = false, want true")
	}
	if s.MasterVolume() != 1.0 {
		t.Error("muting changed the master level")
	}
}
