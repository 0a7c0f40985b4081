package scenes

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/game"
)

func loadTestPresets(t *testing.T) *config.PresetFile {
	t.Helper()
	pf, err := config.LoadPresetConfig(filepath.Join("..", "..", config.DefaultPresetPath))
	if err != nil {
		t.Fatalf("LoadPresetConfig() error: %v", err)
	}
	return pf
}

func newTestFanScene(t *testing.T) (*FanControlScene, *game.SettingsManager) {
	t.Helper()
	settings, _ := game.NewSettingsManager(nil)
	s, err := NewFanControlScene(game.NewResourceManager(), loadTestPresets(t), settings, WithSeed(3))
	if err != nil {
		t.Fatalf("NewFanControlScene() error: %v", err)
	}
	return s, settings
}

func TestFanControlScene_InitialPreset(t *testing.T) {
	s, _ := newTestFanScene(t)
	if s.CurrentPreset() != "fan-1" {
		t.Errorf("CurrentPreset() = %q, want fan-1", s.CurrentPreset())
	}
	if s.Smoke().Config().Intensity != config.IntensityLow {
		t.Errorf("intensity = %s, want low", s.Smoke().Config().Intensity)
	}

	// 存储的显式预设优先
	settings, _ := game.NewSettingsManager(nil)
	settings.SetPreset("glyph-mix")
	s2, err := NewFanControlScene(game.NewResourceManager(), loadTestPresets(t), settings)
	if err != nil {
		t.Fatalf("NewFanControlScene() error: %v", err)
	}
	if s2.CurrentPreset() != "glyph-mix" {
		t.Errorf("CurrentPreset() = %q, want glyph-mix", s2.CurrentPreset())
	}
}

func TestFanControlScene_UnknownStoredPreset(t *testing.T) {
	settings, _ := game.NewSettingsManager(nil)
	settings.SetPreset("turbo")
	_, err := NewFanControlScene(game.NewResourceManager(), loadTestPresets(t), settings)
	if !errors.Is(err, config.ErrPresetNotFound) {
		t.Errorf("error = %v, want ErrPresetNotFound", err)
	}
}

// TestFanControlScene_FanSpeed 风速切换替换烟雾发射器
func TestFanControlScene_FanSpeed(t *testing.T) {
	s, settings := newTestFanScene(t)
	s.Resize(400, 300)
	s.Update(frame)
	before := s.Smoke().Emitters()

	if err := s.SelectFanSpeed(3); err != nil {
		t.Fatalf("SelectFanSpeed(3) error: %v", err)
	}
	if s.CurrentPreset() != "fan-3" || settings.GetSettings().FanSpeed != 3 {
		t.Errorf("preset=%s fanSpeed=%d, want fan-3/3", s.CurrentPreset(), settings.GetSettings().FanSpeed)
	}
	if s.Smoke().Config().Intensity != config.IntensityHigh {
		t.Errorf("intensity = %s, want high", s.Smoke().Config().Intensity)
	}
	after := s.Smoke().Emitters()
	if len(after) != 1 || after[0] == before[0] {
		t.Errorf("emitters not replaced: before=%v after=%v", before, after)
	}
	if s.Smoke().ParticleCount() != 0 {
		t.Errorf("old particles survived the preset switch: %d", s.Smoke().ParticleCount())
	}

	// 越界风速被限制
	if err := s.SelectFanSpeed(7); err != nil {
		t.Fatalf("SelectFanSpeed(7) error: %v", err)
	}
	if s.CurrentPreset() != "fan-3" {
		t.Errorf("CurrentPreset() = %q, want fan-3", s.CurrentPreset())
	}
}

func TestFanControlScene_NextFanSpeedWraps(t *testing.T) {
	s, _ := newTestFanScene(t)
	want := []string{"fan-2", "fan-3", "fan-1"}
	for _, w := range want {
		if err := s.NextFanSpeed(); err != nil {
			t.Fatalf("NextFanSpeed() error: %v", err)
		}
		if s.CurrentPreset() != w {
			t.Errorf("CurrentPreset() = %q, want %q", s.CurrentPreset(), w)
		}
	}
}

func TestFanControlScene_CyclePreset(t *testing.T) {
	s, _ := newTestFanScene(t)
	names := loadTestPresets(t).Names()

	seen := map[string]bool{s.CurrentPreset(): true}
	for range names {
		if err := s.CyclePreset(); err != nil {
			t.Fatalf("CyclePreset() error: %v", err)
		}
		seen[s.CurrentPreset()] = true
	}
	if len(seen) != len(names) {
		t.Errorf("cycled through %d presets, want %d", len(seen), len(names))
	}
	if s.CurrentPreset() != "fan-1" {
		t.Errorf("full cycle ended at %q, want fan-1", s.CurrentPreset())
	}
}

// TestFanControlScene_Power 关机隐藏烟雾但继续发射
func TestFanControlScene_Power(t *testing.T) {
	s, settings := newTestFanScene(t)
	s.Resize(400, 300)

	if on := s.TogglePower(); on {
		t.Fatal("TogglePower() = true, want false")
	}
	if s.Smoke().Visible() || settings.GetSettings().PowerOn {
		t.Error("power off not applied")
	}

	s.smoke.Update(frame)
	if s.Smoke().ParticleCount() == 0 {
		t.Error("powered-off smoke stopped emitting")
	}

	if on := s.TogglePower(); !on {
		t.Error("TogglePower() = false, want true")
	}
}

func TestFanControlScene_ReleaseAndSave(t *testing.T) {
	s, _ := newTestFanScene(t)
	s.Resize(400, 300)
	s.Release()
	if s.Smoke().Launched() {
		t.Error("Release did not release the smoke scene")
	}
	// 降级模式下保存总是成功
	if !s.SaveOnExit() {
		t.Error("SaveOnExit() = false")
	}
}
