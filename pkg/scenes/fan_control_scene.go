package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/game"
	"github.com/decker502/smokefx/pkg/utils"
)

// FanControlScene is the air-conditioner screen: a smoke effect whose
// preset follows the selected fan speed.
//
// Controls:
//   - 1 / 2 / 3: fan speed (presets fan-1 .. fan-3)
//   - Tab: cycle through every preset
//   - P: power (hides the smoke, emission keeps running)
//   - tap: next fan speed
type FanControlScene struct {
	smoke    *SmokeScene
	presets  *config.PresetFile
	settings *game.SettingsManager

	current  string           // 当前预设名
	touchIDs []ebiten.TouchID // 复用，避免每帧分配
}

// NewFanControlScene creates the scene and selects the preset stored in
// settings (an explicit preset name wins over the fan speed).
func NewFanControlScene(rm *game.ResourceManager, presets *config.PresetFile, settings *game.SettingsManager, opts ...SmokeSceneOption) (*FanControlScene, error) {
	s := &FanControlScene{
		presets:  presets,
		settings: settings,
	}

	stored := settings.GetSettings()
	name := stored.FanPreset()
	if stored.Preset != "" {
		name = stored.Preset
	}

	cfg, err := presets.SmokeConfig(name)
	if err != nil {
		return nil, fmt.Errorf("failed to select initial preset: %w", err)
	}
	s.current = name
	s.smoke = NewSmokeScene(rm, cfg, opts...)
	s.smoke.SetVisible(stored.PowerOn)

	log.Printf("[FanControlScene] Initial preset %s, power=%v", name, stored.PowerOn)
	return s, nil
}

// Smoke returns the hosted smoke scene.
func (s *FanControlScene) Smoke() *SmokeScene {
	return s.smoke
}

// CurrentPreset returns the active preset name.
func (s *FanControlScene) CurrentPreset() string {
	return s.current
}

// SelectPreset switches the smoke effect to the named preset.
func (s *FanControlScene) SelectPreset(name string) error {
	cfg, err := s.presets.SmokeConfig(name)
	if err != nil {
		return err
	}
	s.current = name
	s.settings.SetPreset(name)
	s.smoke.SetConfig(cfg)
	log.Printf("[FanControlScene] Preset -> %s", name)
	return nil
}

// SelectFanSpeed switches to preset fan-N. Out-of-range speeds are clamped.
func (s *FanControlScene) SelectFanSpeed(speed int) error {
	s.settings.SetFanSpeed(speed)
	if err := s.SelectPreset(s.settings.GetSettings().FanPreset()); err != nil {
		return err
	}
	// 风速选择优先于显式预设
	s.settings.SetPreset("")
	return nil
}

// NextFanSpeed advances the fan speed, wrapping from 3 back to 1.
func (s *FanControlScene) NextFanSpeed() error {
	next := s.settings.GetSettings().FanSpeed + 1
	if next > game.MaxFanSpeed {
		next = game.MinFanSpeed
	}
	return s.SelectFanSpeed(next)
}

// CyclePreset moves to the next preset in file order.
func (s *FanControlScene) CyclePreset() error {
	names := s.presets.Names()
	if len(names) == 0 {
		return nil
	}
	i := slices.Index(names, s.current)
	return s.SelectPreset(names[(i+1)%len(names)])
}

// TogglePower flips the power state and returns the new one.
func (s *FanControlScene) TogglePower() bool {
	on := !s.smoke.Visible()
	s.smoke.SetVisible(on)
	s.settings.SetPowerOn(on)
	log.Printf("[FanControlScene] Power %v", on)
	return on
}

// Resize implements game.Resizable.
func (s *FanControlScene) Resize(width, height int) {
	s.smoke.Resize(width, height)
}

// Release implements game.Releasable.
func (s *FanControlScene) Release() {
	s.smoke.Release()
}

// SaveOnExit implements game.Saveable.
func (s *FanControlScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[FanControlScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// Update implements game.Scene.
func (s *FanControlScene) Update(deltaTime float64) {
	s.handleInput()
	s.smoke.Update(deltaTime)
}

func (s *FanControlScene) handleInput() {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		err = s.SelectFanSpeed(1)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		err = s.SelectFanSpeed(2)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		err = s.SelectFanSpeed(3)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		err = s.CyclePreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.TogglePower()
	}

	s.touchIDs = inpututil.AppendJustPressedTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		err = s.NextFanSpeed()
	}

	if err != nil {
		log.Printf("[FanControlScene] %v", err)
	}
}

// Draw implements game.Scene.
func (s *FanControlScene) Draw(screen *ebiten.Image) {
	s.smoke.Draw(screen)

	power := "ON"
	if !s.smoke.Visible() {
		power = "OFF"
	}
	help := "[1-3] fan  [Tab] preset  [P] power"
	if utils.IsMobile() {
		help = "tap: next fan speed"
	}
	lines := []string{
		fmt.Sprintf("preset: %s  power: %s", s.current, power),
		fmt.Sprintf("emitters: %d  particles: %d", s.smoke.EmitterCount(), s.smoke.ParticleCount()),
		help,
	}
	for i, line := range lines {
		drawHUDText(screen, line, hudMargin, hudMargin+float64(i)*hudLineHeight)
	}
}

// HUD 文字布局
const (
	hudFontSize   = 14.0
	hudLineHeight = 18.0
	hudMargin     = 8.0
)

var (
	hudFaceOnce sync.Once
	hudFace     *text.GoTextFace
)

// loadHUDFace 加载 HUD 字体（Go Regular），失败时返回 nil
func loadHUDFace() *text.GoTextFace {
	hudFaceOnce.Do(func() {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[FanControlScene] HUD font unavailable: %v (using debug font)", err)
			return
		}
		hudFace = &text.GoTextFace{
			Source:    source,
			Size:      hudFontSize,
			Direction: text.DirectionLeftToRight,
		}
	})
	return hudFace
}

// drawHUDText 绘制一行 HUD 文字
func drawHUDText(screen *ebiten.Image, str string, x, y float64) {
	face := loadHUDFace()
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, str, face, opts)
}
