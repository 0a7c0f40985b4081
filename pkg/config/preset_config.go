package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/decker502/smokefx/internal/particle"
	"github.com/decker502/smokefx/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultPresetPath 内置预设文件路径（嵌入资源）
const DefaultPresetPath = "data/smoke_presets.yaml"

// ErrPresetNotFound is returned by PresetFile.Get for an unknown name.
var ErrPresetNotFound = errors.New("preset not found")

// PresetFile is the root of a smoke preset YAML document.
type PresetFile struct {
	Presets []SmokePreset `yaml:"presets"`
}

// SmokePreset is the YAML form of a SmokeConfig. Omitted knobs keep the
// DefaultSmokeConfig value.
type SmokePreset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	Intensity       *Intensity       `yaml:"intensity,omitempty"`
	Lifetime        *Lifetime        `yaml:"lifetime,omitempty"`
	InitialVelocity *InitialVelocity `yaml:"initialVelocity,omitempty"`
	FadeOut         *FadeOut         `yaml:"fadeOut,omitempty"`
	SpreadRadius    *SpreadRadius    `yaml:"spreadRadius,omitempty"`

	ParticleColor   string `yaml:"particleColor,omitempty"`   // #RRGGBB or #RRGGBBAA
	BackgroundColor string `yaml:"backgroundColor,omitempty"` // #RRGGBB or #RRGGBBAA

	// Content 为空时使用默认的 spark 图片；显式写 "content: []" 表示不发射
	Content []ContentSpec `yaml:"content"`
}

// ContentSpec describes one content item. Exactly one of Shape, Image and
// Glyph must be set.
type ContentSpec struct {
	Shape string   `yaml:"shape,omitempty"` // circle | triangle | square
	Image string   `yaml:"image,omitempty"` // only "spark" is built in
	Glyph string   `yaml:"glyph,omitempty"` // a single character
	Tint  string   `yaml:"tint,omitempty"`
	Scale *float64 `yaml:"scale,omitempty"` // default 1
}

// LoadPresetConfig reads a preset file. Paths under data/ are read from the
// embedded resources when available, everything else from disk.
func LoadPresetConfig(path string) (*PresetFile, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}

	pf, err := ParsePresetConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}
	log.Printf("[PresetConfig] Loaded %d presets from %s", len(pf.Presets), path)
	return pf, nil
}

// ParsePresetConfig decodes and validates a preset document.
func ParsePresetConfig(data []byte) (*PresetFile, error) {
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presets: %w", err)
	}

	seen := make(map[string]bool, len(pf.Presets))
	for i, p := range pf.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset #%d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		seen[p.Name] = true

		if _, err := p.ToSmokeConfig(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return &pf, nil
}

// Names lists preset names in file order.
func (pf *PresetFile) Names() []string {
	names := make([]string, 0, len(pf.Presets))
	for _, p := range pf.Presets {
		names = append(names, p.Name)
	}
	return names
}

// Get returns the preset called name.
func (pf *PresetFile) Get(name string) (*SmokePreset, error) {
	for i := range pf.Presets {
		if pf.Presets[i].Name == name {
			return &pf.Presets[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrPresetNotFound)
}

// SmokeConfig resolves the preset called name.
func (pf *PresetFile) SmokeConfig(name string) (SmokeConfig, error) {
	p, err := pf.Get(name)
	if err != nil {
		return SmokeConfig{}, err
	}
	return p.ToSmokeConfig()
}

// ToSmokeConfig converts the preset into a SmokeConfig.
func (p SmokePreset) ToSmokeConfig() (SmokeConfig, error) {
	cfg := DefaultSmokeConfig()

	if p.Intensity != nil {
		cfg.Intensity = *p.Intensity
	}
	if p.Lifetime != nil {
		cfg.Lifetime = *p.Lifetime
	}
	if p.InitialVelocity != nil {
		cfg.InitialVelocity = *p.InitialVelocity
	}
	if p.FadeOut != nil {
		cfg.FadeOut = *p.FadeOut
	}
	if p.SpreadRadius != nil {
		cfg.SpreadRadius = *p.SpreadRadius
	}

	if p.ParticleColor != "" {
		c, err := ParseHexColor(p.ParticleColor)
		if err != nil {
			return SmokeConfig{}, fmt.Errorf("particleColor: %w", err)
		}
		cfg.ParticleColor = c
	}
	if p.BackgroundColor != "" {
		c, err := ParseHexColor(p.BackgroundColor)
		if err != nil {
			return SmokeConfig{}, fmt.Errorf("backgroundColor: %w", err)
		}
		cfg.BackgroundColor = c
	}

	if p.Content != nil {
		cfg.Content = make([]Content, 0, len(p.Content))
		for i, spec := range p.Content {
			c, err := spec.ToContent()
			if err != nil {
				return SmokeConfig{}, fmt.Errorf("content #%d: %w", i, err)
			}
			cfg.Content = append(cfg.Content, c)
		}
	}
	return cfg, nil
}

// ToContent converts the spec into a Content value.
func (s ContentSpec) ToContent() (Content, error) {
	set := 0
	for _, v := range []string{s.Shape, s.Image, s.Glyph} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return Content{}, fmt.Errorf("exactly one of shape, image, glyph must be set (got %d)", set)
	}

	scale := 1.0
	if s.Scale != nil {
		scale = *s.Scale
	}

	var tint color.Color
	if s.Tint != "" {
		c, err := ParseHexColor(s.Tint)
		if err != nil {
			return Content{}, fmt.Errorf("tint: %w", err)
		}
		tint = c
	}

	switch {
	case s.Shape != "":
		kind, err := ParseShapeKind(s.Shape)
		if err != nil {
			return Content{}, err
		}
		if kind == ShapeCustom {
			return Content{}, fmt.Errorf("custom shapes cannot be declared in YAML")
		}
		return ShapeContent(kind, tint, scale), nil
	case s.Image != "":
		if s.Image != "spark" {
			return Content{}, fmt.Errorf("image %q: %w", s.Image, ErrUnknownValue)
		}
		return ImageContent(nil, tint, scale), nil
	default:
		if utf8.RuneCountInString(s.Glyph) != 1 {
			return Content{}, fmt.Errorf("glyph %q must be a single character", s.Glyph)
		}
		r, _ := utf8.DecodeRuneInString(s.Glyph)
		if s.Tint != "" {
			log.Printf("[PresetConfig] Warning: glyph %q ignores tint %s", s.Glyph, s.Tint)
		}
		if !particle.HasGlyph(r) {
			log.Printf("[PresetConfig] Warning: glyph %q (%U) is not in the glyph font, it will render blank", s.Glyph, r)
		}
		return GlyphContent(r, scale), nil
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" into a premultiplied RGBA.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}
