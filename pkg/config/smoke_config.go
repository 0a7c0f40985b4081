package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownValue is returned when an enum name cannot be parsed.
var ErrUnknownValue = errors.New("unknown value")

// Intensity 粒子发射强度
type Intensity int

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
)

// Lifetime 粒子生命周期档位
type Lifetime int

const (
	LifetimeShort Lifetime = iota
	LifetimeMedium
	LifetimeLong
)

// InitialVelocity 粒子初速度档位
type InitialVelocity int

const (
	VelocitySlow InitialVelocity = iota
	VelocityMedium
	VelocityFast
)

// FadeOut 粒子淡出速度档位
type FadeOut int

const (
	FadeOutNone FadeOut = iota
	FadeOutSlow
	FadeOutMedium
	FadeOutFast
)

// SpreadRadius 发射角度扩散档位
type SpreadRadius int

const (
	SpreadLow SpreadRadius = iota
	SpreadMedium
	SpreadHigh
)

// Lookup tables (查找表)
//
// Indexed by the enum value. An out-of-range value reads the medium row.
var (
	intensityNames  = []string{"low", "medium", "high"}
	birthRateTable  = [...]float64{10, 40, 100}
	birthScaleTable = [...]float64{1.5, 0.5, 0.1}

	lifetimeNames = []string{"short", "medium", "long"}
	lifetimeTable = [...]float64{2, 10, 100}

	velocityNames = []string{"slow", "medium", "fast"}
	velocityTable = [...]float64{5, 40, 100}

	fadeOutNames = []string{"none", "slow", "medium", "fast"}
	fadeOutTable = [...]float64{0, -0.08, -0.15, -0.28}

	spreadNames = []string{"low", "medium", "high"}
	spreadTable = [...]float64{math.Pi / 4, math.Pi, math.Pi * 2}
)

// BirthRate returns the particles spawned per second. This is the value the
// emitter actually uses.
func (i Intensity) BirthRate() float64 {
	if i < IntensityLow || i > IntensityHigh {
		i = IntensityMedium
	}
	return birthRateTable[i]
}

// BirthRateScale returns the secondary intensity table (1.5 / 0.5 / 0.1).
// Nothing in the emitter reads it; it is kept alongside BirthRate so both
// intensity-derived constants stay available. Which one was intended for the
// birth rate is unknown.
func (i Intensity) BirthRateScale() float64 {
	if i < IntensityLow || i > IntensityHigh {
		i = IntensityMedium
	}
	return birthScaleTable[i]
}

// Seconds returns the particle lifetime in seconds.
func (l Lifetime) Seconds() float64 {
	if l < LifetimeShort || l > LifetimeLong {
		l = LifetimeMedium
	}
	return lifetimeTable[l]
}

// Speed returns the initial particle speed in units per second.
func (v InitialVelocity) Speed() float64 {
	if v < VelocitySlow || v > VelocityFast {
		v = VelocityMedium
	}
	return velocityTable[v]
}

// AlphaSpeed returns the alpha change per second (zero or negative).
func (f FadeOut) AlphaSpeed() float64 {
	if f < FadeOutNone || f > FadeOutFast {
		f = FadeOutMedium
	}
	return fadeOutTable[f]
}

// Radians returns the emission angle range.
func (s SpreadRadius) Radians() float64 {
	if s < SpreadLow || s > SpreadHigh {
		s = SpreadMedium
	}
	return spreadTable[s]
}

func (i Intensity) String() string       { return enumName(intensityNames, int(i)) }
func (l Lifetime) String() string        { return enumName(lifetimeNames, int(l)) }
func (v InitialVelocity) String() string { return enumName(velocityNames, int(v)) }
func (f FadeOut) String() string         { return enumName(fadeOutNames, int(f)) }
func (s SpreadRadius) String() string    { return enumName(spreadNames, int(s)) }

// ParseIntensity parses "low", "medium" or "high".
func ParseIntensity(s string) (Intensity, error) {
	v, err := parseEnum("intensity", intensityNames, s)
	return Intensity(v), err
}

// ParseLifetime parses "short", "medium" or "long".
func ParseLifetime(s string) (Lifetime, error) {
	v, err := parseEnum("lifetime", lifetimeNames, s)
	return Lifetime(v), err
}

// ParseInitialVelocity parses "slow", "medium" or "fast".
func ParseInitialVelocity(s string) (InitialVelocity, error) {
	v, err := parseEnum("initial velocity", velocityNames, s)
	return InitialVelocity(v), err
}

// ParseFadeOut parses "none", "slow", "medium" or "fast".
func ParseFadeOut(s string) (FadeOut, error) {
	v, err := parseEnum("fade out", fadeOutNames, s)
	return FadeOut(v), err
}

// ParseSpreadRadius parses "low", "medium" or "high".
func ParseSpreadRadius(s string) (SpreadRadius, error) {
	v, err := parseEnum("spread radius", spreadNames, s)
	return SpreadRadius(v), err
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(kind string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", kind, s, ErrUnknownValue)
}

// YAML (预设文件中以小写名称表示枚举)

func (i Intensity) MarshalYAML() (interface{}, error)       { return i.String(), nil }
func (l Lifetime) MarshalYAML() (interface{}, error)        { return l.String(), nil }
func (v InitialVelocity) MarshalYAML() (interface{}, error) { return v.String(), nil }
func (f FadeOut) MarshalYAML() (interface{}, error)         { return f.String(), nil }
func (s SpreadRadius) MarshalYAML() (interface{}, error)    { return s.String(), nil }

func (i *Intensity) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseIntensity(node.Value)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (l *Lifetime) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseLifetime(node.Value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (v *InitialVelocity) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseInitialVelocity(node.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (f *FadeOut) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseFadeOut(node.Value)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (s *SpreadRadius) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseSpreadRadius(node.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SmokeConfig is the declarative description of one smoke effect.
// Treat it as read-only once handed to a SmokeScene; use Clone to derive a
// modified copy.
type SmokeConfig struct {
	// Content 每个元素对应一个发射器（顺序即发射顺序）
	Content []Content

	BackgroundColor color.RGBA // default fully transparent
	Intensity       Intensity
	Lifetime        Lifetime
	InitialVelocity InitialVelocity
	FadeOut         FadeOut
	SpreadRadius    SpreadRadius
	ParticleColor   color.RGBA // tint applied to every particle, default opaque black
}

// SmokeOption customizes a SmokeConfig built by NewSmokeConfig.
type SmokeOption func(*SmokeConfig)

// DefaultSmokeConfig returns the stock configuration: a single spark image,
// medium intensity, lifetime, velocity and fade, high spread, black particles.
func DefaultSmokeConfig() SmokeConfig {
	return SmokeConfig{
		Content:         []Content{ImageContent(nil, nil, 1)},
		BackgroundColor: color.RGBA{},
		Intensity:       IntensityMedium,
		Lifetime:        LifetimeMedium,
		InitialVelocity: VelocityMedium,
		FadeOut:         FadeOutMedium,
		SpreadRadius:    SpreadHigh,
		ParticleColor:   color.RGBA{A: 0xff},
	}
}

// NewSmokeConfig applies opts on top of DefaultSmokeConfig.
func NewSmokeConfig(opts ...SmokeOption) SmokeConfig {
	cfg := DefaultSmokeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithContent replaces the content list. An empty list is allowed.
func WithContent(content ...Content) SmokeOption {
	return func(c *SmokeConfig) {
		c.Content = append([]Content(nil), content...)
	}
}

func WithBackgroundColor(bg color.RGBA) SmokeOption {
	return func(c *SmokeConfig) { c.BackgroundColor = bg }
}

func WithIntensity(i Intensity) SmokeOption {
	return func(c *SmokeConfig) { c.Intensity = i }
}

func WithLifetime(l Lifetime) SmokeOption {
	return func(c *SmokeConfig) { c.Lifetime = l }
}

func WithInitialVelocity(v InitialVelocity) SmokeOption {
	return func(c *SmokeConfig) { c.InitialVelocity = v }
}

func WithFadeOut(f FadeOut) SmokeOption {
	return func(c *SmokeConfig) { c.FadeOut = f }
}

func WithSpreadRadius(s SpreadRadius) SmokeOption {
	return func(c *SmokeConfig) { c.SpreadRadius = s }
}

func WithParticleColor(pc color.RGBA) SmokeOption {
	return func(c *SmokeConfig) { c.ParticleColor = pc }
}

// Clone returns a copy whose content slice is not shared with c.
func (c SmokeConfig) Clone() SmokeConfig {
	out := c
	out.Content = append([]Content(nil), c.Content...)
	return out
}
