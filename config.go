package hexview

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer settings. Zero values are replaced by defaults
// in LoadConfig and ParseConfig; DefaultConfig returns a ready configuration.
type Config struct {
	Debug   bool         `yaml:"debug"`
	Log     LogConfig    `yaml:"log"`
	Render  RenderConfig `yaml:"render"`
	Images  ImageConfig  `yaml:"images"`
	Terrain []TerrainDef `yaml:"terrain"`
	Theme   Theme        `yaml:"theme"`

	ScreenshotDir string `yaml:"screenshot_dir"` // target of Display.Screenshot
}

// RenderConfig holds frame pacing, zoom and transition settings.
type RenderConfig struct {
	DefaultZoom int `yaml:"default_zoom"`
	MaxZoom     int `yaml:"max_zoom"`

	FrameInterval time.Duration `yaml:"frame_interval"` // minimum time between presented frames
	MinSleep      time.Duration `yaml:"min_sleep"`      // lower bound of the pacing sleep
	MaxSkips      int           `yaml:"max_skips"`      // consecutive skipped presents before one is forced

	ScrollSpeed        int           `yaml:"scroll_speed"` // pixels per smooth-scroll step
	ScrollStepInterval time.Duration `yaml:"scroll_step_interval"`

	TransitionSteps    int           `yaml:"transition_steps"`
	TransitionInterval time.Duration `yaml:"transition_interval"`

	Turbo bool `yaml:"turbo"` // skip smooth scrolling and time-of-day fades
	Grid  bool `yaml:"grid"`

	FPSSampleFrames int `yaml:"fps_sample_frames"`
}

// ImageConfig names the shared art used by the compositor.
type ImageConfig struct {
	Void        string `yaml:"void"`         // opaque unseen tile
	Fog         string `yaml:"fog"`          // full-hex fog overlay
	VoidEdge    string `yaml:"void_edge"`    // prefix of shroud edge art
	FogEdge     string `yaml:"fog_edge"`     // prefix of fog edge art
	Extension   string `yaml:"extension"`    // suffix appended to edge art ids
	Grid        string `yaml:"grid"`         // hex outline drawn when the grid is on
	DebugMarker string `yaml:"debug_marker"` // drawn on debug highlights

	EnergyBar   string `yaml:"energy_bar"`
	LeaderCrown string `yaml:"leader_crown"`
	Ellipse     string `yaml:"ellipse"` // prefix, completed with [-selected]-<colour>-top|bottom

	OrbAlly      string `yaml:"orb_ally"`
	OrbEnemy     string `yaml:"orb_enemy"`
	OrbUnmoved   string `yaml:"orb_unmoved"`
	OrbPartMoved string `yaml:"orb_partmoved"`
	OrbMoved     string `yaml:"orb_moved"`

	FootLeftN   []string `yaml:"foot_left_n"`
	FootLeftNW  []string `yaml:"foot_left_nw"`
	FootRightN  []string `yaml:"foot_right_n"`
	FootRightNW []string `yaml:"foot_right_nw"`

	MovementFontSize int `yaml:"movement_font_size"`
}

// TerrainDef describes how one terrain code is drawn.
type TerrainDef struct {
	Code          string        `yaml:"code"`
	Image         string        `yaml:"image"`
	Frames        []string      `yaml:"frames"` // animated base image, replaces Image
	FrameDuration time.Duration `yaml:"frame_duration"`
	Foreground    string        `yaml:"foreground"`
	// Transition is the edge-art prefix drawn onto neighbouring hexes of
	// lower precedence, completed with a direction suffix.
	Transition   string  `yaml:"transition"`
	Precedence   int     `yaml:"precedence"`
	Village      bool    `yaml:"village"`
	Submerge     float64 `yaml:"submerge"`
	HeightAdjust int     `yaml:"height_adjust"`
	MinimapColor string  `yaml:"minimap_color"`
}

// Theme lays out the screen around the map area.
type Theme struct {
	Screen  PixelRect    `yaml:"screen"`
	MapArea PixelRect    `yaml:"map_area"`
	Minimap PixelRect    `yaml:"minimap"`
	Panels  []ThemePanel `yaml:"panels"`
	Labels  []ThemeLabel `yaml:"labels"`
	Reports []ReportSlot `yaml:"reports"`
}

// ThemePanel is a static background image.
type ThemePanel struct {
	Image string    `yaml:"image"`
	Rect  PixelRect `yaml:"rect"`
}

// ThemeLabel is static text or an icon.
type ThemeLabel struct {
	Text     string    `yaml:"text"`
	Icon     string    `yaml:"icon"`
	Rect     PixelRect `yaml:"rect"`
	FontSize int       `yaml:"font_size"`
	Color    string    `yaml:"color"`
}

// Report groups decide which invalidation hook refreshes a slot.
const (
	ReportGroupStatus = "status"
	ReportGroupUnit   = "unit"
	ReportGroupClock  = "clock"
)

// ReportSlot is one sidebar report.
type ReportSlot struct {
	Name     string    `yaml:"name"`
	Group    string    `yaml:"group"`
	Rect     PixelRect `yaml:"rect"`
	Prefix   string    `yaml:"prefix"`
	Postfix  string    `yaml:"postfix"`
	FontSize int       `yaml:"font_size"`
	Color    string    `yaml:"color"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"` // rotated log file; stderr when empty
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML, fills defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	r := &c.Render
	if r.DefaultZoom == 0 {
		r.DefaultZoom = DefaultZoom
	}
	if r.MaxZoom == 0 {
		r.MaxZoom = MaxZoom
	}
	if r.FrameInterval == 0 {
		r.FrameInterval = 20 * time.Millisecond
	}
	if r.MinSleep == 0 {
		r.MinSleep = 10 * time.Millisecond
	}
	if r.MaxSkips == 0 {
		r.MaxSkips = 5
	}
	if r.ScrollSpeed == 0 {
		r.ScrollSpeed = 100
	}
	if r.ScrollStepInterval == 0 {
		r.ScrollStepInterval = 10 * time.Millisecond
	}
	if r.TransitionSteps == 0 {
		r.TransitionSteps = 10
	}
	if r.TransitionInterval == 0 {
		r.TransitionInterval = 30 * time.Millisecond
	}
	if r.FPSSampleFrames == 0 {
		r.FPSSampleFrames = 10
	}

	im := &c.Images
	setDefault(&im.Void, "terrain/void.png")
	setDefault(&im.Fog, "terrain/fog.png")
	setDefault(&im.VoidEdge, "terrain/void")
	setDefault(&im.FogEdge, "terrain/fog")
	setDefault(&im.Extension, ".png")
	setDefault(&im.Grid, "terrain/grid.png")
	setDefault(&im.DebugMarker, "misc/cross.png")
	setDefault(&im.EnergyBar, "misc/bar-energy.png")
	setDefault(&im.LeaderCrown, "misc/leader-crown.png")
	setDefault(&im.Ellipse, "misc/ellipse")
	setDefault(&im.OrbAlly, "misc/ally-orb.png")
	setDefault(&im.OrbEnemy, "misc/enemy-orb.png")
	setDefault(&im.OrbUnmoved, "misc/unmoved-orb.png")
	setDefault(&im.OrbPartMoved, "misc/partmoved-orb.png")
	setDefault(&im.OrbMoved, "misc/moved-orb.png")
	if len(im.FootLeftN) == 0 {
		im.FootLeftN = []string{"footsteps/foot-normal-left-n.png", "footsteps/foot-slow-left-n.png"}
	}
	if len(im.FootLeftNW) == 0 {
		im.FootLeftNW = []string{"footsteps/foot-normal-left-nw.png", "footsteps/foot-slow-left-nw.png"}
	}
	if len(im.FootRightN) == 0 {
		im.FootRightN = []string{"footsteps/foot-normal-right-n.png", "footsteps/foot-slow-right-n.png"}
	}
	if len(im.FootRightNW) == 0 {
		im.FootRightNW = []string{"footsteps/foot-normal-right-nw.png", "footsteps/foot-slow-right-nw.png"}
	}
	if im.MovementFontSize == 0 {
		im.MovementFontSize = 12
	}

	setDefault(&c.ScreenshotDir, "screenshots")

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 7
	}

	for i := range c.Theme.Reports {
		if c.Theme.Reports[i].Group == "" {
			c.Theme.Reports[i].Group = ReportGroupStatus
		}
	}
}

func setDefault(s *string, v string) {
	if *s == "" {
		*s = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	r := c.Render
	if r.DefaultZoom <= 0 || r.DefaultZoom%ZoomQuantum != 0 {
		return fmt.Errorf("config: default_zoom %d must be a positive multiple of %d", r.DefaultZoom, ZoomQuantum)
	}
	if r.MaxZoom < r.DefaultZoom {
		return fmt.Errorf("config: max_zoom %d below default_zoom %d", r.MaxZoom, r.DefaultZoom)
	}
	if r.FrameInterval < 0 || r.MinSleep < 0 || r.ScrollStepInterval < 0 || r.TransitionInterval < 0 {
		return errors.New("config: durations must not be negative")
	}
	if r.MaxSkips < 0 {
		return fmt.Errorf("config: max_skips %d must not be negative", r.MaxSkips)
	}
	if r.ScrollSpeed <= 0 {
		return fmt.Errorf("config: scroll_speed %d must be positive", r.ScrollSpeed)
	}
	if r.TransitionSteps <= 0 {
		return fmt.Errorf("config: transition_steps %d must be positive", r.TransitionSteps)
	}

	seen := make(map[string]bool, len(c.Terrain))
	for i, t := range c.Terrain {
		if t.Code == "" {
			return fmt.Errorf("config: terrain %d has no code", i)
		}
		if seen[t.Code] {
			return fmt.Errorf("config: duplicate terrain code %q", t.Code)
		}
		seen[t.Code] = true
		if t.Submerge < 0 || t.Submerge > 1 {
			return fmt.Errorf("config: terrain %q submerge %v outside [0, 1]", t.Code, t.Submerge)
		}
		if len(t.Frames) > 0 && t.FrameDuration <= 0 {
			return fmt.Errorf("config: terrain %q has frames but no frame_duration", t.Code)
		}
		if t.MinimapColor != "" {
			if _, err := ParseColor(t.MinimapColor); err != nil {
				return fmt.Errorf("config: terrain %q: %w", t.Code, err)
			}
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	n := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(n).(color.RGBA), nil
}

// colorOr parses s, falling back to def when s is empty or invalid.
func colorOr(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
