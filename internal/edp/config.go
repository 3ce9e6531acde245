package edp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type PlaneCfg struct {
	Origin      [3]float64 `json:"origin" toml:"origin"` // Cartesian, angstrom
	V1          [3]float64 `json:"v1" toml:"v1"`
	V2          [3]float64 `json:"v2" toml:"v2"`
	Atoms       []int      `json:"atoms,omitempty" toml:"atoms"` // three atom indices, overrides origin/v1/v2
	Scale       float64    `json:"scale" toml:"scale"`           // pixels per angstrom
	Interval    float64    `json:"interval" toml:"interval"`     // half-width of the window
	LogMin      float64    `json:"logMin" toml:"logMin"`
	LogMax      float64    `json:"logMax" toml:"logMax"`
	Negative    bool       `json:"negative,omitempty" toml:"negative"`
	IsolineBins int        `json:"isolineBins" toml:"isolineBins"`
	NoIsolines  bool       `json:"noIsolines,omitempty" toml:"noIsolines"`
	NoLegend    bool       `json:"noLegend,omitempty" toml:"noLegend"`
	MarkAtoms   float64    `json:"markAtoms,omitempty" toml:"markAtoms"` // circle atoms this close to the plane, 0 disables
	ScaleBar    bool       `json:"scaleBar,omitempty" toml:"scaleBar"`
	Palette     int        `json:"palette,omitempty" toml:"palette"`
}

type LineCfg struct {
	Origin    [3]float64 `json:"origin" toml:"origin"`
	Direction [3]float64 `json:"direction" toml:"direction"`
	Atoms     []int      `json:"atoms,omitempty" toml:"atoms"` // two atom indices, overrides origin/direction
	Scale     float64    `json:"scale" toml:"scale"`
	Interval  float64    `json:"interval" toml:"interval"`
}

type AverageCfg struct {
	Axis string `json:"axis" toml:"axis"` // a, b or c
}

type SphereCfg struct {
	Center [3]float64 `json:"center" toml:"center"`
	Atom   *int       `json:"atom,omitempty" toml:"atom"` // center on this atom instead
	Radius float64    `json:"radius" toml:"radius"`
	Step   float64    `json:"step" toml:"step"`
	Points int        `json:"points" toml:"points"` // Lebedev rule size
}

type RaycastCfg struct {
	Width          int     `json:"width" toml:"width"`
	Height         int     `json:"height" toml:"height"`
	Samples        int     `json:"samples" toml:"samples"`
	DensityScaling float64 `json:"densityScaling" toml:"densityScaling"`
	BackToFront    bool    `json:"backToFront,omitempty" toml:"backToFront"`
	Axis           string  `json:"axis" toml:"axis"`
	Palette        int     `json:"palette,omitempty" toml:"palette"`
}

type Config struct {
	Input    string     `json:"input" toml:"input"`
	Output   string     `json:"output" toml:"output"`
	NoCharts bool       `json:"noCharts,omitempty" toml:"noCharts"`
	Plane    PlaneCfg   `json:"plane" toml:"plane"`
	Line     LineCfg    `json:"line" toml:"line"`
	Average  AverageCfg `json:"average" toml:"average"`
	Sphere   SphereCfg  `json:"sphere" toml:"sphere"`
	Raycast  RaycastCfg `json:"raycast" toml:"raycast"`
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadConfig reads a JSON or TOML config, chosen by file extension, and
// fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension, use .json or .toml", path)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	DebugLog("Loaded config from %s: input=%s output=%s scale=%g interval=%g", path, cfg.Input, cfg.Output, cfg.Plane.Scale, cfg.Plane.Interval)
	return &cfg, nil
}

// ApplyDefaults replaces unset values by the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Input == "" {
		c.Input = "CHGCAR"
	}
	if c.Output == "" {
		c.Output = "plane.png"
	}
	p := &c.Plane
	if p.V1 == [3]float64{} && p.V2 == [3]float64{} {
		p.V1 = [3]float64{1, 0, 0}
		p.V2 = [3]float64{0, 0, 1}
	}
	if p.Scale <= 0 {
		p.Scale = PlaneScale
	}
	if p.Interval <= 0 {
		p.Interval = PlaneInterval
	}
	if p.LogMin == 0 && p.LogMax == 0 {
		p.LogMin, p.LogMax = LogMin, LogMax
	}
	if p.IsolineBins <= 0 {
		p.IsolineBins = IsolineBins
	}
	l := &c.Line
	if l.Direction == [3]float64{} {
		l.Direction = [3]float64{0, 0, 1}
	}
	if l.Scale <= 0 {
		l.Scale = PlaneScale
	}
	if l.Interval <= 0 {
		l.Interval = PlaneInterval
	}
	if c.Average.Axis == "" {
		c.Average.Axis = "c"
	}
	s := &c.Sphere
	if s.Radius <= 0 {
		s.Radius = 3
	}
	if s.Step <= 0 {
		s.Step = SphereStep
	}
	if s.Points <= 0 {
		s.Points = LebedevPoints
	}
	r := &c.Raycast
	if r.Width <= 0 {
		r.Width = RayWidth
	}
	if r.Height <= 0 {
		r.Height = RayHeight
	}
	if r.Samples <= 0 {
		r.Samples = RaySamples
	}
	if r.DensityScaling <= 0 {
		r.DensityScaling = DensityScaling
	}
	if r.Axis == "" {
		r.Axis = "b"
	}
}

// Validate checks the values that have no sensible default.
func (c *Config) Validate() error {
	if c.Plane.MarkAtoms < 0 {
		return fmt.Errorf("plane atom marker tolerance must be >= 0, got %g", c.Plane.MarkAtoms)
	}
	if !(c.Plane.LogMax > c.Plane.LogMin) {
		return fmt.Errorf("plane log range [%g, %g]: %w", c.Plane.LogMin, c.Plane.LogMax, ErrDegenerateRange)
	}
	if n := len(c.Plane.Atoms); n != 0 && n != 3 {
		return fmt.Errorf("plane needs 3 atoms, got %d", n)
	}
	if n := len(c.Line.Atoms); n != 0 && n != 2 {
		return fmt.Errorf("line needs 2 atoms, got %d", n)
	}
	if _, err := AxisIndex(c.Average.Axis); err != nil {
		return err
	}
	if _, err := AxisIndex(c.Raycast.Axis); err != nil {
		return err
	}
	if _, err := Lebedev(c.Sphere.Points); err != nil {
		return err
	}
	return nil
}

// AxisIndex maps a lattice axis name (a/b/c or x/y/z) to 0, 1 or 2.
func AxisIndex(name string) (int, error) {
	switch strings.ToLower(name) {
	case "a", "x", "0":
		return 0, nil
	case "b", "y", "1":
		return 1, nil
	case "c", "z", "2":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown axis %q: %w", name, ErrOutOfRange)
}
