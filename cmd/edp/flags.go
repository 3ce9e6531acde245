package main

import (
	"fmt"

	"github.com/lukaszgryglicki/edp/internal/edp"
	"github.com/spf13/pflag"
)

func setVec3(fs *pflag.FlagSet, name string, v []float64, dst *[3]float64) error {
	if !fs.Changed(name) {
		return nil
	}
	if len(v) != 3 {
		return fmt.Errorf("--%s needs 3 values, got %d", name, len(v))
	}
	copy(dst[:], v)
	return nil
}

type planeFlags struct {
	origin, v1, v2  []float64
	atoms           []int
	scale, interval float64
	logMin, logMax  float64
	negative        bool
	bins            int
	noIso, noLegend bool
	palette         int
	markAtoms       float64
	scaleBar        bool
}

func (f *planeFlags) register(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&f.origin, "origin", nil, "Cartesian origin of the plane x,y,z")
	fs.Float64SliceVar(&f.v1, "v1", nil, "first in-plane vector x,y,z")
	fs.Float64SliceVar(&f.v2, "v2", nil, "second in-plane vector x,y,z")
	fs.IntSliceVar(&f.atoms, "atoms", nil, "three atom indices spanning the plane")
	fs.Float64Var(&f.scale, "scale", edp.PlaneScale, "pixels per angstrom")
	fs.Float64Var(&f.interval, "interval", edp.PlaneInterval, "half-width of the window in angstrom")
	fs.Float64Var(&f.logMin, "log-min", edp.LogMin, "lower log10 bound of the color scale")
	fs.Float64Var(&f.logMax, "log-max", edp.LogMax, "upper log10 bound of the color scale")
	fs.BoolVar(&f.negative, "negative", false, "signed log scale for values of both signs")
	fs.IntVar(&f.bins, "isolines", edp.IsolineBins, "number of isoline bins")
	fs.BoolVar(&f.noIso, "no-isolines", false, "skip isolines")
	fs.BoolVar(&f.noLegend, "no-legend", false, "skip the legend")
	fs.IntVar(&f.palette, "palette", 0, "0 red-blue, 1 yellow-green-blue, 2 viridis")
	fs.Float64Var(&f.markAtoms, "mark-atoms", 0, "circle atoms within this distance (angstrom) of the plane")
	fs.BoolVar(&f.scaleBar, "scale-bar", false, "draw a scale bar")
}

func (f *planeFlags) apply(fs *pflag.FlagSet, cfg *edp.Config) error {
	p := &cfg.Plane
	for _, v := range []struct {
		name string
		val  []float64
		dst  *[3]float64
	}{{"origin", f.origin, &p.Origin}, {"v1", f.v1, &p.V1}, {"v2", f.v2, &p.V2}} {
		if err := setVec3(fs, v.name, v.val, v.dst); err != nil {
			return err
		}
	}
	if fs.Changed("atoms") {
		p.Atoms = f.atoms
	}
	if fs.Changed("scale") {
		p.Scale = f.scale
	}
	if fs.Changed("interval") {
		p.Interval = f.interval
	}
	if fs.Changed("log-min") {
		p.LogMin = f.logMin
	}
	if fs.Changed("log-max") {
		p.LogMax = f.logMax
	}
	if fs.Changed("negative") {
		p.Negative = f.negative
	}
	if fs.Changed("isolines") {
		p.IsolineBins = f.bins
	}
	if fs.Changed("no-isolines") {
		p.NoIsolines = f.noIso
	}
	if fs.Changed("no-legend") {
		p.NoLegend = f.noLegend
	}
	if fs.Changed("palette") {
		p.Palette = f.palette
	}
	if fs.Changed("mark-atoms") {
		p.MarkAtoms = f.markAtoms
	}
	if fs.Changed("scale-bar") {
		p.ScaleBar = f.scaleBar
	}
	return nil
}

type lineFlags struct {
	origin, direction []float64
	atoms             []int
	scale, interval   float64
}

func (f *lineFlags) register(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&f.origin, "origin", nil, "Cartesian center of the line x,y,z")
	fs.Float64SliceVar(&f.direction, "direction", nil, "line direction x,y,z")
	fs.IntSliceVar(&f.atoms, "atoms", nil, "two atom indices the line runs through")
	fs.Float64Var(&f.scale, "scale", edp.PlaneScale, "samples per angstrom")
	fs.Float64Var(&f.interval, "interval", edp.PlaneInterval, "half-length of the line in angstrom")
}

func (f *lineFlags) apply(fs *pflag.FlagSet, cfg *edp.Config) error {
	l := &cfg.Line
	if err := setVec3(fs, "origin", f.origin, &l.Origin); err != nil {
		return err
	}
	if err := setVec3(fs, "direction", f.direction, &l.Direction); err != nil {
		return err
	}
	if fs.Changed("atoms") {
		l.Atoms = f.atoms
	}
	if fs.Changed("scale") {
		l.Scale = f.scale
	}
	if fs.Changed("interval") {
		l.Interval = f.interval
	}
	return nil
}

type averageFlags struct {
	axis string
}

func (f *averageFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.axis, "axis", "c", "lattice axis to average along: a, b or c")
}

func (f *averageFlags) apply(fs *pflag.FlagSet, cfg *edp.Config) error {
	if fs.Changed("axis") {
		cfg.Average.Axis = f.axis
	}
	return nil
}

type sphereFlags struct {
	center       []float64
	atom         int
	radius, step float64
	points       int
}

func (f *sphereFlags) register(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&f.center, "center", nil, "Cartesian center x,y,z")
	fs.IntVar(&f.atom, "atom", 0, "center on this atom")
	fs.Float64Var(&f.radius, "radius", 3, "largest shell radius in angstrom")
	fs.Float64Var(&f.step, "step", edp.SphereStep, "radial step in angstrom")
	fs.IntVar(&f.points, "points", edp.LebedevPoints, "Lebedev rule size: 6, 14, 26, 38 or 50")
}

func (f *sphereFlags) apply(fs *pflag.FlagSet, cfg *edp.Config) error {
	s := &cfg.Sphere
	if err := setVec3(fs, "center", f.center, &s.Center); err != nil {
		return err
	}
	if fs.Changed("atom") {
		atom := f.atom
		s.Atom = &atom
	}
	if fs.Changed("radius") {
		s.Radius = f.radius
	}
	if fs.Changed("step") {
		s.Step = f.step
	}
	if fs.Changed("points") {
		s.Points = f.points
	}
	return nil
}

type raycastFlags struct {
	width, height, samples int
	densityScaling         float64
	axis                   string
	backToFront            bool
	palette                int
}

func (f *raycastFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.width, "width", edp.RayWidth, "image width")
	fs.IntVar(&f.height, "height", edp.RayHeight, "image height")
	fs.IntVar(&f.samples, "samples", edp.RaySamples, "samples per ray")
	fs.Float64Var(&f.densityScaling, "density-scaling", edp.DensityScaling, "alpha exponent")
	fs.StringVar(&f.axis, "axis", "b", "lattice axis the rays travel along")
	fs.BoolVar(&f.backToFront, "back-to-front", false, "march every ray to the end and average")
	fs.IntVar(&f.palette, "palette", 0, "0 red-blue, 1 yellow-green-blue, 2 viridis")
}

func (f *raycastFlags) apply(fs *pflag.FlagSet, cfg *edp.Config) error {
	r := &cfg.Raycast
	if fs.Changed("width") {
		r.Width = f.width
	}
	if fs.Changed("height") {
		r.Height = f.height
	}
	if fs.Changed("samples") {
		r.Samples = f.samples
	}
	if fs.Changed("density-scaling") {
		r.DensityScaling = f.densityScaling
	}
	if fs.Changed("axis") {
		r.Axis = f.axis
	}
	if fs.Changed("back-to-front") {
		r.BackToFront = f.backToFront
	}
	if fs.Changed("palette") {
		r.Palette = f.palette
	}
	return nil
}
