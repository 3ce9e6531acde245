package edp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lukaszgryglicki/edp/internal/profile"
)

// Run modes.
const (
	ModePlane   = "plane"
	ModeLine    = "line"
	ModeAverage = "zavg"
	ModeSphere  = "sphere"
	ModeRaycast = "raycast"
)

// Run executes one mode over a loaded field.
func Run(ctx context.Context, mode string, sf *ScalarField, cfg *Config) error {
	if !sf.Loaded() {
		return ErrNotLoaded
	}
	stages := &StageLog{}
	if Debug {
		defer stages.Report()
	}
	switch mode {
	case ModePlane:
		return RunPlane(ctx, sf, cfg, stages)
	case ModeLine:
		return RunLine(ctx, sf, cfg, stages)
	case ModeAverage:
		return RunAverage(ctx, sf, cfg, stages)
	case ModeSphere:
		return RunSphere(ctx, sf, cfg, stages)
	case ModeRaycast:
		return RunRaycast(ctx, sf, cfg, stages)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

// RunPlane renders a contour plot of a planar cut to cfg.Output.
func RunPlane(ctx context.Context, sf *ScalarField, cfg *Config, stages *StageLog) error {
	pc := cfg.Plane
	v1, v2, origin := vec3FromArray(pc.V1), vec3FromArray(pc.V2), vec3FromArray(pc.Origin)
	if len(pc.Atoms) == 3 {
		var err error
		if v1, v2, origin, err = PlaneFromAtoms(sf, pc.Atoms[0], pc.Atoms[1], pc.Atoms[2]); err != nil {
			return err
		}
	}
	Log.Infof("Plane vector 1: (%12.6f;%12.6f;%12.6f)", v1.X, v1.Y, v1.Z)
	Log.Infof("Plane vector 2: (%12.6f;%12.6f;%12.6f)", v2.X, v2.Y, v2.Z)
	Log.Infof("Starting point: (%12.6f;%12.6f;%12.6f)", origin.X, origin.Y, origin.Z)

	pp := NewPlaneProjector(sf, pc.Palette)
	if err := pp.SetScaling(pc.Negative, pc.LogMin, pc.LogMax); err != nil {
		return err
	}
	done := stages.Track("extract", 0)
	err := pp.Extract(ctx, v1, v2, origin, pc.Scale, -pc.Interval, pc.Interval, -pc.Interval, pc.Interval)
	done()
	if err != nil {
		return err
	}
	g := pp.Grid()
	done = stages.Track("plot", g.Width*g.Height)
	if err := pp.Plot(); err != nil {
		return err
	}
	if !pc.NoIsolines {
		if err := pp.Isolines(ctx, pc.IsolineBins); err != nil {
			return err
		}
	}
	if pc.MarkAtoms > 0 {
		n, err := pp.MarkAtoms(pc.MarkAtoms)
		if err != nil {
			return err
		}
		Log.Infof("Marked %d atoms within %g Å of the plane", n, pc.MarkAtoms)
	}
	if pc.ScaleBar {
		if err := pp.DrawScaleBar(); err != nil {
			return err
		}
	}
	if !pc.NoLegend {
		if err := pp.DrawLegend(); err != nil {
			return err
		}
	}
	done()
	done = stages.Track("write", g.Width*g.Height)
	defer done()
	return pp.Write(cfg.Output)
}

// RunLine writes a line cut as text and, unless disabled, as a chart at
// cfg.Output.
func RunLine(ctx context.Context, sf *ScalarField, cfg *Config, stages *StageLog) error {
	lc := cfg.Line
	dir, origin := vec3FromArray(lc.Direction), vec3FromArray(lc.Origin)
	if len(lc.Atoms) == 2 {
		var err error
		if dir, origin, err = LineFromAtoms(sf, lc.Atoms[0], lc.Atoms[1]); err != nil {
			return err
		}
	}
	done := stages.Track("line", 0)
	pts, err := ExtractLine(ctx, sf, dir, origin, lc.Scale, -lc.Interval, lc.Interval)
	done()
	if err != nil {
		return err
	}
	if err := WriteLine(sidePath(cfg, LineExtraction), pts); err != nil {
		return err
	}
	if len(pts) == 0 {
		Log.Warn("Line cut holds no non-zero sample, skipping chart")
		return nil
	}
	return saveChart(cfg, LineProfile(pts), "Line cut", "distance [Å]", sf.Units())
}

// RunAverage writes the layer-averaged profile along cfg.Average.Axis.
func RunAverage(ctx context.Context, sf *ScalarField, cfg *Config, stages *StageLog) error {
	axis, err := AxisIndex(cfg.Average.Axis)
	if err != nil {
		return err
	}
	done := stages.Track("average", sf.Size())
	pts, err := ExtractPlaneAverage(ctx, sf, axis)
	done()
	if err != nil {
		return err
	}
	if err := WriteProfile(sidePath(cfg, ZExtraction), pts); err != nil {
		return err
	}
	return saveChart(cfg, pts, "Plane average", "fraction along "+cfg.Average.Axis, sf.Units())
}

// RunSphere writes the spherically averaged profile around a point or atom.
func RunSphere(ctx context.Context, sf *ScalarField, cfg *Config, stages *StageLog) error {
	sc := cfg.Sphere
	center := vec3FromArray(sc.Center)
	if sc.Atom != nil {
		var err error
		if center, err = sf.AtomPosition(*sc.Atom); err != nil {
			return err
		}
	}
	done := stages.Track("sphere", 0)
	pts, err := ExtractSphereAverage(ctx, sf, center, sc.Radius, sc.Step, sc.Points)
	done()
	if err != nil {
		return err
	}
	if err := WriteProfile(sidePath(cfg, SphericalAverage), pts); err != nil {
		return err
	}
	return saveChart(cfg, pts, "Spherical average", "r [Å]", sf.Units())
}

// RunRaycast renders the volume to cfg.Output.
func RunRaycast(ctx context.Context, sf *ScalarField, cfg *Config, stages *StageLog) error {
	rcfg := cfg.Raycast
	axis, err := AxisIndex(rcfg.Axis)
	if err != nil {
		return err
	}
	rc, err := NewRayCaster(sf, rcfg.Palette)
	if err != nil {
		return err
	}
	rc.Width, rc.Height = rcfg.Width, rcfg.Height
	rc.Samples = rcfg.Samples
	rc.DensityScaling = rcfg.DensityScaling
	rc.FrontToBack = !rcfg.BackToFront
	rc.Axis = axis
	done := stages.Track("raycast", rc.Width*rc.Height*rc.Samples)
	err = rc.Cast(ctx)
	done()
	if err != nil {
		return err
	}
	return rc.Write(cfg.Output)
}

func sidePath(cfg *Config, name string) string {
	return filepath.Join(filepath.Dir(cfg.Output), name)
}

func saveChart(cfg *Config, pts []ProfilePoint, title, xlabel, units string) error {
	if !Charts || cfg.NoCharts {
		return nil
	}
	xs, ys := XY(pts)
	c := profile.Chart{Title: title, XLabel: xlabel, YLabel: units}
	if err := c.Save(cfg.Output, xs, ys); err != nil {
		return fmt.Errorf("%v: %w", err, ErrIOFailure)
	}
	Log.Infof("Writing %s", cfg.Output)
	return nil
}
