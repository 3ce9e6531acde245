package edp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ProfilePoint is one (x, y) sample of a 1D profile.
type ProfilePoint struct {
	X, Y float64
}

// LinePoint is a sampled point of a line cut.
type LinePoint struct {
	Pos   Vec3
	Value float64
}

// XY splits the profile into abscissae and ordinates.
func XY(pts []ProfilePoint) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return
}

// WriteProfile stores pts as whitespace separated "x y" rows.
func WriteProfile(path string, pts []ProfilePoint) error {
	return writeRows(path, len(pts), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%.6f %.10e\n", pts[i].X, pts[i].Y)
		return err
	})
}

// WriteLine stores pts as whitespace separated "x y z value" rows.
func WriteLine(path string, pts []LinePoint) error {
	return writeRows(path, len(pts), func(w *bufio.Writer, i int) error {
		p := pts[i]
		_, err := fmt.Fprintf(w, "%.6f %.6f %.6f %.10e\n", p.Pos.X, p.Pos.Y, p.Pos.Z, p.Value)
		return err
	})
}

func writeRows(path string, n int, row func(w *bufio.Writer, i int) error) error {
	fail := func(err error) error {
		return fmt.Errorf("writing %s: %v: %w", path, err, ErrIOFailure)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fail(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if err := row(w, i); err != nil {
			return fail(err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	Log.Infof("Writing %s (%d rows)", path, n)
	return nil
}
