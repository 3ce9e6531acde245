package main

import (
	"fmt"
	"io"

	"github.com/lukaszgryglicki/edp/internal/chgcar"
	"github.com/lukaszgryglicki/edp/internal/edp"
	"github.com/lukaszgryglicki/edp/internal/elements"
)

func printInfo(w io.Writer, sf *edp.ScalarField) {
	kind := "density"
	if sf.IsLocpot {
		kind = "potential"
	}
	fmt.Fprintf(w, "File:    %s (%s)\n", sf.Name, kind)
	for i, axis := range []string{"a", "b", "c"} {
		r := sf.Cell.M.Row(i)
		fmt.Fprintf(w, "%s:       (%12.6f;%12.6f;%12.6f)\n", axis, r.X, r.Y, r.Z)
	}
	fmt.Fprintf(w, "Volume:  %.6f Å³\n", sf.Cell.Volume)
	fmt.Fprintf(w, "Grid:    %d x %d x %d (%d points)\n", sf.Nx, sf.Ny, sf.Nz, sf.Size())
	fmt.Fprintf(w, "Range:   %.6e .. %.6e %s\n", sf.Min(), sf.Max(), sf.Units())
	fmt.Fprintf(w, "Atoms:   %d\n", len(sf.Atoms))
}

func printAtoms(w io.Writer, sf *edp.ScalarField, table elements.Table) error {
	fmt.Fprintf(w, "%4s %-3s %3s %10s %10s %10s %12s %12s %12s\n", "#", "El", "Z", "a", "b", "c", "x", "y", "z")
	for i, a := range sf.Atoms {
		el, ok := table.BySymbol(a.Element)
		if !ok {
			if a.Element != chgcar.UnknownSpecies {
				return fmt.Errorf("atom %d: unknown element %q", i, a.Element)
			}
			el = elements.Element{Symbol: chgcar.UnknownSpecies}
		}
		p, err := sf.AtomPosition(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%4d %-3s %3d %10.6f %10.6f %10.6f %12.6f %12.6f %12.6f\n",
			i, el.Symbol, el.Number, a.Direct.X, a.Direct.Y, a.Direct.Z, p.X, p.Y, p.Z)
	}
	return nil
}
