package edp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Atom is an atom of the structure, position in fractional coordinates.
type Atom struct {
	Element string
	Direct  Vec3
}

// ScalarField stores a periodic scalar grid spanning one unit cell.
// It is header-only until LoadGrid succeeds and read-only afterwards.
type ScalarField struct {
	Name     string
	Cell     *UnitCell
	Nx       int
	Ny       int
	Nz       int
	IsLocpot bool
	Atoms    []Atom
	Buf      []float64 // flat: k*Nx*Ny + j*Nx + i

	min, max float64
}

// NewScalarField creates a header-only field. Samples are attached later
// with LoadGrid.
func NewScalarField(name string, cell *UnitCell, nx, ny, nz int, isLocpot bool, atoms []Atom) (*ScalarField, error) {
	if cell == nil {
		return nil, fmt.Errorf("scalar field %q: nil unit cell", name)
	}
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got (%d, %d, %d)", nx, ny, nz)
	}
	sf := &ScalarField{
		Name:     name,
		Cell:     cell,
		Nx:       nx,
		Ny:       ny,
		Nz:       nz,
		IsLocpot: isLocpot,
		Atoms:    atoms,
	}
	DebugLog("Created scalar field %q grid=(%d, %d, %d) locpot=%v atoms=%d", name, nx, ny, nz, isLocpot, len(atoms))
	return sf, nil
}

// LoadGrid attaches raw samples to the field. Density files store charge per
// cell, so values are divided by the cell volume here and nowhere else.
func (sf *ScalarField) LoadGrid(raw []float64) error {
	if sf.Loaded() {
		return fmt.Errorf("scalar field %q: grid already loaded: %w", sf.Name, ErrInvalidState)
	}
	if len(raw) != sf.Size() {
		return fmt.Errorf("scalar field %q: got %d samples, expected %d (Nx*Ny*Nz)", sf.Name, len(raw), sf.Size())
	}
	buf := make([]float64, len(raw))
	copy(buf, raw)
	if !sf.IsLocpot {
		floats.Scale(1/math.Abs(sf.Cell.Volume), buf)
	}
	sf.Buf = buf
	sf.min = floats.Min(buf)
	sf.max = floats.Max(buf)
	DebugLog("Loaded %d samples into %q, min=%g max=%g", len(buf), sf.Name, sf.min, sf.max)
	return nil
}

// Loaded reports whether the grid samples are present.
func (sf *ScalarField) Loaded() bool {
	return sf.Buf != nil && len(sf.Buf) == sf.Size()
}

// Size returns Nx*Ny*Nz.
func (sf *ScalarField) Size() int {
	return sf.Nx * sf.Ny * sf.Nz
}

// Flat buffer index helper. Wrapping is the caller's job.
func (sf *ScalarField) idx(i, j, k int) int {
	return k*sf.Nx*sf.Ny + j*sf.Nx + i
}

// Value returns the sample at grid point (i,j,k).
func (sf *ScalarField) Value(i, j, k int) float64 {
	return sf.Buf[sf.idx(i, j, k)]
}

// Min returns the smallest loaded sample.
func (sf *ScalarField) Min() float64 { return sf.min }

// Max returns the largest loaded sample.
func (sf *ScalarField) Max() float64 { return sf.max }

// Dims returns the grid dimensions as an array.
func (sf *ScalarField) Dims() [3]int {
	return [3]int{sf.Nx, sf.Ny, sf.Nz}
}

// IsInside forwards to the unit cell.
func (sf *ScalarField) IsInside(p Vec3) bool {
	return sf.Cell.IsInside(p)
}

// RealspaceToDirect forwards to the unit cell.
func (sf *ScalarField) RealspaceToDirect(p Vec3) Vec3 {
	return sf.Cell.RealspaceToDirect(p)
}

// RealspaceToGrid converts a Cartesian point to real-valued grid indices.
func (sf *ScalarField) RealspaceToGrid(p Vec3) Vec3 {
	d := sf.Cell.RealspaceToDirect(p)
	return Vec3{d.X * float64(sf.Nx), d.Y * float64(sf.Ny), d.Z * float64(sf.Nz)}
}

// GridToRealspace converts (possibly fractional) grid indices to a Cartesian point.
func (sf *ScalarField) GridToRealspace(i, j, k float64) Vec3 {
	return sf.Cell.DirectToRealspace(Vec3{i / float64(sf.Nx), j / float64(sf.Ny), k / float64(sf.Nz)})
}

// ValueInterp samples the field at a Cartesian point by trilinear
// interpolation. Points outside the unit cell are zero even though the
// interpolation stencil itself wraps periodically.
func (sf *ScalarField) ValueInterp(p Vec3) float64 {
	if !sf.Cell.IsInside(p) {
		return 0
	}
	return sf.interp(sf.RealspaceToGrid(p))
}

// interp evaluates the periodic trilinear stencil at grid coordinates r.
func (sf *ScalarField) interp(r Vec3) float64 {
	dims := sf.Dims()
	g := r.Array()
	var lo, hi [3]int
	var d [3]float64
	for a := 0; a < 3; a++ {
		n := float64(dims[a])
		if g[a] < 0 {
			g[a] += n
		}
		d[a] = math.Mod(g[a], 1)
		if d[a] < 0 {
			d[a] += 1
		}
		lo[a] = wrapIndex(int(math.Floor(g[a])), dims[a])
		hi[a] = wrapIndex(int(math.Ceil(g[a])), dims[a])
	}
	xd, yd, zd := d[0], d[1], d[2]
	x0, y0, z0 := lo[0], lo[1], lo[2]
	x1, y1, z1 := hi[0], hi[1], hi[2]

	return sf.Value(x0, y0, z0)*(1-xd)*(1-yd)*(1-zd) +
		sf.Value(x1, y0, z0)*xd*(1-yd)*(1-zd) +
		sf.Value(x0, y1, z0)*(1-xd)*yd*(1-zd) +
		sf.Value(x0, y0, z1)*(1-xd)*(1-yd)*zd +
		sf.Value(x1, y0, z1)*xd*(1-yd)*zd +
		sf.Value(x0, y1, z1)*(1-xd)*yd*zd +
		sf.Value(x1, y1, z0)*xd*yd*(1-zd) +
		sf.Value(x1, y1, z1)*xd*yd*zd
}

// ValueWrapped samples the field after mapping p back into the unit cell.
// The wrap happens in fractional space so round-off can never push the
// point outside again.
func (sf *ScalarField) ValueWrapped(p Vec3) float64 {
	d := sf.Cell.RealspaceToDirect(p)
	d.X -= math.Floor(d.X)
	d.Y -= math.Floor(d.Y)
	d.Z -= math.Floor(d.Z)
	return sf.interp(Vec3{d.X * float64(sf.Nx), d.Y * float64(sf.Ny), d.Z * float64(sf.Nz)})
}

// AtomPosition returns the Cartesian position of atom atid.
func (sf *ScalarField) AtomPosition(atid int) (Vec3, error) {
	if atid < 0 || atid >= len(sf.Atoms) {
		return Vec3{}, fmt.Errorf("atom %d of %d: %w", atid, len(sf.Atoms), ErrOutOfRange)
	}
	return sf.Cell.DirectToRealspace(sf.Atoms[atid].Direct), nil
}
