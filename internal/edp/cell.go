package edp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat3 is a 3×3 row-major matrix.
type Mat3 struct {
	M [3][3]float64
}

// MulVec returns A·v.
func (A Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}

// Row returns the r-th row as a vector.
func (A Mat3) Row(r int) Vec3 {
	return vec3FromArray(A.M[r])
}

func (A Mat3) dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			d.Set(r, c, A.M[r][c])
		}
	}
	return d
}

// UnitCell holds the lattice vectors as the rows of M, so a Cartesian point
// is r = Mᵀ·f for fractional coordinates f.
type UnitCell struct {
	M      Mat3
	Inv    Mat3 // (Mᵀ)⁻¹, maps Cartesian to fractional
	Volume float64
}

// NewUnitCell scales the lattice rows by scalar and precomputes the inverse
// and the volume. The matrix must be non-singular.
func NewUnitCell(lattice [3][3]float64, scalar float64) (*UnitCell, error) {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.M[r][c] = lattice[r][c] * scalar
		}
	}
	d := m.dense()
	det := mat.Det(d)
	if det == 0 || !isFinite(det) || math.Abs(det) < 1e-12 {
		return nil, fmt.Errorf("lattice determinant %g: %w", det, ErrSingularCell)
	}
	var inv mat.Dense
	if err := inv.Inverse(d.T()); err != nil {
		return nil, fmt.Errorf("inverting lattice: %w", ErrSingularCell)
	}
	cell := &UnitCell{M: m, Volume: det}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell.Inv.M[r][c] = inv.At(r, c)
		}
	}
	DebugLog("Created unit cell a=%+v b=%+v c=%+v volume=%.6f", m.Row(0), m.Row(1), m.Row(2), det)
	return cell, nil
}

// RealspaceToDirect converts a Cartesian point to fractional coordinates.
func (u *UnitCell) RealspaceToDirect(p Vec3) Vec3 {
	return u.Inv.MulVec(p)
}

// DirectToRealspace converts fractional coordinates to a Cartesian point.
func (u *UnitCell) DirectToRealspace(f Vec3) Vec3 {
	return Vec3{
		u.M.M[0][0]*f.X + u.M.M[1][0]*f.Y + u.M.M[2][0]*f.Z,
		u.M.M[0][1]*f.X + u.M.M[1][1]*f.Y + u.M.M[2][1]*f.Z,
		u.M.M[0][2]*f.X + u.M.M[1][2]*f.Y + u.M.M[2][2]*f.Z,
	}
}

// IsInside reports whether every fractional component lies in [0,1].
// Faces are inside. Points outside are never wrapped here.
func (u *UnitCell) IsInside(p Vec3) bool {
	d := u.RealspaceToDirect(p)
	return d.X >= 0 && d.X <= 1 && d.Y >= 0 && d.Y <= 1 && d.Z >= 0 && d.Z <= 1
}

// WrapDirect maps a Cartesian point back into the cell through its
// fractional coordinates.
func (u *UnitCell) WrapDirect(p Vec3) Vec3 {
	d := u.RealspaceToDirect(p)
	d.X -= math.Floor(d.X)
	d.Y -= math.Floor(d.Y)
	d.Z -= math.Floor(d.Z)
	return u.DirectToRealspace(d)
}

// Center returns the Cartesian center of the cell.
func (u *UnitCell) Center() Vec3 {
	return u.DirectToRealspace(Vec3{0.5, 0.5, 0.5})
}
