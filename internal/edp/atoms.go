package edp

import "fmt"

// PlaneFromAtoms builds a cutting plane through atoms a, b and c: the origin
// is atom a, v1 points to b and v2 is the part of c-a orthogonal to v1.
func PlaneFromAtoms(sf *ScalarField, a, b, c int) (v1, v2, origin Vec3, err error) {
	var pb, pc Vec3
	if origin, err = sf.AtomPosition(a); err != nil {
		return
	}
	if pb, err = sf.AtomPosition(b); err != nil {
		return
	}
	if pc, err = sf.AtomPosition(c); err != nil {
		return
	}
	v1 = pb.Sub(origin)
	if v1.Len() < 1e-9 {
		err = fmt.Errorf("atoms %d and %d coincide", a, b)
		return
	}
	u := v1.Norm()
	w := pc.Sub(origin)
	v2 = w.Sub(u.Mul(w.Dot(u)))
	if v2.Len() < 1e-9 {
		err = fmt.Errorf("atoms %d, %d and %d are collinear", a, b, c)
		return
	}
	return u, v2.Norm(), origin, nil
}

// LineFromAtoms builds a line starting at atom a and pointing to atom b.
func LineFromAtoms(sf *ScalarField, a, b int) (dir, origin Vec3, err error) {
	var pb Vec3
	if origin, err = sf.AtomPosition(a); err != nil {
		return
	}
	if pb, err = sf.AtomPosition(b); err != nil {
		return
	}
	dir = pb.Sub(origin)
	if dir.Len() < 1e-9 {
		err = fmt.Errorf("atoms %d and %d coincide", a, b)
		return
	}
	return dir.Norm(), origin, nil
}
