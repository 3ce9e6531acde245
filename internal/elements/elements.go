// Package elements is a read-only periodic table keyed by symbol and atomic
// number.
package elements

import "strings"

// Element is one entry of the table.
type Element struct {
	Number int
	Symbol string
}

// Table looks up elements. Implementations must be safe for concurrent reads.
type Table interface {
	BySymbol(symbol string) (Element, bool)
	ByNumber(z int) (Element, bool)
}

var symbols = strings.Fields(`
H He
Li Be B C N O F Ne
Na Mg Al Si P S Cl Ar
K Ca Sc Ti V Cr Mn Fe Co Ni Cu Zn Ga Ge As Se Br Kr
Rb Sr Y Zr Nb Mo Tc Ru Rh Pd Ag Cd In Sn Sb Te I Xe
Cs Ba La Ce Pr Nd Pm Sm Eu Gd Tb Dy Ho Er Tm Yb Lu Hf Ta W Re Os Ir Pt Au Hg Tl Pb Bi Po At Rn
Fr Ra Ac Th Pa U Np Pu Am Cm Bk Cf Es Fm Md No Lr Rf Db Sg Bh Hs Mt Ds Rg Cn Nh Fl Mc Lv Ts Og
`)

type table struct {
	bySymbol map[string]Element
	byNumber []Element
}

// Default returns the table of elements 1 to 118.
func Default() Table {
	t := &table{bySymbol: make(map[string]Element, len(symbols))}
	for i, s := range symbols {
		e := Element{Number: i + 1, Symbol: s}
		t.byNumber = append(t.byNumber, e)
		t.bySymbol[s] = e
	}
	return t
}

// BySymbol accepts any capitalization and trailing VASP decorations such as
// "Fe_pv" or "O/".
func (t *table) BySymbol(symbol string) (Element, bool) {
	s := strings.TrimSpace(symbol)
	if i := strings.IndexAny(s, "_/."); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return Element{}, false
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	e, ok := t.bySymbol[s]
	return e, ok
}

func (t *table) ByNumber(z int) (Element, bool) {
	if z < 1 || z > len(t.byNumber) {
		return Element{}, false
	}
	return t.byNumber[z-1], true
}
