// Package chgcar reads VASP CHGCAR and LOCPOT volumetric grid files.
package chgcar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lukaszgryglicki/edp/internal/edp"
	"github.com/lukaszgryglicki/edp/internal/elements"
	"gonum.org/v1/gonum/mat"
)

// ErrMalformed marks input that does not follow the grid file layout.
var ErrMalformed = errors.New("malformed grid file")

// UnknownSpecies names atoms of old style files whose comment line does not
// list the elements.
const UnknownSpecies = "X"

// Header is everything in front of the grid values.
type Header struct {
	Comment    string
	Scale      float64 // as written; negative means target volume
	Lattice    [3][3]float64
	Species    []string
	Counts     []int
	Selective  bool
	Cartesian  bool
	Atoms      []edp.Atom
	Nx, Ny, Nz int
}

// NumAtoms returns the total atom count.
func (h *Header) NumAtoms() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Reader parses one grid file. Header, field construction and grid values
// are read in that order.
type Reader struct {
	Name     string
	IsLocpot bool

	in           *bufio.Reader
	table        elements.Table
	line         int
	header       *Header
	cell         *edp.UnitCell
	headerParsed bool
	gridParsed   bool
}

// NewReader wraps r. Element symbols are validated against table.
func NewReader(r io.Reader, name string, isLocpot bool, table elements.Table) *Reader {
	return &Reader{
		Name:     name,
		IsLocpot: isLocpot,
		in:       bufio.NewReaderSize(r, 1<<20),
		table:    table,
	}
}

// IsLocpotName reports whether a file name looks like a potential file.
func IsLocpotName(path string) bool {
	return strings.Contains(strings.ToUpper(filepath.Base(path)), "LOCPOT")
}

// Load reads a whole file into a scalar field.
func Load(path string, isLocpot bool, table elements.Table) (*edp.ScalarField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := NewReader(f, filepath.Base(path), isLocpot, table)
	if _, err := r.ReadHeader(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sf, err := r.Field()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := r.ReadGrid(sf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

func (r *Reader) next() (string, error) {
	s, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF {
			return "", fmt.Errorf("line %d: unexpected end of file: %w", r.line+1, ErrMalformed)
		}
		return "", err
	}
	r.line++
	return strings.TrimRight(s, "\r\n"), nil
}

func (r *Reader) malformed(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s: %w", r.line, fmt.Sprintf(format, args...), ErrMalformed)
}

// parseFloat accepts Fortran style D exponents.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(s), 64)
}

func (r *Reader) floats(line string, n int) ([]float64, error) {
	f := strings.Fields(line)
	if len(f) < n {
		return nil, r.malformed("expected %d numbers, got %q", n, line)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := parseFloat(f[i])
		if err != nil {
			return nil, r.malformed("bad number %q", f[i])
		}
		out[i] = v
	}
	return out, nil
}

func (r *Reader) ints(line string) ([]int, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil, r.malformed("expected integers, got empty line")
	}
	out := make([]int, len(f))
	for i, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, r.malformed("bad count %q", s)
		}
		out[i] = v
	}
	return out, nil
}

// ReadHeader parses the structure block and the grid dimensions.
func (r *Reader) ReadHeader() (*Header, error) {
	if r.headerParsed {
		return nil, fmt.Errorf("header already read: %w", edp.ErrInvalidState)
	}
	h := &Header{}
	var err error
	if h.Comment, err = r.next(); err != nil {
		return nil, err
	}
	line, err := r.next()
	if err != nil {
		return nil, err
	}
	sc, err := r.floats(line, 1)
	if err != nil {
		return nil, err
	}
	h.Scale = sc[0]
	for i := 0; i < 3; i++ {
		if line, err = r.next(); err != nil {
			return nil, err
		}
		row, err := r.floats(line, 3)
		if err != nil {
			return nil, err
		}
		copy(h.Lattice[i][:], row)
	}

	if line, err = r.next(); err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) > 0 {
		if _, err := strconv.Atoi(fields[0]); err != nil {
			h.Species = fields
			if line, err = r.next(); err != nil {
				return nil, err
			}
		}
	}
	if h.Counts, err = r.ints(line); err != nil {
		return nil, err
	}
	if h.Species == nil {
		h.Species = r.guessSpecies(h.Comment, len(h.Counts))
	}
	if len(h.Species) != len(h.Counts) {
		return nil, r.malformed("%d species for %d counts", len(h.Species), len(h.Counts))
	}
	for _, s := range h.Species {
		if s == UnknownSpecies {
			continue
		}
		if _, ok := r.table.BySymbol(s); !ok {
			return nil, r.malformed("unknown element %q", s)
		}
	}

	if line, err = r.next(); err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(line); t != "" && (t[0] == 'S' || t[0] == 's') {
		h.Selective = true
		if line, err = r.next(); err != nil {
			return nil, err
		}
	}
	if t := strings.TrimSpace(line); t != "" && strings.ContainsRune("CcKk", rune(t[0])) {
		h.Cartesian = true
	}

	cell, err := edp.NewUnitCell(h.Lattice, r.scalar(h))
	if err != nil {
		return nil, err
	}
	for si, n := range h.Counts {
		for a := 0; a < n; a++ {
			if line, err = r.next(); err != nil {
				return nil, err
			}
			pos, err := r.floats(line, 3)
			if err != nil {
				return nil, err
			}
			p := edp.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}
			if h.Cartesian {
				p = cell.RealspaceToDirect(p.Mul(r.scalar(h)))
			}
			h.Atoms = append(h.Atoms, edp.Atom{Element: h.Species[si], Direct: p})
		}
	}

	for {
		if line, err = r.next(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) != "" {
			break
		}
	}
	dims, err := r.ints(line)
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 || dims[0] == 0 || dims[1] == 0 || dims[2] == 0 {
		return nil, r.malformed("bad grid dimensions %q", line)
	}
	h.Nx, h.Ny, h.Nz = dims[0], dims[1], dims[2]

	r.header = h
	r.cell = cell
	r.headerParsed = true
	edp.DebugLog("Read header of %s: %d atoms, grid=(%d, %d, %d)", r.Name, h.NumAtoms(), h.Nx, h.Ny, h.Nz)
	return h, nil
}

// scalar resolves the scale line. A negative value is the target cell
// volume.
func (r *Reader) scalar(h *Header) float64 {
	if h.Scale >= 0 {
		return h.Scale
	}
	m := mat.NewDense(3, 3, []float64{
		h.Lattice[0][0], h.Lattice[0][1], h.Lattice[0][2],
		h.Lattice[1][0], h.Lattice[1][1], h.Lattice[1][2],
		h.Lattice[2][0], h.Lattice[2][1], h.Lattice[2][2],
	})
	det := math.Abs(mat.Det(m))
	if det == 0 {
		return 0
	}
	return math.Cbrt(-h.Scale / det)
}

// guessSpecies takes the element names of old style files from the comment
// line when it lists exactly one element per count.
func (r *Reader) guessSpecies(comment string, n int) []string {
	f := strings.Fields(comment)
	if len(f) >= n {
		ok := true
		for _, s := range f[:n] {
			if _, found := r.table.BySymbol(s); !found {
				ok = false
				break
			}
		}
		if ok {
			return f[:n]
		}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = UnknownSpecies
	}
	return out
}

// Field builds a header-only scalar field from the parsed header.
func (r *Reader) Field() (*edp.ScalarField, error) {
	if !r.headerParsed {
		return nil, fmt.Errorf("field before header: %w", edp.ErrInvalidState)
	}
	h := r.header
	return edp.NewScalarField(r.Name, r.cell, h.Nx, h.Ny, h.Nz, r.IsLocpot, h.Atoms)
}

// ReadGrid reads exactly Nx*Ny*Nz values and loads them into sf. Anything
// after them (augmentation charges, a second spin block) is not read.
func (r *Reader) ReadGrid(sf *edp.ScalarField) error {
	if !r.headerParsed {
		return fmt.Errorf("grid before header: %w", edp.ErrInvalidState)
	}
	if r.gridParsed {
		return fmt.Errorf("grid already read: %w", edp.ErrInvalidState)
	}
	n := sf.Size()
	buf := make([]float64, 0, n)
	for len(buf) < n {
		line, err := r.next()
		if err != nil {
			return fmt.Errorf("read %d of %d grid values: %w", len(buf), n, err)
		}
		for _, s := range strings.Fields(line) {
			if len(buf) == n {
				break
			}
			v, err := parseFloat(s)
			if err != nil {
				return r.malformed("bad grid value %q", s)
			}
			buf = append(buf, v)
		}
	}
	if err := sf.LoadGrid(buf); err != nil {
		return err
	}
	r.gridParsed = true
	edp.Log.Infof("Read %d grid values from %s", n, r.Name)
	return nil
}
