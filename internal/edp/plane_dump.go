package edp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveReal writes the raw samples as uint32 width, uint32 height followed by
// width*height float32 values, little-endian, row by row.
func (g *PlaneGrid) SaveReal(path string) error {
	data := make([]float32, len(g.Real))
	for i, v := range g.Real {
		data[i] = float32(v)
	}
	return g.save(path, data)
}

// SaveMask writes the inside-cell mask as uint32 width, uint32 height
// followed by one byte (0 or 1) per sample.
func (g *PlaneGrid) SaveMask(path string) error {
	data := make([]uint8, len(g.Mask))
	for i, in := range g.Mask {
		if in {
			data[i] = 1
		}
	}
	return g.save(path, data)
}

func (g *PlaneGrid) save(path string, body interface{}) error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("negative dimensions: Width=%d Height=%d", g.Width, g.Height)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(g.Width)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(g.Height)); err != nil {
		return err
	}
	if g.Width*g.Height > 0 {
		if err := binary.Write(w, binary.LittleEndian, body); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
