// Package imagefile persists device memory images as plain binary .img
// files.
//
// Load and Save copy the whole image through memory. OpenMapped instead
// memory-maps the file and wraps the mapping as an image.Image, so a
// field-tree parser editing the image edits the file: useful for long
// editing sessions where losing work to a crash matters more than the
// mmap bookkeeping.
package imagefile

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/kd7yxm/go-clonemode/image"
)

// Load reads an image file and checks it against the expected length.
// Image files carry no header or metadata: the only validation a raw
// dump admits is its size.
func Load(path string, expectLen int) (*image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	if len(data) != expectLen {
		return nil, fmt.Errorf("image file %s is %d bytes, expected %d", path, len(data), expectLen)
	}
	return image.FromBytes(data), nil
}

// Save writes the image to path, replacing any existing file.
func Save(path string, img *image.Image) error {
	if err := os.WriteFile(path, img.Bytes(), 0644); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

// Mapped is an image file opened via mmap. The Image aliases the mapping
// directly, so every edit lands in the page cache; Flush forces it to
// disk and Close unmaps and closes the file.
type Mapped struct {
	file *os.File
	data mmap.MMap
	img  *image.Image
}

// OpenMapped memory-maps an existing image file read-write. The file
// must already hold a complete image of the expected length; mapping
// never grows or truncates it.
func OpenMapped(path string, expectLen int) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() != int64(expectLen) {
		f.Close()
		return nil, fmt.Errorf("image file %s is %d bytes, expected %d", path, fi.Size(), expectLen)
	}

	data, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap image file: %w", err)
	}

	return &Mapped{
		file: f,
		data: data,
		img:  image.FromBytes(data),
	}, nil
}

// Image returns the mmap-backed image. It aliases the mapping; do not
// use it after Close.
func (m *Mapped) Image() *image.Image {
	return m.img
}

// Flush forces pending edits to disk.
func (m *Mapped) Flush() error {
	return m.data.Flush()
}

// Close flushes, unmaps, and closes the file.
func (m *Mapped) Close() error {
	var err error
	if m.data != nil {
		if e := m.data.Flush(); e != nil {
			err = e
		}
		if e := m.data.Unmap(); e != nil {
			err = e
		}
		m.data = nil
	}
	if m.file != nil {
		if e := m.file.Close(); e != nil {
			err = e
		}
		m.file = nil
	}
	return err
}
