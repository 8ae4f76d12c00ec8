package image

import "fmt"

// Image is a fixed-length mutable buffer holding a complete device memory
// image. The length is set at construction and never changes.
//
// All index-based accessors panic on out-of-range offsets, matching slice
// semantics: an out-of-range access into a device image is a programming
// error, not a runtime condition to recover from.
type Image struct {
	data []byte
}

// New creates a zero-filled Image of the given size in bytes.
func New(size int) *Image {
	if size <= 0 {
		panic(fmt.Sprintf("image: invalid size %d", size))
	}
	return &Image{data: make([]byte, size)}
}

// FromBytes wraps an existing byte slice as an Image. The Image aliases
// the slice; it does not copy. This is how a memory-mapped image file or
// a previously downloaded buffer becomes editable.
func FromBytes(data []byte) *Image {
	if len(data) == 0 {
		panic("image: empty buffer")
	}
	return &Image{data: data}
}

// Len returns the fixed image length in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// At returns the byte at offset.
func (img *Image) At(offset int) byte {
	return img.data[offset]
}

// Set writes b at offset.
func (img *Image) Set(offset int, b byte) {
	img.data[offset] = b
}

// Slice returns the half-open range [start, end) of the image. The
// returned slice aliases the image storage.
func (img *Image) Slice(start, end int) []byte {
	return img.data[start:end]
}

// Bytes returns the underlying storage. The slice aliases the image:
// writes through it are visible to every other holder of this Image.
// Field-tree parsers must operate on this slice, never on a copy, so
// that their edits reach the next upload.
func (img *Image) Bytes() []byte {
	return img.data
}

// CopyBytes returns an independent copy of the image contents.
func (img *Image) CopyBytes() []byte {
	out := make([]byte, len(img.data))
	copy(out, img.data)
	return out
}
