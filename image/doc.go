// Package image provides the in-memory representation of a radio's full
// memory image and the block layout used to transfer it.
//
// # ByteImage
//
// An Image is a fixed-length mutable byte buffer holding the complete
// device memory. It is created once per download, filled block by block by
// the transfer engine, and then handed to exactly one consumer (typically
// a field-tree parser) for editing:
//
//	img := image.New(16211)
//	// ... download fills it ...
//	fields := myparser.Parse(img.Bytes()) // aliases the same bytes
//
// Bytes returns the underlying storage, not a copy, so edits made through
// a parsed field tree are visible to a subsequent upload without any
// re-copying. An Image must only ever have one writer at a time.
//
// # BlockSpec
//
// A BlockSpec declares the ordered, contiguous blocks a model's image is
// transferred in. Most descriptors build one from the raw block lengths:
//
//	blocks := image.Blocks(10, 8, 16193)
//
// Validate checks that the blocks tile the image exactly, with no gaps,
// overlaps, or leftover bytes.
package image
