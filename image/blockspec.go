package image

import "fmt"

// Block is one contiguous chunk of the memory image, transferred as a
// single read or write unit.
type Block struct {
	// Offset is the byte position of the block within the image
	Offset int

	// Length is the block size in bytes
	Length int
}

// BlockSpec is the ordered sequence of blocks a model's image is
// transferred in. Blocks must be contiguous, non-overlapping, and cover
// the whole image exactly once.
type BlockSpec []Block

// Blocks builds a contiguous BlockSpec from a list of block lengths,
// starting at offset zero. This matches how radio protocols are usually
// documented: as a list of block sizes, not offsets.
func Blocks(lengths ...int) BlockSpec {
	spec := make(BlockSpec, 0, len(lengths))
	offset := 0
	for _, l := range lengths {
		spec = append(spec, Block{Offset: offset, Length: l})
		offset += l
	}
	return spec
}

// Total returns the sum of all block lengths.
func (bs BlockSpec) Total() int {
	total := 0
	for _, b := range bs {
		total += b.Length
	}
	return total
}

// Validate checks that the spec tiles [0, imageLen) exactly: at least one
// block, positive lengths, each block starting where the previous one
// ended, and the total equal to the image length.
func (bs BlockSpec) Validate(imageLen int) error {
	if len(bs) == 0 {
		return fmt.Errorf("block spec is empty")
	}
	offset := 0
	for i, b := range bs {
		if b.Length <= 0 {
			return fmt.Errorf("block %d has invalid length %d", i, b.Length)
		}
		if b.Offset != offset {
			return fmt.Errorf("block %d starts at %d, expected %d (blocks must be contiguous)",
				i, b.Offset, offset)
		}
		offset += b.Length
	}
	if offset != imageLen {
		return fmt.Errorf("blocks cover %d bytes, image is %d", offset, imageLen)
	}
	return nil
}
