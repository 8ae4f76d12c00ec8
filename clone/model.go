package clone

import (
	"fmt"

	"github.com/kd7yxm/go-clonemode/image"
	"github.com/kd7yxm/go-clonemode/protocol"
)

// ModelDescriptor is the only per-radio customization point. The engine
// is fully generic over it: a supported model is a descriptor value, not
// a subclass.
type ModelDescriptor struct {
	// Name identifies the model in logs and the CLI
	Name string

	// ImageLength is the device's declared memory size in bytes
	ImageLength int

	// Blocks is the ordered block layout of the transfer
	Blocks image.BlockSpec

	// AckByte is the model's acknowledgement byte. Usually
	// protocol.CmdAck, but several real models deviate, so no
	// process-wide constant is ever assumed.
	AckByte byte

	// EchoSuppression is set for cable/radio combinations that loop
	// transmitted bytes back to the host
	EchoSuppression bool

	// Checksums are the embedded checksum rules, verified after every
	// download and recomputed before every upload
	Checksums []protocol.ChecksumRule

	// BaudRate is the serial speed the radio clones at
	BaudRate int

	// WriteChunkSize is the sub-chunk size for the final upload block;
	// zero means protocol.DefaultWriteChunkSize
	WriteChunkSize int
}

// Validate checks the descriptor for internal consistency before any
// hardware is touched: the block layout must tile the image exactly and
// every checksum rule must fit inside it.
func (m ModelDescriptor) Validate() error {
	if m.ImageLength <= 0 {
		return fmt.Errorf("model %q: invalid image length %d", m.Name, m.ImageLength)
	}
	if err := m.Blocks.Validate(m.ImageLength); err != nil {
		return fmt.Errorf("model %q: %w", m.Name, err)
	}
	for i, cs := range m.Checksums {
		if err := cs.Validate(m.ImageLength); err != nil {
			return fmt.Errorf("model %q: checksum %d: %w", m.Name, i, err)
		}
	}
	if m.WriteChunkSize < 0 {
		return fmt.Errorf("model %q: invalid write chunk size %d", m.Name, m.WriteChunkSize)
	}
	return nil
}

func (m ModelDescriptor) ack() protocol.AckExchange {
	return protocol.AckExchange{Ack: m.AckByte, EchoSuppression: m.EchoSuppression}
}

func (m ModelDescriptor) writeChunkSize() int {
	if m.WriteChunkSize > 0 {
		return m.WriteChunkSize
	}
	return protocol.DefaultWriteChunkSize
}
