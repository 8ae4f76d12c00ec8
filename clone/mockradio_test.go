package clone

import (
	"bytes"

	"github.com/kd7yxm/go-clonemode/image"
	"github.com/kd7yxm/go-clonemode/protocol"
)

// scriptedRadio serves a fixed sequence of read chunks and records
// everything written to it. A nil chunk is one silent timeout tick; an
// exhausted script reads as permanently silent. Each Read returns at
// most the remainder of the current chunk, like a serial port draining
// its receive buffer.
type scriptedRadio struct {
	reads  [][]byte
	writes bytes.Buffer
}

func (r *scriptedRadio) Read(p []byte) (int, error) {
	if len(r.reads) == 0 {
		return 0, nil
	}
	chunk := r.reads[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		r.reads[0] = chunk[n:]
	} else {
		r.reads = r.reads[1:]
	}
	return n, nil
}

func (r *scriptedRadio) Write(p []byte) (int, error) {
	return r.writes.Write(p)
}

// simRadio is a protocol-correct clone-mode radio simulator. In the
// download direction it streams its memory and swallows the host's
// acks; in the upload direction it stores received blocks and
// acknowledges every block except the last, exactly as real hardware
// does.
type simRadio struct {
	model        ModelDescriptor
	memory       []byte
	readPos      int
	received     bytes.Buffer
	ackQueue     []byte
	ackedThrough int

	// nakAfterBlock, when >= 0, makes the simulator answer that block
	// with NAK instead of the ack byte
	nakAfterBlock int
}

func newSimRadio(model ModelDescriptor, memory []byte) *simRadio {
	return &simRadio{model: model, memory: memory, nakAfterBlock: -1}
}

func (r *simRadio) Read(p []byte) (int, error) {
	if len(r.ackQueue) > 0 {
		p[0] = r.ackQueue[0]
		r.ackQueue = r.ackQueue[1:]
		return 1, nil
	}
	if r.memory == nil || r.readPos >= len(r.memory) {
		return 0, nil
	}
	n := copy(p, r.memory[r.readPos:])
	r.readPos += n
	return n, nil
}

func (r *simRadio) Write(p []byte) (int, error) {
	if r.memory != nil {
		// Download direction: the host is acking; nothing to store.
		return len(p), nil
	}
	r.received.Write(p)
	r.queueAcks()
	return len(p), nil
}

// queueAcks acknowledges every block boundary the received byte count
// has newly crossed, except the final block's.
func (r *simRadio) queueAcks() {
	blocks := r.model.Blocks
	got := r.received.Len()
	for r.ackedThrough < len(blocks)-1 {
		blk := blocks[r.ackedThrough]
		if got < blk.Offset+blk.Length {
			break
		}
		if r.ackedThrough == r.nakAfterBlock {
			r.ackQueue = append(r.ackQueue, protocol.CmdNak)
		} else {
			r.ackQueue = append(r.ackQueue, r.model.AckByte)
		}
		r.ackedThrough++
	}
}

// testModel is the concrete scenario model: 100-byte image in a 10-byte
// header block and a 90-byte final block, standard ack, one straight-sum
// checksum over [0, 98] stored at byte 99.
func testModel() ModelDescriptor {
	return ModelDescriptor{
		Name:        "Testcorp T-100",
		ImageLength: 100,
		Blocks:      image.Blocks(10, 90),
		AckByte:     protocol.CmdAck,
		Checksums: []protocol.ChecksumRule{
			protocol.Checksum(0, 98),
		},
		BaudRate:       9600,
		WriteChunkSize: 8,
	}
}

// testImageBytes builds the scenario image: byte 0 holds 37, bytes 1-98
// are zero, and the embedded checksum at byte 99 is stored.
func testImageBytes(stored byte) []byte {
	data := make([]byte, 100)
	data[0] = 37
	data[99] = stored
	return data
}
