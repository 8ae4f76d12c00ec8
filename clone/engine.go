package clone

import (
	"fmt"
	"io"
	"time"

	"github.com/kd7yxm/go-clonemode/image"
	"github.com/kd7yxm/go-clonemode/protocol"
)

// engine performs one full directional transfer as the ordered sequence
// of blocks declared by the model descriptor. Blocks are transferred
// strictly in order, bytes in increasing offset order; nothing is
// skipped, reordered, or speculatively transferred.
type engine struct {
	channel io.ReadWriter
	model   ModelDescriptor
	cfg     Config
	ack     protocol.AckExchange
}

func newEngine(channel io.ReadWriter, model ModelDescriptor, cfg Config) *engine {
	return &engine{
		channel: channel,
		model:   model,
		cfg:     cfg,
		ack:     model.ack(),
	}
}

// download fills img block by block. The first block gets a large retry
// budget (the radio only starts sending once the user presses a button),
// middle blocks get a single bounded read followed by an acknowledgement,
// and the final block is accumulated in short reads bounded by an
// inactivity window.
func (e *engine) download(img *image.Image) error {
	start := time.Now()
	blocks := e.model.Blocks
	total := 0

	for bi, blk := range blocks {
		dest := img.Slice(blk.Offset, blk.Offset+blk.Length)
		last := bi == len(blocks)-1

		var err error
		switch {
		case last:
			err = e.readFinalBlock(dest, blk.Offset)
		case bi == 0:
			err = e.readFirstBlock(dest)
		default:
			err = e.readBlock(bi, dest)
		}
		if err != nil {
			return err
		}

		if !last {
			if err := e.ack.Send(e.channel); err != nil {
				return fmt.Errorf("send ack for block %d: %w", bi, err)
			}
		}

		total += blk.Length
		e.logDebug("block received", "block", bi, "bytes", blk.Length)
		e.report(TransferProgress{BytesDone: total, BytesTotal: e.model.ImageLength, Phase: PhaseDownloading})
	}

	// Never trust a byte count that disagrees with the descriptor.
	if total != e.model.ImageLength {
		return &protocol.IncompleteImageError{Want: e.model.ImageLength, Got: total}
	}

	e.logInfo("download complete", "bytes", total, "elapsed", time.Since(start).String())
	return nil
}

// upload writes img block by block. Every block except the last must be
// acknowledged before the next is sent; a missing or wrong ack is fatal
// with no retry, because re-sending a block after the radio has advanced
// its write pointer would corrupt the device's memory. The final block
// is paced in small delayed sub-chunks with no per-chunk ack.
func (e *engine) upload(img *image.Image) error {
	start := time.Now()
	blocks := e.model.Blocks
	total := 0

	for bi, blk := range blocks {
		data := img.Slice(blk.Offset, blk.Offset+blk.Length)

		if bi == len(blocks)-1 {
			if err := e.writeFinalBlock(data, blk.Offset); err != nil {
				return err
			}
			total += blk.Length
			break
		}

		if _, err := e.channel.Write(data); err != nil {
			return fmt.Errorf("write block %d: %w", bi, err)
		}
		if err := e.ack.Consume(e.channel, bi, blk.Length); err != nil {
			e.logError("block not acknowledged", "block", bi, "err", err)
			return err
		}

		total += blk.Length
		e.logDebug("block sent", "block", bi, "bytes", blk.Length)
		e.report(TransferProgress{BytesDone: total, BytesTotal: e.model.ImageLength, Phase: PhaseUploading})
	}

	e.logInfo("upload complete", "bytes", total, "elapsed", time.Since(start).String())
	return nil
}

// readFirstBlock reads the identification block with a patient retry
// budget, sleeping between empty attempts. Zero bytes after the whole
// budget means the radio never entered clone mode; a partial block means
// the transfer died and is not resumable.
func (e *engine) readFirstBlock(dest []byte) error {
	n := 0
	first := true
	for attempt := 0; attempt < e.cfg.FirstBlockAttempts && n < len(dest); attempt++ {
		r, err := e.channel.Read(dest[n:])
		if r > 0 {
			n = e.trimFirst(dest, n+r, &first)
			continue
		}
		if err != nil {
			break
		}
		if e.cfg.RetryDelay > 0 {
			time.Sleep(e.cfg.RetryDelay)
		}
	}
	if n == 0 {
		return &protocol.TimeoutError{Op: "identification block"}
	}
	if n < len(dest) {
		return &protocol.ShortReadError{Block: 0, Want: len(dest), Got: n}
	}
	return nil
}

// readBlock performs a single bounded read of a middle block: reads
// accumulate until the block is complete or the channel goes quiet for
// one timeout tick. There is no byte-level retry within a block; partial
// blocks are never valid.
func (e *engine) readBlock(bi int, dest []byte) error {
	n := 0
	first := true
	for n < len(dest) {
		r, err := e.channel.Read(dest[n:])
		if r > 0 {
			n = e.trimFirst(dest, n+r, &first)
		}
		if r == 0 || err != nil {
			break
		}
	}
	if n == 0 {
		return &protocol.TimeoutError{Op: fmt.Sprintf("block %d", bi)}
	}
	if n < len(dest) {
		return &protocol.ShortReadError{Block: bi, Want: len(dest), Got: n}
	}
	return nil
}

// readFinalBlock accumulates the last block in ReadChunkSize reads. The
// read has no overall deadline, only an inactivity window: as long as
// bytes keep arriving the radio is still talking. Progress is reported
// per chunk. offset is the block's position in the image, used for
// progress and error reporting.
func (e *engine) readFinalBlock(dest []byte, offset int) error {
	n := 0
	first := true
	lastData := time.Now()
	for n < len(dest) {
		limit := n + protocol.ReadChunkSize
		if limit > len(dest) {
			limit = len(dest)
		}
		r, err := e.channel.Read(dest[n:limit])
		if r > 0 {
			lastData = time.Now()
			n = e.trimFirst(dest, n+r, &first)
			e.report(TransferProgress{BytesDone: offset + n, BytesTotal: e.model.ImageLength, Phase: PhaseDownloading})
		}
		if err != nil {
			// A closed or failed channel is indistinguishable from the
			// radio going quiet; surface it the same way.
			return &protocol.TimeoutError{Op: "final block"}
		}
		if time.Since(lastData) > e.cfg.FinalBlockIdle {
			if n == 0 {
				return &protocol.TimeoutError{Op: "final block"}
			}
			return &protocol.IncompleteImageError{Want: e.model.ImageLength, Got: offset + n}
		}
	}
	return nil
}

// writeFinalBlock paces the last block out in small sub-chunks with an
// inter-chunk delay. No ack is expected per chunk; afterwards the echoed
// copy (on two-wire cables) is drained and checked against what was sent.
func (e *engine) writeFinalBlock(data []byte, offset int) error {
	chunk := e.model.writeChunkSize()
	for i := 0; i < len(data); i += chunk {
		end := i + chunk
		if end > len(data) {
			end = len(data)
		}
		if _, err := e.channel.Write(data[i:end]); err != nil {
			return fmt.Errorf("write final block at offset %d: %w", offset+i, err)
		}
		if e.cfg.ChunkDelay > 0 {
			time.Sleep(e.cfg.ChunkDelay)
		}
		e.report(TransferProgress{BytesDone: offset + end, BytesTotal: e.model.ImageLength, Phase: PhaseUploading})
	}
	return e.ack.VerifyEcho(e.channel, data, offset)
}

// trimFirst applies the echoed-ack chew to the first bytes of a block
// and returns the corrected byte count. The acknowledgement sent for the
// previous block may be looped back ahead of this block's data on
// two-wire cables.
func (e *engine) trimFirst(dest []byte, n int, first *bool) int {
	if !*first {
		return n
	}
	*first = false
	if t := e.ack.TrimEchoedAck(dest[:n]); len(t) < n {
		copy(dest, dest[1:n])
		return n - 1
	}
	return n
}

// report pushes a progress snapshot to the observer, if any. The engine
// never waits on the observer and never lets it fail a transfer.
func (e *engine) report(p TransferProgress) {
	if e.cfg.Progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logError("progress observer panicked", "panic", r)
		}
	}()
	e.cfg.Progress(p)
}

func (e *engine) logDebug(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Debug(msg, args...)
	}
}

func (e *engine) logInfo(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Info(msg, args...)
	}
}

func (e *engine) logError(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Error(msg, args...)
	}
}
