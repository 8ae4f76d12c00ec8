package protocol

import "io"

// AckExchange mediates the one-byte acknowledgement exchanged at block
// boundaries, and absorbs the echo bytes that two-wire cables loop back
// into the receive buffer.
//
// The serial channel is expected to behave like a configured serial port:
// Read blocks for at most the port's read timeout and returns whatever
// arrived, returning zero bytes when nothing did. A zero-byte read is
// therefore one timeout tick, not end-of-stream.
//
// AckExchange never retries a failed acknowledgement. The permissible
// number of retries depends on the block position, so retry policy
// belongs to the transfer engine.
type AckExchange struct {
	// Ack is the model's acknowledgement byte value
	Ack byte

	// EchoSuppression is set for cable/radio combinations that loop
	// transmitted bytes back to the host
	EchoSuppression bool
}

// Send writes the single acknowledgement byte. Exactly one byte, no
// retry: the host-to-radio direction is assumed reliable.
func (a AckExchange) Send(w io.Writer) error {
	_, err := w.Write([]byte{a.Ack})
	return err
}

// Consume reads the acknowledgement the radio owes for the given block.
//
// With echo suppression the first byte observed may be the tail of the
// host's own echoed transmission rather than the acknowledgement; in that
// case up to echoLen+1 further bytes are drained and the comparison is
// retried against the last byte received, once. Timeout or a byte that
// still does not match yields an *AckError carrying what was observed.
func (a AckExchange) Consume(r io.Reader, block, echoLen int) error {
	b, ok := readByte(r)
	if !ok {
		return &AckError{Block: block, TimedOut: true}
	}
	if b == a.Ack && !a.EchoSuppression {
		return nil
	}
	if !a.EchoSuppression {
		return &AckError{Block: block, Observed: b}
	}

	// Two-wire cable: the echoed block arrives first, then the real ack.
	// If the first byte already is the ack value it may still be an
	// echo (the previous ack we sent), so drain the rest and judge by
	// the last byte seen.
	if b == a.Ack && echoLen == 0 {
		return nil
	}
	buf := make([]byte, echoLen+1)
	n := readAvailable(r, buf)
	if n == 0 {
		if b == a.Ack {
			return nil
		}
		return &AckError{Block: block, Observed: b}
	}
	if buf[n-1] == a.Ack {
		return nil
	}
	return &AckError{Block: block, Observed: buf[n-1]}
}

// TrimEchoedAck drops a leading echoed acknowledgement byte from buf, if
// the exchange suppresses echo and one is present. Used on the first
// bytes of each downloaded block, where the previously sent ack may have
// been looped back ahead of the data.
func (a AckExchange) TrimEchoedAck(buf []byte) []byte {
	if a.EchoSuppression && len(buf) > 0 && buf[0] == a.Ack {
		return buf[1:]
	}
	return buf
}

// VerifyEcho drains the looped-back copy of sent and compares it byte for
// byte. Absent echo (the reader going quiet) is tolerated - not every
// cable loops every byte - but any byte that does come back and differs
// is an *EchoMismatchError. offset is the image offset of sent[0], used
// only for error reporting. Without echo suppression this is a no-op.
func (a AckExchange) VerifyEcho(r io.Reader, sent []byte, offset int) error {
	if !a.EchoSuppression {
		return nil
	}
	buf := make([]byte, len(sent))
	n := readAvailable(r, buf)
	for i := 0; i < n; i++ {
		if buf[i] != sent[i] {
			return &EchoMismatchError{Offset: offset + i, Want: sent[i], Got: buf[i]}
		}
	}
	return nil
}

// readByte performs a single timeout-bounded read of one byte. The
// second return is false on a timeout tick or channel error.
func readByte(r io.Reader) (byte, bool) {
	var buf [1]byte
	n, _ := r.Read(buf[:])
	if n == 0 {
		return 0, false
	}
	return buf[0], true
}

// readAvailable fills buf until a read returns no data (one timeout tick)
// or the channel errors out, and reports how many bytes arrived.
func readAvailable(r io.Reader, buf []byte) int {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if n == 0 || err != nil {
			break
		}
	}
	return total
}
