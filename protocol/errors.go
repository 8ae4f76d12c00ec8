package protocol

import "fmt"

// TimeoutError indicates that no data at all arrived within the allotted
// window. During a download this usually means the radio is not in clone
// mode yet (or the user has not pressed the send button), which is
// recoverable by retrying the whole session - unlike a ShortReadError,
// which means a transfer died partway through.
type TimeoutError struct {
	// Op names what the host was waiting for, e.g. "identification block"
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s: no data from radio", e.Op)
}

// ShortReadError indicates the radio stopped responding mid-block. A
// partial block is never valid, so this is fatal and non-resumable: the
// caller must restart the whole transfer.
type ShortReadError struct {
	// Block is the index of the block that came up short
	Block int

	// Want is the declared block length in bytes
	Want int

	// Got is the number of bytes actually received
	Got int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short read on block %d: got %d of %d bytes", e.Block, e.Got, e.Want)
}

// IncompleteImageError indicates the transfer ended with fewer bytes than
// the model's declared image length. The image must never be trusted,
// truncated, or padded.
type IncompleteImageError struct {
	// Want is the declared image length
	Want int

	// Got is the number of bytes actually received
	Got int
}

func (e *IncompleteImageError) Error() string {
	return fmt.Sprintf("received incomplete image: got %d of %d bytes", e.Got, e.Want)
}

// AckError indicates the radio rejected or never acknowledged a block
// during upload, or sent an unexpected byte where an acknowledgement was
// due. This is fatal: re-sending a block after the radio has advanced its
// write pointer would corrupt the device's memory.
type AckError struct {
	// Block is the index of the unacknowledged block
	Block int

	// Observed is the byte received instead of the acknowledgement;
	// meaningless when TimedOut is set
	Observed byte

	// TimedOut is true when no byte arrived at all
	TimedOut bool
}

func (e *AckError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("radio did not ack block %d: no response", e.Block)
	}
	return fmt.Sprintf("radio did not ack block %d: got 0x%02X", e.Block, e.Observed)
}

// EchoMismatchError indicates that bytes read back after writing do not
// match what was sent. On a two-wire cable everything the host transmits
// is looped back verbatim; a mismatch means a wiring or framing problem.
type EchoMismatchError struct {
	// Offset is the image offset of the first mismatching byte
	Offset int

	// Want is the byte that was written
	Want byte

	// Got is the byte that came back
	Got byte
}

func (e *EchoMismatchError) Error() string {
	return fmt.Sprintf("echo mismatch at offset %d: wrote 0x%02X, read back 0x%02X (check cabling)",
		e.Offset, e.Want, e.Got)
}

// ChecksumError indicates a post-download verification failure. The image
// must not be trusted or parsed further.
type ChecksumError struct {
	// Start and Stop delimit the summed range (inclusive)
	Start, Stop int

	// StoreAt is the offset of the embedded checksum byte
	StoreAt int

	// Expected is the computed checksum
	Expected byte

	// Actual is the byte found at StoreAt
	Actual byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum failed for %04X-%04X (@%04X): expected 0x%02X, got 0x%02X",
		e.Start, e.Stop, e.StoreAt, e.Expected, e.Actual)
}
