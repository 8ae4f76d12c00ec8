// Package protocol implements the wire-level pieces of the clone-mode
// serial protocol: the one-byte acknowledgement exchange and the
// range-based image checksums.
//
// # Protocol overview
//
// A clone-mode radio streams (or accepts) its entire memory image over a
// half-duplex serial link as a sequence of raw blocks. There is no frame
// structure: the only out-of-band bytes are a single acknowledgement byte
// exchanged at block boundaries, and - on some cable/radio combinations -
// echoes of whatever the host itself transmitted.
//
//	Download:  [block 0] <- radio, ACK -> radio, [block 1] <- radio, ...
//	Upload:    [block 0] -> radio, ACK <- radio, [block 1] -> radio, ...
//
// # Acknowledgements
//
// AckExchange encapsulates the model's ACK byte value and the
// echo-suppression behavior of two-wire cables, which loop transmitted
// bytes back into the receive buffer:
//
//	ack := protocol.AckExchange{Ack: protocol.CmdAck, EchoSuppression: true}
//	err := ack.Consume(channel, blockIndex, blockLen)
//
// A failed acknowledgement is reported, never retried here: the retry
// budget depends on the block position and belongs to the transfer engine.
//
// # Checksums
//
// ChecksumRule computes and validates one checksum embedded at a fixed
// offset inside the image:
//
//	rule := protocol.Checksum(0x0000, 0x3F51) // stored at 0x3F52
//	if err := rule.Verify(img); err != nil { ... }
//	rule.Apply(img) // before upload
//
// Three arithmetic variants exist in deployed firmware; see Algorithm.
// The overflow-adjusted variant reproduces a firmware quirk bit-for-bit
// and must not be "cleaned up": images generated with a corrected sum are
// silently rejected by real hardware.
//
// # Errors
//
// Every protocol failure is a distinct, inspectable type (TimeoutError,
// ShortReadError, IncompleteImageError, AckError, EchoMismatchError,
// ChecksumError) so callers can pattern-match with errors.As and decide
// user-facing messaging without string-sniffing. Proceeding past any of
// them risks garbage data or, on upload, corrupting a physical device.
package protocol
