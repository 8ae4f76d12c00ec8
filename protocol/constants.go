package protocol

// Acknowledgement byte values seen in deployed clone-mode firmware.
//
// CmdAck is the de-facto standard, but several real models deviate from
// it, so the value is always carried in the model descriptor rather than
// read from these constants directly.
const (
	// CmdAck is the conventional acknowledgement byte (0x06, ASCII ACK)
	CmdAck = 0x06

	// CmdNak is the negative acknowledgement some radios send when they
	// reject a block (0x15, ASCII NAK)
	CmdNak = 0x15
)

// ReadChunkSize is the read granularity for the inactivity-bounded final
// block of a download. The final block has no per-block acknowledgement,
// so it is accumulated in short reads until the declared length is
// reached or the radio goes quiet.
const ReadChunkSize = 32

// DefaultWriteChunkSize is the sub-chunk size for the final block of an
// upload. Most radios need writes throttled to small chunks with an
// inter-chunk gap to keep pace with internal flash-write latency.
const DefaultWriteChunkSize = 8

// DefaultFirstBlockAttempts is how many read attempts the first block of
// a download is given. The first block only starts arriving once the
// user presses the clone-send button on the radio, which can happen many
// seconds after the host starts listening.
const DefaultFirstBlockAttempts = 60
