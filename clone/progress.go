package clone

// Phase identifies the direction of the transfer a progress report
// belongs to.
type Phase int

const (
	// PhaseDownloading means the image is being read from the radio
	PhaseDownloading Phase = iota

	// PhaseUploading means the image is being written to the radio
	PhaseUploading
)

func (p Phase) String() string {
	switch p {
	case PhaseDownloading:
		return "downloading"
	case PhaseUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

// TransferProgress is a point-in-time snapshot pushed to the progress
// observer. It carries no state between calls; a fresh value is built
// for every report.
type TransferProgress struct {
	// BytesDone is the number of image bytes transferred so far
	BytesDone int

	// BytesTotal is the declared image length
	BytesTotal int

	// Phase is the transfer direction
	Phase Phase
}

// ProgressFunc receives progress reports from the transfer goroutine.
// Implementations must return quickly: the engine does not wait for the
// observer, and a panicking observer is logged and swallowed rather than
// failing the transfer.
type ProgressFunc func(TransferProgress)
