package clone

import (
	"fmt"
	"io"

	"github.com/kd7yxm/go-clonemode/image"
)

// State is the position of a Session in its transfer lifecycle.
type State int

const (
	// StateIdle means no transfer has been attempted yet
	StateIdle State = iota

	// StateDownloading means a download is in progress
	StateDownloading

	// StateDownloaded means a complete image was received but not yet
	// verified
	StateDownloaded

	// StateDownloadFailed means the download or its verification
	// failed; the attempt is over and only a fresh Download can follow
	StateDownloadFailed

	// StateEditable means every checksum passed and the image may be
	// edited and uploaded
	StateEditable

	// StateUploading means an upload is in progress
	StateUploading

	// StateUploadSucceeded means the image was written back in full
	StateUploadSucceeded

	// StateUploadFailed means the upload aborted partway
	StateUploadFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDownloading:
		return "downloading"
	case StateDownloaded:
		return "downloaded"
	case StateDownloadFailed:
		return "download-failed"
	case StateEditable:
		return "editable"
	case StateUploading:
		return "uploading"
	case StateUploadSucceeded:
		return "upload-succeeded"
	case StateUploadFailed:
		return "upload-failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the top-level clone state machine for one radio model. It
// owns the image for the duration of a transfer, holds the model's block
// layout and checksum rules, and borrows (never owns) the serial
// channel, whose lifetime must outlast the session.
//
// A Session is single-threaded: Download, Verify, and Upload block the
// calling goroutine until done. Run the session on a worker goroutine if
// a UI must stay responsive, and receive progress via WithProgress.
type Session struct {
	model   ModelDescriptor
	channel io.ReadWriter
	cfg     Config
	img     *image.Image
	state   State
}

// NewSession creates a Session for the given channel and model. The
// channel must be open, configured for the model's baud-rate class, and
// must implement the serial timeout contract described in package
// protocol. The descriptor is validated before any hardware is touched.
func NewSession(channel io.ReadWriter, model ModelDescriptor, opts ...Option) (*Session, error) {
	if channel == nil {
		panic("clone: channel cannot be nil")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		model:   model,
		channel: channel,
		cfg:     cfg,
		state:   StateIdle,
	}, nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Model returns the session's model descriptor.
func (s *Session) Model() ModelDescriptor {
	return s.model
}

// Image returns the session's image, or nil before the first download or
// load. The image is single-owner: during Download and Upload it belongs
// to the session; between transfers it belongs to exactly one consumer
// (the field-tree parser), whose edits must be complete before Upload.
func (s *Session) Image() *image.Image {
	return s.img
}

// Download performs a full clone-in. A fresh image is allocated every
// time: a failed download leaves its partial image visible via Image,
// but no bytes from a failed attempt are ever reused. On success the
// session moves to StateDownloaded; call Verify before trusting or
// parsing the image.
func (s *Session) Download() error {
	switch s.state {
	case StateDownloading, StateUploading:
		return &StateError{Op: "download", State: s.state}
	}

	s.state = StateDownloading
	s.img = image.New(s.model.ImageLength)

	eng := newEngine(s.channel, s.model, s.cfg)
	if err := eng.download(s.img); err != nil {
		s.state = StateDownloadFailed
		return fmt.Errorf("download from %s: %w", s.model.Name, err)
	}

	s.state = StateDownloaded
	return nil
}

// LoadImage installs an externally obtained image (typically read from a
// saved image file) as if it had just been downloaded. The image must
// match the model's declared length; Verify must still pass before the
// session will upload it.
func (s *Session) LoadImage(img *image.Image) error {
	switch s.state {
	case StateDownloading, StateUploading:
		return &StateError{Op: "load image", State: s.state}
	}
	if img.Len() != s.model.ImageLength {
		return fmt.Errorf("image is %d bytes, model %s declares %d",
			img.Len(), s.model.Name, s.model.ImageLength)
	}
	s.img = img
	s.state = StateDownloaded
	return nil
}

// Verify runs every checksum rule against the image. All rules passing
// moves the session to StateEditable; any failure is fatal for the
// attempt and routes to StateDownloadFailed - the caller must retry the
// whole download, never resume a partial one.
func (s *Session) Verify() error {
	if s.state != StateDownloaded && s.state != StateEditable {
		return &StateError{Op: "verify", State: s.state}
	}
	for _, rule := range s.model.Checksums {
		if err := rule.Verify(s.img); err != nil {
			s.state = StateDownloadFailed
			return fmt.Errorf("verify %s image: %w", s.model.Name, err)
		}
		s.logDebug("checksum ok", "range", rule.String())
	}
	s.state = StateEditable
	return nil
}

// UpdateChecksums recomputes every embedded checksum from the current
// image contents. Upload always does this itself; the method is exposed
// for callers that persist the image to a file after editing.
func (s *Session) UpdateChecksums() error {
	if s.img == nil {
		return &StateError{Op: "update checksums", State: s.state}
	}
	for _, rule := range s.model.Checksums {
		rule.Apply(s.img)
	}
	return nil
}

// Upload performs a full clone-out. The session must have passed Verify
// (StateEditable), or be retrying after a finished upload attempt.
// Checksums are always recomputed first - there is no path that uploads
// stale checksum bytes, because the radio's own verification would
// reject the image.
func (s *Session) Upload() error {
	switch s.state {
	case StateEditable, StateUploadSucceeded, StateUploadFailed:
	default:
		return &StateError{Op: "upload", State: s.state}
	}

	if err := s.UpdateChecksums(); err != nil {
		return err
	}

	s.state = StateUploading
	eng := newEngine(s.channel, s.model, s.cfg)
	if err := eng.upload(s.img); err != nil {
		s.state = StateUploadFailed
		return fmt.Errorf("upload to %s: %w", s.model.Name, err)
	}

	s.state = StateUploadSucceeded
	return nil
}

func (s *Session) logDebug(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, args...)
	}
}
