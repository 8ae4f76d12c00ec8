package clone

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/kd7yxm/go-clonemode/image"
	"github.com/kd7yxm/go-clonemode/protocol"
)

func newTestSession(t *testing.T, radio interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}, model ModelDescriptor, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithRetryDelay(0),
		WithChunkDelay(0),
		WithFinalBlockIdleTimeout(25 * time.Millisecond),
	}
	sess, err := NewSession(radio, model, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return sess
}

func TestDownloadConcreteScenario(t *testing.T) {
	memory := testImageBytes(37)
	radio := newSimRadio(testModel(), memory)
	sess := newTestSession(t, radio, testModel())

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if sess.State() != StateDownloaded {
		t.Errorf("state = %v, want %v", sess.State(), StateDownloaded)
	}
	if err := sess.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if sess.State() != StateEditable {
		t.Errorf("state = %v, want %v", sess.State(), StateEditable)
	}
	if !bytes.Equal(sess.Image().Bytes(), memory) {
		t.Error("downloaded image differs from radio memory")
	}
}

func TestDownloadChecksumMismatch(t *testing.T) {
	// Embedded checksum byte is wrong: the correct value over [0, 98]
	// is 37.
	radio := newSimRadio(testModel(), testImageBytes(12))
	sess := newTestSession(t, radio, testModel())

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	err := sess.Verify()
	if err == nil {
		t.Fatal("Verify() succeeded with a bad embedded checksum")
	}

	var csErr *protocol.ChecksumError
	if !errors.As(err, &csErr) {
		t.Fatalf("Verify() error = %v, want *protocol.ChecksumError", err)
	}
	if csErr.Expected != 37 || csErr.Actual != 12 {
		t.Errorf("ChecksumError = expected 0x%02X actual 0x%02X, want 0x25/0x0C",
			csErr.Expected, csErr.Actual)
	}
	if sess.State() != StateDownloadFailed {
		t.Errorf("state = %v, want %v", sess.State(), StateDownloadFailed)
	}
}

func TestDownloadShortMiddleBlockIsFatal(t *testing.T) {
	model := testModel()
	model.Blocks = image.Blocks(10, 20, 70)

	// Block 1 delivers 19 of its declared 20 bytes, then silence.
	radio := &scriptedRadio{reads: [][]byte{
		make([]byte, 10),
		make([]byte, 19),
	}}
	sess := newTestSession(t, radio, model)

	err := sess.Download()
	if err == nil {
		t.Fatal("Download() succeeded on a short block")
	}
	var shortErr *protocol.ShortReadError
	if !errors.As(err, &shortErr) {
		t.Fatalf("Download() error = %v, want *protocol.ShortReadError", err)
	}
	if shortErr.Block != 1 || shortErr.Want != 20 || shortErr.Got != 19 {
		t.Errorf("ShortReadError = block %d got %d/%d, want block 1 got 19/20",
			shortErr.Block, shortErr.Got, shortErr.Want)
	}
	if sess.State() != StateDownloadFailed {
		t.Errorf("state = %v, want %v", sess.State(), StateDownloadFailed)
	}
}

func TestDownloadFirstBlockTimeout(t *testing.T) {
	radio := &scriptedRadio{} // permanently silent
	sess := newTestSession(t, radio, testModel(), WithFirstBlockAttempts(3))

	err := sess.Download()
	var toErr *protocol.TimeoutError
	if !errors.As(err, &toErr) {
		t.Fatalf("Download() error = %v, want *protocol.TimeoutError", err)
	}
	if sess.State() != StateDownloadFailed {
		t.Errorf("state = %v, want %v", sess.State(), StateDownloadFailed)
	}
}

func TestDownloadFirstBlockPatience(t *testing.T) {
	// The radio says nothing for several read attempts, then the user
	// presses the clone-send key.
	memory := testImageBytes(37)
	radio := &scriptedRadio{reads: [][]byte{
		nil, nil, nil, nil,
		memory[:10],
		memory[10:],
	}}
	sess := newTestSession(t, radio, testModel())

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Equal(sess.Image().Bytes(), memory) {
		t.Error("downloaded image differs from radio memory")
	}
}

func TestDownloadFinalBlockInactivity(t *testing.T) {
	// The final block dies after 40 of 90 bytes.
	radio := &scriptedRadio{reads: [][]byte{
		make([]byte, 10),
		make([]byte, 40),
	}}
	sess := newTestSession(t, radio, testModel())

	err := sess.Download()
	var incErr *protocol.IncompleteImageError
	if !errors.As(err, &incErr) {
		t.Fatalf("Download() error = %v, want *protocol.IncompleteImageError", err)
	}
	if incErr.Want != 100 || incErr.Got != 50 {
		t.Errorf("IncompleteImageError = %d/%d, want 50/100", incErr.Got, incErr.Want)
	}
}

func TestDownloadChewsEchoedAcks(t *testing.T) {
	model := testModel()
	model.EchoSuppression = true
	memory := testImageBytes(37)

	// A two-wire cable loops the host's acks back ahead of the data.
	radio := &scriptedRadio{reads: [][]byte{
		append([]byte{protocol.CmdAck}, memory[:10]...),
		append([]byte{protocol.CmdAck}, memory[10:]...),
	}}
	sess := newTestSession(t, radio, model)

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Equal(sess.Image().Bytes(), memory) {
		t.Error("downloaded image differs from radio memory")
	}
}

func TestDownloadSendsAckPerBlock(t *testing.T) {
	model := testModel()
	model.Blocks = image.Blocks(10, 20, 70)
	radio := &scriptedRadio{reads: [][]byte{
		make([]byte, 10),
		make([]byte, 20),
		make([]byte, 70),
	}}
	sess := newTestSession(t, radio, model)

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	// One ack per block except the last.
	want := []byte{protocol.CmdAck, protocol.CmdAck}
	if !bytes.Equal(radio.writes.Bytes(), want) {
		t.Errorf("host wrote % X, want % X", radio.writes.Bytes(), want)
	}
}

func TestUploadDeliversImage(t *testing.T) {
	model := testModel()
	radio := newSimRadio(model, nil)
	sess := newTestSession(t, radio, model)

	img := image.FromBytes(testImageBytes(0))
	if err := sess.LoadImage(img); err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if err := sess.UpdateChecksums(); err != nil {
		t.Fatalf("UpdateChecksums() error: %v", err)
	}
	if err := sess.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if err := sess.Upload(); err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if sess.State() != StateUploadSucceeded {
		t.Errorf("state = %v, want %v", sess.State(), StateUploadSucceeded)
	}

	want := testImageBytes(37) // Upload recomputes the embedded checksum
	if !bytes.Equal(radio.received.Bytes(), want) {
		t.Error("radio received image differs from session image")
	}
}

func TestUploadAbortsOnNak(t *testing.T) {
	model := testModel()
	radio := newSimRadio(model, nil)
	radio.nakAfterBlock = 0
	sess := newTestSession(t, radio, model)

	img := image.FromBytes(testImageBytes(37))
	if err := sess.LoadImage(img); err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if err := sess.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	err := sess.Upload()
	if err == nil {
		t.Fatal("Upload() succeeded against a NAKing radio")
	}
	var ackErr *protocol.AckError
	if !errors.As(err, &ackErr) {
		t.Fatalf("Upload() error = %v, want *protocol.AckError", err)
	}
	if ackErr.Block != 0 || ackErr.Observed != protocol.CmdNak {
		t.Errorf("AckError = block %d observed 0x%02X, want block 0 observed 0x15",
			ackErr.Block, ackErr.Observed)
	}
	if sess.State() != StateUploadFailed {
		t.Errorf("state = %v, want %v", sess.State(), StateUploadFailed)
	}
	// Block 1 must never have been attempted.
	if got := radio.received.Len(); got != 10 {
		t.Errorf("radio received %d bytes after NAK, want 10 (block 0 only)", got)
	}
}

func TestUploadAckTimeout(t *testing.T) {
	radio := &scriptedRadio{} // never acknowledges
	sess := newTestSession(t, radio, testModel())

	img := image.FromBytes(testImageBytes(37))
	if err := sess.LoadImage(img); err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if err := sess.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	err := sess.Upload()
	var ackErr *protocol.AckError
	if !errors.As(err, &ackErr) {
		t.Fatalf("Upload() error = %v, want *protocol.AckError", err)
	}
	if !ackErr.TimedOut || ackErr.Block != 0 {
		t.Errorf("AckError = %+v, want timed out on block 0", ackErr)
	}
}

func TestProgressReporting(t *testing.T) {
	memory := testImageBytes(37)
	radio := newSimRadio(testModel(), memory)

	var reports []TransferProgress
	sess := newTestSession(t, radio, testModel(),
		WithProgress(func(p TransferProgress) { reports = append(reports, p) }),
	)

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if len(reports) == 0 {
		t.Fatal("no progress reports delivered")
	}
	last := reports[len(reports)-1]
	if last.BytesDone != 100 || last.BytesTotal != 100 {
		t.Errorf("final report = %d/%d, want 100/100", last.BytesDone, last.BytesTotal)
	}
	prev := 0
	for i, p := range reports {
		if p.Phase != PhaseDownloading {
			t.Errorf("report %d phase = %v, want %v", i, p.Phase, PhaseDownloading)
		}
		if p.BytesDone < prev {
			t.Errorf("report %d went backwards: %d after %d", i, p.BytesDone, prev)
		}
		prev = p.BytesDone
	}
}

func TestPanickingObserverDoesNotFailTransfer(t *testing.T) {
	radio := newSimRadio(testModel(), testImageBytes(37))
	sess := newTestSession(t, radio, testModel(),
		WithProgress(func(TransferProgress) { panic("observer bug") }),
	)

	if err := sess.Download(); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
}
