// Package clone provides the high-level API for transferring a complete
// memory image to or from a clone-mode radio.
//
// # Overview
//
// A Session drives the whole exchange for one model descriptor:
//   - Download reads the image block by block, with a patient retry
//     budget for the identification block the radio only sends once a
//     physical button is pressed
//   - Verify checks every embedded checksum before the image is trusted
//   - Upload recomputes the checksums and writes the image back, pacing
//     the final block in small delayed chunks
//
// # Basic usage
//
//	port, err := serialport.Open("/dev/ttyUSB0", models.VX7.BaudRate, 2*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	sess := clone.NewSession(port, models.VX7)
//	if err := sess.Download(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := sess.Verify(); err != nil {
//	    log.Fatal(err) // image must not be trusted
//	}
//	img := sess.Image() // hand to the field-tree parser
//
// # Progress tracking
//
//	sess := clone.NewSession(port, models.VX7,
//	    clone.WithProgress(func(p clone.TransferProgress) {
//	        fmt.Printf("%s %d/%d\n", p.Phase, p.BytesDone, p.BytesTotal)
//	    }),
//	)
//
// The observer is invoked from the transfer goroutine at block (and, for
// the chunked final block, sub-chunk) granularity. It must return
// quickly; the engine does not wait for it, and a panicking observer is
// logged and swallowed, never propagated as a transfer failure.
//
// # Concurrency
//
// A Session is single-threaded and blocking by design: all serial I/O is
// a sequence of blocking reads and writes on one channel. Callers that
// need a responsive UI run the session on a worker goroutine and receive
// progress through the observer. The serial channel and the image are
// exclusively owned by the session during a transfer; to abort a
// long-running read, close the underlying channel - the engine treats
// that as a timeout.
//
// # Per-model behavior
//
// Everything model-specific - image length, block layout, ACK byte, echo
// suppression, checksum rules, chunk pacing - lives in a ModelDescriptor
// value. The engine itself is fully generic: sixty radio models are
// sixty descriptor values, not sixty subclasses, and each one's behavior
// is independently testable as pure data.
package clone
