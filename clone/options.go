package clone

import (
	"log/slog"
	"time"

	"github.com/kd7yxm/go-clonemode/protocol"
)

// Config holds the session configuration.
type Config struct {
	// Progress receives transfer progress reports (optional)
	Progress ProgressFunc

	// Logger receives structured transfer logs (optional)
	Logger *slog.Logger

	// FirstBlockAttempts is the read retry budget for the first block
	// of a download, which only starts arriving after the user presses
	// the clone-send button on the radio
	FirstBlockAttempts int

	// RetryDelay is the pause between empty first-block read attempts
	RetryDelay time.Duration

	// ChunkDelay is the pause after each sub-chunk of the final upload
	// block, giving the radio time to commit to flash
	ChunkDelay time.Duration

	// FinalBlockIdle is the inactivity window for the final download
	// block: the read fails once this long passes without a byte
	FinalBlockIdle time.Duration
}

func defaultConfig() Config {
	return Config{
		FirstBlockAttempts: protocol.DefaultFirstBlockAttempts,
		RetryDelay:         100 * time.Millisecond,
		ChunkDelay:         30 * time.Millisecond,
		FinalBlockIdle:     2 * time.Second,
	}
}

// Option is a functional option for configuring a Session.
type Option func(*Config)

// WithProgress sets a callback to track transfer progress.
//
// Example:
//
//	sess := clone.NewSession(port, model,
//	    clone.WithProgress(func(p clone.TransferProgress) {
//	        fmt.Printf("%d/%d\n", p.BytesDone, p.BytesTotal)
//	    }),
//	)
func WithProgress(fn ProgressFunc) Option {
	return func(c *Config) {
		c.Progress = fn
	}
}

// WithLogger sets a structured logger for transfer operations.
//
// Example:
//
//	sess := clone.NewSession(port, model, clone.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithFirstBlockAttempts sets the read retry budget for the first block
// of a download.
func WithFirstBlockAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.FirstBlockAttempts = attempts
		}
	}
}

// WithRetryDelay sets the pause between empty first-block read attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RetryDelay = d
		}
	}
}

// WithChunkDelay sets the pause after each sub-chunk of the final upload
// block. Lowering this below a radio's flash-write latency corrupts
// uploads on real hardware.
func WithChunkDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ChunkDelay = d
		}
	}
}

// WithFinalBlockIdleTimeout sets the inactivity window for the final
// download block.
func WithFinalBlockIdleTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.FinalBlockIdle = d
		}
	}
}
