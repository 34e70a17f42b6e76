package qr

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/careerkey/portal/internal/logging"
)

// ErrNoFrame is returned by a FrameSource when no new frame is available
// yet; the scanner skips the tick and keeps the session alive.
var ErrNoFrame = errors.New("no frame available")

// FrameSource is a cancellable subscription to successive capture frames —
// the camera analog. Next blocks at most until the context is done. Close
// releases the underlying resource and must be idempotent.
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

const (
	defaultFrameRate  = 10
	defaultWindowSize = 250
)

// Options bound the scan session.
type Options struct {
	// FrameRate caps how many frames per second are examined. Default 10.
	FrameRate int
	// Window is the fixed detection window, centered on the frame and
	// clamped to its bounds. Default 250x250.
	Window image.Point
}

func (o Options) withDefaults() Options {
	if o.FrameRate <= 0 {
		o.FrameRate = defaultFrameRate
	}
	if o.Window.X <= 0 || o.Window.Y <= 0 {
		o.Window = image.Pt(defaultWindowSize, defaultWindowSize)
	}
	return o
}

// Scanner drives a scan session over a FrameSource. The first successful
// decode wins: the session stops accepting frames and the payload is
// delivered on Payloads. Stop is unconditional and idempotent, and both the
// first-decode path and teardown go through it, so the source is released
// exactly once no matter how the session ends.
type Scanner struct {
	src  FrameSource
	opts Options
	log  logging.Logger

	payloads chan string
	done     chan struct{}
	stopOnce sync.Once

	mu  sync.Mutex
	err error
}

func NewScanner(src FrameSource, opts Options, log logging.Logger) *Scanner {
	return &Scanner{
		src:      src,
		opts:     opts.withDefaults(),
		log:      log,
		payloads: make(chan string, 1),
		done:     make(chan struct{}),
	}
}

// Payloads delivers at most one decoded payload, then the channel closes.
func (s *Scanner) Payloads() <-chan string {
	return s.payloads
}

// Err reports the frame-source failure that ended the session, if any.
// Valid once Payloads is closed.
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start runs the scan loop until a payload is decoded, the source fails,
// the context is cancelled or Stop is called.
func (s *Scanner) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop ends the session and releases the frame source. Safe to call from
// any goroutine, any number of times, even with a decode in flight.
func (s *Scanner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if err := s.src.Close(); err != nil {
			s.log.Warn(context.Background(), "frame source close failed", "error", err)
		}
	})
}

func (s *Scanner) run(ctx context.Context) {
	defer close(s.payloads)
	defer s.Stop()

	interval := time.Second / time.Duration(s.opts.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
		}

		frame, err := s.src.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrNoFrame) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}

		payload, err := DecodeRegion(frame, s.window(frame.Bounds()))
		if err != nil {
			continue
		}

		select {
		case s.payloads <- payload:
		default:
		}
		return
	}
}

// window centers the detection window inside bounds.
func (s *Scanner) window(bounds image.Rectangle) image.Rectangle {
	w := min(s.opts.Window.X, bounds.Dx())
	h := min(s.opts.Window.Y, bounds.Dy())
	x0 := bounds.Min.X + (bounds.Dx()-w)/2
	y0 := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
