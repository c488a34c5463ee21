package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nexusfab/tiletopo/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// buildSpinner animates the build of one device. While attached it is the
// process build hooks: registry and tile-type events update its message
// and are forwarded to the hooks it replaced.
type buildSpinner struct {
	w        io.Writer
	device   string
	interval time.Duration
	next     observability.BuildHooks

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	stop    sync.Once

	mu      sync.Mutex
	started bool
	total   int
	built   int
	failed  int
	current string
	width   int
}

// newBuildSpinner creates a spinner for device that writes frames to w and
// stops when ctx is cancelled.
func newBuildSpinner(ctx context.Context, w io.Writer, device string) *buildSpinner {
	sctx, cancel := context.WithCancel(ctx)
	return &buildSpinner{
		w:        w,
		device:   device,
		interval: 80 * time.Millisecond,
		next:     observability.NoopBuildHooks{},
		ctx:      sctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
}

// attach installs s as the build hooks and returns the function restoring
// the previous ones.
func (s *buildSpinner) attach() (restore func()) {
	s.next = observability.Build()
	observability.SetBuildHooks(s)
	return func() { observability.SetBuildHooks(s.next) }
}

// message is the current status line without the frame.
func (s *buildSpinner) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.total == 0 {
		return "Building tile types of " + s.device + "..."
	}
	msg := fmt.Sprintf("Building %s %d/%d", s.device, s.built, s.total)
	if s.failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", s.failed)
	}
	if s.current != "" {
		msg += " " + s.current
	}
	return msg
}

func (s *buildSpinner) OnRegistryStart(ctx context.Context, family, device string, tiletypes int) {
	if device == s.device {
		s.mu.Lock()
		s.total, s.built, s.failed, s.current = tiletypes, 0, 0, ""
		s.mu.Unlock()
	}
	s.next.OnRegistryStart(ctx, family, device, tiletypes)
}

func (s *buildSpinner) OnRegistryComplete(ctx context.Context, family, device string, built int, d time.Duration, err error) {
	s.next.OnRegistryComplete(ctx, family, device, built, d, err)
}

func (s *buildSpinner) OnTileTypeStart(ctx context.Context, family, tiletype string) {
	s.next.OnTileTypeStart(ctx, family, tiletype)
}

func (s *buildSpinner) OnTileTypeComplete(ctx context.Context, family, tiletype string, wires int, d time.Duration, err error) {
	s.mu.Lock()
	s.built++
	if err != nil {
		s.failed++
	}
	s.current = tiletype
	s.mu.Unlock()
	s.next.OnTileTypeComplete(ctx, family, tiletype, wires, d, err)
}

// Start begins the animation. It returns immediately.
func (s *buildSpinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				msg := s.message()
				s.mu.Lock()
				s.width = max(s.width, len(msg)+4)
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(msg))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It may be called more than
// once and without Start.
func (s *buildSpinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if !started {
			return
		}
		<-s.stopped

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}
