package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// spinner shows an animated progress line on stderr until stopped. It also
// stops when the context is canceled so Ctrl-C leaves a clean terminal.
type spinner struct {
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startSpinner begins the animation and returns the running spinner.
func startSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()

	return s
}

// stop halts the animation and clears the line.
func (s *spinner) stop() {
	s.cancel()
	<-s.stopped
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
