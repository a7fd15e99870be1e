package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner is a stderr progress indicator shown while a cargo subprocess
// runs. It stops on Stop or when the context is cancelled.
type spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func newSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Start and Stop must be called from the same
// goroutine.
func (s *spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleSpinner.Render(frame), styleDim.Render(s.message))
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+4))
}
