package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a one-line status on stderr while a slow call runs,
// using a bubbles frame set without starting a tea.Program.
type Spinner struct {
	out   io.Writer
	label string
	kind  spinner.Spinner

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// newSpinner returns a spinner that has not started yet.
func newSpinner(label string) *Spinner {
	return &Spinner{out: os.Stderr, label: label, kind: spinner.Dot}
}

// Start draws frames until Stop is called or ctx is done. Call it once.
func (s *Spinner) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.kind.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.draw(s.kind.Frames[i%len(s.kind.Frames)])
			select {
			case <-ctx.Done():
				s.clear()
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the animation and erases the line. It is safe to call more
// than once and before Start.
func (s *Spinner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.label))
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
