package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// spinnerFrames are the animation frames for the spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"} //nolint:gochecknoglobals // animation frames

// SpinnerInterval is the update interval for the spinner animation.
const SpinnerInterval = 100 * time.Millisecond

// ElapsedTimeThreshold is how long the spinner runs before it shows elapsed time.
const ElapsedTimeThreshold = 10 * time.Second

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\033[K"

// spinnerManager tracks the running spinner so log writers can clear its line.
var spinnerManager = &SpinnerManager{} //nolint:gochecknoglobals // singleton shared with the log writer

// SpinnerManager tracks the currently active spinner.
type SpinnerManager struct {
	mu     sync.Mutex
	active *Spinner
}

// GetActive returns the active spinner, or nil.
func (m *SpinnerManager) GetActive() *Spinner {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *SpinnerManager) set(s *Spinner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = s
}

// GlobalSpinnerManager returns the process-wide spinner manager.
func GlobalSpinnerManager() *SpinnerManager {
	return spinnerManager
}

// Spinner shows an animated "waiting" line while the assistant runs.
type Spinner struct {
	w       io.Writer
	styles  *OutputStyles
	message string
	started time.Time
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	running bool
}

// NewSpinner creates a spinner that draws on w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Start begins the animation. Calling Start on a running spinner is a no-op.
// The spinner stops on its own when ctx is done.
func (s *Spinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	s.message = message
	s.started = time.Now()
	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	spinnerManager.set(s)
	go s.animate(ctx, s.done, s.stopped)
}

// Stop ends the animation and clears the spinner line. It is safe to call
// more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done, stopped := s.done, s.stopped
	s.mu.Unlock()

	close(done)
	<-stopped
}

func (s *Spinner) animate(ctx context.Context, done, stopped chan struct{}) {
	defer close(stopped)
	defer spinnerManager.set(nil)
	defer func() { _, _ = io.WriteString(s.w, clearLine) }()

	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-ticker.C:
			_, _ = io.WriteString(s.w, s.render(frame))
		}
	}
}

// render returns the escape sequence and text for one animation frame.
func (s *Spinner) render(frame int) string {
	msg := s.message
	if elapsed := time.Since(s.started); elapsed > ElapsedTimeThreshold {
		msg = fmt.Sprintf("%s %s", msg, FormatElapsed(elapsed))
	}

	// frame + space + one column of margin so the line never wraps
	msg = runewidth.Truncate(msg, terminalWidth()-3, "...")

	icon := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
	return clearLine + icon + " " + s.styles.Dim.Render(msg)
}

// FormatElapsed formats d for display next to the spinner.
func FormatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%ds)", int(d.Seconds()))
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

// terminalWidth returns the stderr width, or 80 when unknown.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint:gosec // G115: fd fits in int
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
