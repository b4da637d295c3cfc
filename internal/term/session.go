package term

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Session runs a shell on a pseudo-terminal and feeds its output into a
// Screen. It is the bridge between the embedded terminal pane and the OS.
type Session struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	ptmx   *os.File
	screen *Screen
	done   chan struct{}
	err    error
}

// StartSession launches shell on a new PTY sized cols x rows.
func StartSession(shell string, cols, rows int) (*Session, error) {
	if shell == "" {
		return nil, fmt.Errorf("terminal: no shell configured")
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
	if err != nil {
		return nil, fmt.Errorf("terminal: start %s: %w", shell, err)
	}

	s := &Session{
		cmd:    cmd,
		ptmx:   ptmx,
		screen: NewScreen(cols, rows),
		done:   make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

// pump copies PTY output into the screen until the process exits.
func (s *Session) pump() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			_, _ = s.screen.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			s.mu.Lock()
			s.err = s.cmd.Wait()
			s.mu.Unlock()
			close(s.done)
			return
		}
	}
}

// Write sends keystrokes to the shell.
func (s *Session) Write(p []byte) (int, error) {
	return s.ptmx.Write(p)
}

// Resize adjusts both the PTY and the screen model.
func (s *Session) Resize(cols, rows int) error {
	s.mu.Lock()
	s.screen.Resize(cols, rows)
	s.mu.Unlock()
	return pty.Setsize(s.ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Snapshot hands the current screen contents to fn under the session lock.
func (s *Session) Snapshot(fn func(*Screen)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.screen)
}

// Done is closed once the shell has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the shell's exit error, if any, once Done is closed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close terminates the shell and releases the PTY.
func (s *Session) Close() error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.ptmx.Close()
}
