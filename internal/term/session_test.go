package term

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionRunsShell(t *testing.T) {
	s, err := StartSession("/bin/sh", 80, 24)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer s.Close()

	_, err = s.Write([]byte("echo drydock-ok\r"))
	require.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var text string
		s.Snapshot(func(sc *Screen) { text = sc.Text() })
		if strings.Contains(text, "drydock-ok") {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("shell output never reached the screen")
}

func TestSessionResize(t *testing.T) {
	s, err := StartSession("/bin/sh", 80, 24)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer s.Close()

	require.NoError(t, s.Resize(100, 30))
	s.Snapshot(func(sc *Screen) {
		cols, rows := sc.Size()
		require.Equal(t, 100, cols)
		require.Equal(t, 30, rows)
	})
}

func TestSessionCloseEndsProcess(t *testing.T) {
	s, err := StartSession("/bin/sh", 80, 24)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	require.NoError(t, s.Close())

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish after Close")
	}
}
