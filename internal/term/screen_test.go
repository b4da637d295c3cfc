package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, s *Screen, input string) {
	t.Helper()
	_, err := s.Write([]byte(input))
	require.NoError(t, err)
}

func TestPlainTextAndNewlines(t *testing.T) {
	t.Parallel()
	s := NewScreen(20, 5)
	feed(t, s, "hello\r\nworld")
	require.Equal(t, "hello\nworld", s.Text())

	row, col := s.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 5, col)
}

func TestCarriageReturnOverwrites(t *testing.T) {
	t.Parallel()
	s := NewScreen(20, 5)
	feed(t, s, "progress 10%\rprogress 99%")
	require.Equal(t, "progress 99%", s.Text())
}

func TestBackspaceAndTab(t *testing.T) {
	t.Parallel()
	s := NewScreen(20, 5)
	feed(t, s, "abc\b\bX")
	require.Equal(t, "aXc", s.Line(0))

	s = NewScreen(20, 5)
	feed(t, s, "a\tb")
	require.Equal(t, "a       b", s.Line(0))
}

func TestLineWrap(t *testing.T) {
	t.Parallel()
	s := NewScreen(5, 3)
	feed(t, s, "abcdefgh")
	require.Equal(t, "abcde", s.Line(0))
	require.Equal(t, "fgh", s.Line(1))
}

func TestWrapAtBottomRightIsDeferred(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "top\x1b[3;1H123456789x")
	// filling the last cell must not scroll until another rune arrives
	require.Equal(t, "top", s.Line(0))
	require.Equal(t, "123456789x", s.Line(2))

	feed(t, s, "y")
	require.Equal(t, "123456789x", s.Line(1))
	require.Equal(t, "y", s.Line(2))
}

func TestCarriageReturnCancelsPendingWrap(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "0123456789\rX")
	require.Equal(t, "X123456789", s.Line(0))
	require.Equal(t, "", s.Line(1))
}

func TestScrollAtBottom(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "one\r\ntwo\r\nthree\r\nfour")
	require.Equal(t, "two\nthree\nfour", s.Text())
}

func TestCursorMovement(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 5)
	feed(t, s, "\x1b[3;4Hx")
	require.Equal(t, "   x", s.Line(2))

	// CUU/CUD/CUF/CUB with defaults and counts
	s = NewScreen(10, 5)
	feed(t, s, "\x1b[2;2Ha\x1b[Ab") // up 1 from (1,2) -> write at row 0
	require.Equal(t, "  b", s.Line(0))

	s = NewScreen(10, 5)
	feed(t, s, "\x1b[5Cx")
	require.Equal(t, "     x", s.Line(0))
}

func TestCursorClamping(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "\x1b[99;99Hx")
	require.Equal(t, "         x", s.Line(2))

	feed(t, s, "\x1b[99A\x1b[99Dy")
	require.Equal(t, "y", s.Line(0))
}

func TestEraseLine(t *testing.T) {
	t.Parallel()
	s := NewScreen(20, 3)
	feed(t, s, "hello world\x1b[1;7H\x1b[K")
	require.Equal(t, "hello", s.Line(0))

	s = NewScreen(20, 3)
	feed(t, s, "hello world\x1b[1;6H\x1b[1K")
	require.Equal(t, "      world", s.Line(0))

	s = NewScreen(20, 3)
	feed(t, s, "hello world\x1b[2K")
	require.Equal(t, "", s.Line(0))
}

func TestEraseDisplay(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "aaa\r\nbbb\r\nccc\x1b[2J")
	require.Equal(t, "", s.Text())

	// clear from cursor to end
	s = NewScreen(10, 3)
	feed(t, s, "aaa\r\nbbb\r\nccc\x1b[2;1H\x1b[0J")
	require.Equal(t, "aaa", s.Text())
}

func TestSGRColorsAndReset(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "\x1b[1;31mred\x1b[0mplain")

	cells := s.Row(0)
	require.Equal(t, 'r', cells[0].Rune)
	require.Equal(t, "1", cells[0].Style.Fg)
	require.True(t, cells[0].Style.Bold)
	require.Equal(t, 'p', cells[3].Rune)
	require.Equal(t, "", cells[3].Style.Fg)
	require.False(t, cells[3].Style.Bold)
}

func Test256ColorSGR(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "\x1b[38;5;208mo\x1b[48;5;21mx")
	cells := s.Row(0)
	require.Equal(t, "208", cells[0].Style.Fg)
	require.Equal(t, "208", cells[1].Style.Fg)
	require.Equal(t, "21", cells[1].Style.Bg)
}

func TestBrightColors(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "\x1b[92mg\x1b[105mm")
	cells := s.Row(0)
	require.Equal(t, "10", cells[0].Style.Fg)
	require.Equal(t, "13", cells[1].Style.Bg)
}

func TestOSCTitleIsSwallowed(t *testing.T) {
	t.Parallel()
	s := NewScreen(30, 2)
	feed(t, s, "\x1b]0;my window title\x07visible")
	require.Equal(t, "visible", s.Text())
}

func TestCharsetDesignationIsSwallowed(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "\x1b(Bok")
	require.Equal(t, "ok", s.Text())
}

func TestPrivateModesIgnored(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "\x1b[?25lhidden\x1b[?25h")
	require.Equal(t, "hidden", s.Text())
}

func TestSplitUTF8AcrossWrites(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	raw := []byte("héllo") // é is two bytes
	_, err := s.Write(raw[:2])
	require.NoError(t, err)
	_, err = s.Write(raw[2:])
	require.NoError(t, err)
	require.Equal(t, "héllo", s.Text())
}

func TestInsertDeleteLines(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 4)
	feed(t, s, "one\r\ntwo\r\nthree\x1b[2;1H\x1b[L")
	require.Equal(t, "one\n\ntwo\nthree", s.Text())

	feed(t, s, "\x1b[2;1H\x1b[M")
	require.Equal(t, "one\ntwo\nthree", s.Text())
}

func TestDeleteAndInsertChars(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 2)
	feed(t, s, "abcdef\x1b[1;2H\x1b[2P")
	require.Equal(t, "adef", s.Line(0))

	s = NewScreen(10, 2)
	feed(t, s, "abc\x1b[1;2H\x1b[2@")
	require.Equal(t, "a  bc", s.Line(0))
}

func TestSaveRestoreCursor(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "\x1b[2;3H\x1b[s\x1b[1;1Hx\x1b[uy")
	require.Equal(t, "x", s.Line(0))
	require.Equal(t, "  y", s.Line(1))
}

func TestFullReset(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "\x1b[31mjunk\x1bcfresh")
	require.Equal(t, "fresh", s.Text())
	cells := s.Row(0)
	require.Equal(t, "", cells[0].Style.Fg)
}

func TestResizePreservesContent(t *testing.T) {
	t.Parallel()
	s := NewScreen(10, 3)
	feed(t, s, "keep me")
	s.Resize(20, 5)
	require.Equal(t, "keep me", s.Text())

	s.Resize(4, 2)
	require.Equal(t, "keep", s.Line(0))
}
