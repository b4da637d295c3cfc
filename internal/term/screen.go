package term

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Style is the visual state of a cell. Colors are ANSI palette indexes
// rendered as lipgloss color strings; empty means terminal default.
type Style struct {
	Fg   string
	Bg   string
	Bold bool
}

// Cell is one character cell of the screen grid.
type Cell struct {
	Rune  rune
	Style Style
}

type parseState int

const (
	stateNormal parseState = iota
	stateEscape
	stateCSI
	stateOSC
	stateCharset
)

// Screen is an in-memory terminal display: a fixed grid of cells plus a
// cursor, fed by Write with the byte stream coming off the PTY. It handles
// the control sequences an interactive shell actually emits; unknown
// sequences are consumed and ignored rather than leaking into the grid.
type Screen struct {
	cols, rows int
	cells      [][]Cell
	curRow     int
	curCol     int
	style      Style

	savedRow int
	savedCol int

	// set after printing in the last column; the wrap happens only when
	// the next printable rune arrives, so a rune at the bottom-right does
	// not scroll on its own
	wrapPending bool

	state    parseState
	params   []int
	curParam int
	hasParam bool
	partial  []byte // incomplete utf8 tail from the previous Write
}

// NewScreen builds an empty screen of the given size.
func NewScreen(cols, rows int) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := &Screen{cols: cols, rows: rows}
	s.cells = makeGrid(cols, rows)
	return s
}

func makeGrid(cols, rows int) [][]Cell {
	g := make([][]Cell, rows)
	for i := range g {
		g[i] = make([]Cell, cols)
		for j := range g[i] {
			g[i][j].Rune = ' '
		}
	}
	return g
}

// Size returns the grid dimensions.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// Cursor returns the cursor position (zero-based).
func (s *Screen) Cursor() (row, col int) { return s.curRow, s.curCol }

// Resize rebuilds the grid, preserving as much content as fits.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	next := makeGrid(cols, rows)
	for r := 0; r < rows && r < s.rows; r++ {
		for c := 0; c < cols && c < s.cols; c++ {
			next[r][c] = s.cells[r][c]
		}
	}
	s.cells = next
	s.cols, s.rows = cols, rows
	s.clampCursor()
}

// Write feeds PTY output into the screen. It never fails; implementing
// io.Writer keeps the bridge wiring simple.
func (s *Screen) Write(p []byte) (int, error) {
	data := p
	if len(s.partial) > 0 {
		data = append(append([]byte{}, s.partial...), p...)
		s.partial = nil
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(data) {
			// incomplete sequence, wait for the next chunk
			s.partial = append(s.partial, data...)
			break
		}
		s.consume(r)
		data = data[size:]
	}
	return len(p), nil
}

func (s *Screen) consume(r rune) {
	switch s.state {
	case stateEscape:
		s.consumeEscape(r)
	case stateCSI:
		s.consumeCSI(r)
	case stateOSC:
		// OSC ends with BEL or ST (ESC \); ESC re-enters escape handling
		if r == 0x07 {
			s.state = stateNormal
		} else if r == 0x1b {
			s.state = stateEscape
		}
	case stateCharset:
		s.state = stateNormal
	default:
		s.consumeNormal(r)
	}
}

func (s *Screen) consumeNormal(r rune) {
	switch r {
	case 0x1b:
		s.state = stateEscape
	case '\n':
		s.wrapPending = false
		s.lineFeed()
	case '\r':
		s.wrapPending = false
		s.curCol = 0
	case '\b':
		s.wrapPending = false
		if s.curCol > 0 {
			s.curCol--
		}
	case '\t':
		s.wrapPending = false
		s.curCol = (s.curCol/8 + 1) * 8
		if s.curCol >= s.cols {
			s.curCol = s.cols - 1
		}
	case 0x07:
		// bell, nothing to ring
	default:
		if r < 0x20 {
			return
		}
		s.printRune(r)
	}
}

func (s *Screen) consumeEscape(r rune) {
	switch r {
	case '[':
		s.state = stateCSI
		s.params = s.params[:0]
		s.curParam = 0
		s.hasParam = false
	case ']':
		s.state = stateOSC
	case 'c':
		// full reset
		s.cells = makeGrid(s.cols, s.rows)
		s.curRow, s.curCol = 0, 0
		s.style = Style{}
		s.wrapPending = false
		s.state = stateNormal
	case 'M':
		// reverse line feed
		s.wrapPending = false
		if s.curRow > 0 {
			s.curRow--
		}
		s.state = stateNormal
	case '(', ')':
		// charset designation, the designator byte follows
		s.state = stateCharset
	default:
		s.state = stateNormal
	}
}

func (s *Screen) consumeCSI(r rune) {
	switch {
	case r >= '0' && r <= '9':
		s.curParam = s.curParam*10 + int(r-'0')
		s.hasParam = true
	case r == ';':
		s.params = append(s.params, s.curParam)
		s.curParam = 0
		s.hasParam = true
	case r == '?' || r == '>' || r == '!' || r == ' ':
		// private markers (e.g. DECSET); parameters still parse, the
		// final byte dispatch below ignores modes we do not model
	default:
		if s.hasParam || s.curParam > 0 {
			s.params = append(s.params, s.curParam)
		}
		s.dispatchCSI(r)
		s.state = stateNormal
	}
}

func (s *Screen) param(i, def int) int {
	if i < len(s.params) && s.params[i] > 0 {
		return s.params[i]
	}
	return def
}

func (s *Screen) dispatchCSI(final rune) {
	switch final {
	case 'A':
		s.curRow -= s.param(0, 1)
	case 'B', 'e':
		s.curRow += s.param(0, 1)
	case 'C', 'a':
		s.curCol += s.param(0, 1)
	case 'D':
		s.curCol -= s.param(0, 1)
	case 'E':
		s.curRow += s.param(0, 1)
		s.curCol = 0
	case 'F':
		s.curRow -= s.param(0, 1)
		s.curCol = 0
	case 'G', '`':
		s.curCol = s.param(0, 1) - 1
	case 'd':
		s.curRow = s.param(0, 1) - 1
	case 'H', 'f':
		s.curRow = s.param(0, 1) - 1
		s.curCol = s.param(1, 1) - 1
	case 'J':
		s.eraseDisplay(s.param(0, 0))
	case 'K':
		s.eraseLine(s.param(0, 0))
	case 'm':
		s.applySGR()
	case 's':
		s.savedRow, s.savedCol = s.curRow, s.curCol
	case 'u':
		s.curRow, s.curCol = s.savedRow, s.savedCol
	case 'L':
		s.insertLines(s.param(0, 0))
	case 'M':
		s.deleteLines(s.param(0, 0))
	case 'P':
		s.deleteChars(s.param(0, 1))
	case '@':
		s.insertChars(s.param(0, 1))
	case 'X':
		s.eraseChars(s.param(0, 1))
	}
	s.clampCursor()
}

func (s *Screen) clampCursor() {
	s.wrapPending = false
	if s.curRow < 0 {
		s.curRow = 0
	}
	if s.curRow >= s.rows {
		s.curRow = s.rows - 1
	}
	if s.curCol < 0 {
		s.curCol = 0
	}
	if s.curCol >= s.cols {
		s.curCol = s.cols - 1
	}
}

func (s *Screen) printRune(r rune) {
	if s.wrapPending {
		s.wrapPending = false
		s.curCol = 0
		s.lineFeed()
	}
	s.cells[s.curRow][s.curCol] = Cell{Rune: r, Style: s.style}
	if s.curCol == s.cols-1 {
		s.wrapPending = true
	} else {
		s.curCol++
	}
}

func (s *Screen) lineFeed() {
	s.curRow++
	if s.curRow >= s.rows {
		s.scrollUp()
		s.curRow = s.rows - 1
	}
}

func (s *Screen) scrollUp() {
	copy(s.cells, s.cells[1:])
	last := make([]Cell, s.cols)
	for i := range last {
		last[i].Rune = ' '
	}
	s.cells[s.rows-1] = last
}

func (s *Screen) eraseDisplay(mode int) {
	switch mode {
	case 1:
		for r := 0; r < s.curRow; r++ {
			s.blankRow(r)
		}
		s.blankRange(s.curRow, 0, s.curCol+1)
	case 2, 3:
		for r := 0; r < s.rows; r++ {
			s.blankRow(r)
		}
	default:
		s.blankRange(s.curRow, s.curCol, s.cols)
		for r := s.curRow + 1; r < s.rows; r++ {
			s.blankRow(r)
		}
	}
}

func (s *Screen) eraseLine(mode int) {
	switch mode {
	case 1:
		s.blankRange(s.curRow, 0, s.curCol+1)
	case 2:
		s.blankRow(s.curRow)
	default:
		s.blankRange(s.curRow, s.curCol, s.cols)
	}
}

func (s *Screen) blankRow(r int) { s.blankRange(r, 0, s.cols) }

func (s *Screen) blankRange(r, from, to int) {
	if r < 0 || r >= s.rows {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.cols {
		to = s.cols
	}
	for c := from; c < to; c++ {
		s.cells[r][c] = Cell{Rune: ' '}
	}
}

func (s *Screen) insertLines(n int) {
	if n < 1 {
		n = 1
	}
	for ; n > 0; n-- {
		for i := s.rows - 1; i > s.curRow; i-- {
			s.cells[i] = s.cells[i-1]
		}
		row := make([]Cell, s.cols)
		for i := range row {
			row[i].Rune = ' '
		}
		s.cells[s.curRow] = row
	}
}

func (s *Screen) deleteLines(n int) {
	if n < 1 {
		n = 1
	}
	for ; n > 0; n-- {
		copy(s.cells[s.curRow:], s.cells[s.curRow+1:])
		row := make([]Cell, s.cols)
		for i := range row {
			row[i].Rune = ' '
		}
		s.cells[s.rows-1] = row
	}
}

func (s *Screen) deleteChars(n int) {
	row := s.cells[s.curRow]
	for i := s.curCol; i < s.cols; i++ {
		if i+n < s.cols {
			row[i] = row[i+n]
		} else {
			row[i] = Cell{Rune: ' '}
		}
	}
}

func (s *Screen) insertChars(n int) {
	row := s.cells[s.curRow]
	for i := s.cols - 1; i >= s.curCol+n; i-- {
		row[i] = row[i-n]
	}
	for i := s.curCol; i < s.curCol+n && i < s.cols; i++ {
		row[i] = Cell{Rune: ' '}
	}
}

func (s *Screen) eraseChars(n int) {
	s.blankRange(s.curRow, s.curCol, s.curCol+n)
}

func (s *Screen) applySGR() {
	if len(s.params) == 0 {
		s.style = Style{}
		return
	}
	for i := 0; i < len(s.params); i++ {
		p := s.params[i]
		switch {
		case p == 0:
			s.style = Style{}
		case p == 1:
			s.style.Bold = true
		case p == 22:
			s.style.Bold = false
		case p >= 30 && p <= 37:
			s.style.Fg = colorIndex(p - 30)
		case p == 38 && i+2 < len(s.params) && s.params[i+1] == 5:
			s.style.Fg = colorIndex(s.params[i+2])
			i += 2
		case p == 39:
			s.style.Fg = ""
		case p >= 40 && p <= 47:
			s.style.Bg = colorIndex(p - 40)
		case p == 48 && i+2 < len(s.params) && s.params[i+1] == 5:
			s.style.Bg = colorIndex(s.params[i+2])
			i += 2
		case p == 49:
			s.style.Bg = ""
		case p >= 90 && p <= 97:
			s.style.Fg = colorIndex(p - 90 + 8)
		case p >= 100 && p <= 107:
			s.style.Bg = colorIndex(p - 100 + 8)
		}
	}
}

func colorIndex(n int) string {
	if n < 0 || n > 255 {
		return ""
	}
	return strconv.Itoa(n)
}

// Line returns row r as plain text with trailing blanks trimmed.
func (s *Screen) Line(r int) string {
	if r < 0 || r >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[r] {
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Text returns the whole screen as plain text, one line per row, with
// trailing blank lines trimmed.
func (s *Screen) Text() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		lines[r] = s.Line(r)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Row returns a copy of row r's cells for styled rendering.
func (s *Screen) Row(r int) []Cell {
	if r < 0 || r >= s.rows {
		return nil
	}
	out := make([]Cell, s.cols)
	copy(out, s.cells[r])
	return out
}
