package textpath

import (
	"errors"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// ParseResult is the outcome of parsing a path string. Parsing never
// fails outright: Segments holds every segment built before the first
// error, and Errors lists what went wrong.
type ParseResult struct {
	// Path holds the parsed elements.
	Path *Path

	// Segments are the drawable segments of Path, degenerate pieces removed.
	Segments []Segment

	// Start is the start of the last subpath, Current the final pen position.
	Start, Current Point

	// Errors lists parse failures, each a *ParseError.
	Errors []error
}

// Err joins the parse errors, nil when the string parsed cleanly.
func (r ParseResult) Err() error {
	return errors.Join(r.Errors...)
}

// Empty reports whether parsing produced no drawable segments.
func (r ParseResult) Empty() bool {
	return len(r.Segments) == 0
}

// ParsePath parses a path string in the compact path grammar
// (M, L, H, V, Q, T, C, S, A, Z and their relative forms).
//
// A command letter may be followed by several parameter groups; each group
// yields its own segment. Extra coordinate pairs after a moveto are implicit
// linetos. Parsing stops at the first malformed token and keeps whatever was
// built before it; the error is logged and reported in ParseResult.Errors.
//
// All parse state is local to the call, so ParsePath is safe for concurrent use.
func ParsePath(d string) ParseResult {
	ps := pathScanner{buf: []byte(d), path: NewPath()}

	var errs []error
	if err := ps.run(); err != nil {
		errs = append(errs, err)
		Logger().Warn("textpath: malformed path data",
			"error", err,
			"elements", len(ps.path.Elements()))
	}

	return ParseResult{
		Path:     ps.path,
		Segments: ps.path.Segments(),
		Start:    ps.path.StartPoint(),
		Current:  ps.path.CurrentPoint(),
		Errors:   errs,
	}
}

const pathCommands = "MmZzLlHhVvCcSsQqTtAa"

// pathScanner walks a path string. It lives only for one ParsePath call.
type pathScanner struct {
	buf  []byte
	pos  int
	path *Path

	cmd      byte  // command governing the next parameter group
	prev     byte  // upper-case command of the previous group
	lastCtrl Point // last control point, reflected by S and T
}

func (ps *pathScanner) run() error {
	for {
		ps.skipSeparators()
		if ps.pos >= len(ps.buf) {
			return nil
		}

		start := ps.pos
		c := ps.buf[ps.pos]
		switch {
		case strings.IndexByte(pathCommands, c) >= 0:
			ps.cmd = c
			ps.pos++
		case !isNumberStart(c):
			return ps.fail(start, c, ErrUnknownCommand)
		case ps.cmd == 0:
			return ps.fail(start, 0, ErrNoCurrentPoint)
		case ps.cmd == 'Z' || ps.cmd == 'z':
			return ps.fail(start, ps.cmd, ErrUnexpectedNumber)
		}

		if err := ps.group(start); err != nil {
			return err
		}
	}
}

// group consumes one parameter group of the current command.
func (ps *pathScanner) group(start int) error {
	cmd := ps.cmd
	rel := cmd >= 'a'
	upper := cmd &^ 0x20

	if upper != 'M' && !ps.path.HasCurrentPoint() {
		return ps.fail(start, cmd, ErrNoCurrentPoint)
	}

	cur := ps.path.CurrentPoint()
	var n [7]float64
	if err := ps.numbers(n[:paramCount(upper)], upper == 'A', start); err != nil {
		return err
	}

	// relative coordinate pairs are offset from the current point
	off := func(x, y float64) (float64, float64) {
		if rel {
			return x + cur.X, y + cur.Y
		}
		return x, y
	}

	switch upper {
	case 'M':
		x, y := off(n[0], n[1])
		ps.path.MoveTo(x, y)
		// further pairs are implicit linetos
		ps.cmd = 'L' | cmd&0x20
	case 'Z':
		ps.path.Close()
	case 'L':
		x, y := off(n[0], n[1])
		ps.path.LineTo(x, y)
	case 'H':
		x := n[0]
		if rel {
			x += cur.X
		}
		ps.path.LineTo(x, cur.Y)
	case 'V':
		y := n[0]
		if rel {
			y += cur.Y
		}
		ps.path.LineTo(cur.X, y)
	case 'Q':
		cx, cy := off(n[0], n[1])
		x, y := off(n[2], n[3])
		ps.path.QuadraticTo(cx, cy, x, y)
		ps.lastCtrl = Pt(cx, cy)
	case 'T':
		ctrl := cur
		if ps.prev == 'Q' || ps.prev == 'T' {
			ctrl = reflect(ps.lastCtrl, cur)
		}
		x, y := off(n[0], n[1])
		ps.path.QuadraticTo(ctrl.X, ctrl.Y, x, y)
		ps.lastCtrl = ctrl
	case 'C':
		c1x, c1y := off(n[0], n[1])
		c2x, c2y := off(n[2], n[3])
		x, y := off(n[4], n[5])
		ps.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		ps.lastCtrl = Pt(c2x, c2y)
	case 'S':
		c1 := cur
		if ps.prev == 'C' || ps.prev == 'S' {
			c1 = reflect(ps.lastCtrl, cur)
		}
		c2x, c2y := off(n[0], n[1])
		x, y := off(n[2], n[3])
		ps.path.CubicTo(c1.X, c1.Y, c2x, c2y, x, y)
		ps.lastCtrl = Pt(c2x, c2y)
	case 'A':
		x, y := off(n[5], n[6])
		ps.path.ArcTo(n[0], n[1], n[2], n[3] != 0, n[4] != 0, x, y)
	}

	ps.prev = upper
	return nil
}

// numbers fills dst from the input. For arcs the fourth and fifth
// parameters are single-character flags.
func (ps *pathScanner) numbers(dst []float64, arc bool, start int) error {
	for i := range dst {
		ps.skipSeparators()
		if arc && (i == 3 || i == 4) {
			if ps.pos >= len(ps.buf) {
				return ps.fail(start, ps.cmd, ErrMissingNumber)
			}
			switch ps.buf[ps.pos] {
			case '0':
				dst[i] = 0
			case '1':
				dst[i] = 1
			default:
				return ps.fail(ps.pos, ps.cmd, ErrBadFlag)
			}
			ps.pos++
			continue
		}

		f, n := strconv.ParseFloat(ps.buf[ps.pos:])
		if n == 0 || !isFinite(f) {
			return ps.fail(ps.pos, ps.cmd, ErrMissingNumber)
		}
		dst[i] = f
		ps.pos += n
	}
	return nil
}

func (ps *pathScanner) skipSeparators() {
	for ps.pos < len(ps.buf) {
		switch ps.buf[ps.pos] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			ps.pos++
		default:
			return
		}
	}
}

func (ps *pathScanner) fail(offset int, cmd byte, err error) error {
	return &ParseError{Offset: offset, Command: cmd, Err: err}
}

// paramCount returns the number of parameters in one group of an
// upper-case command.
func paramCount(upper byte) int {
	switch upper {
	case 'Z':
		return 0
	case 'H', 'V':
		return 1
	case 'M', 'L', 'T':
		return 2
	case 'Q', 'S':
		return 4
	case 'C':
		return 6
	case 'A':
		return 7
	}
	return 0
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// reflect mirrors ctrl through the point about.
func reflect(ctrl, about Point) Point {
	return Pt(2*about.X-ctrl.X, 2*about.Y-ctrl.Y)
}
