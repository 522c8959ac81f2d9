package textpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParsePath_Elements(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []PathElement
	}{
		{
			name: "absolute line",
			d:    "M0,0 L100,0",
			want: []PathElement{MoveTo{Pt(0, 0)}, LineTo{Pt(100, 0)}},
		},
		{
			name: "implicit lineto after moveto",
			d:    "M10 20 30 40 50 60",
			want: []PathElement{MoveTo{Pt(10, 20)}, LineTo{Pt(30, 40)}, LineTo{Pt(50, 60)}},
		},
		{
			name: "relative implicit lineto",
			d:    "m10,20 5,5 5,-5",
			want: []PathElement{MoveTo{Pt(10, 20)}, LineTo{Pt(15, 25)}, LineTo{Pt(20, 20)}},
		},
		{
			name: "repeated line groups",
			d:    "M0,0 L10,0 20,0 30,10",
			want: []PathElement{MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(20, 0)}, LineTo{Pt(30, 10)}},
		},
		{
			name: "horizontal and vertical",
			d:    "M5,5 H20 V30 h-10 v-5",
			want: []PathElement{
				MoveTo{Pt(5, 5)}, LineTo{Pt(20, 5)}, LineTo{Pt(20, 30)},
				LineTo{Pt(10, 30)}, LineTo{Pt(10, 25)},
			},
		},
		{
			name: "relative quadratic",
			d:    "M10,10 q10,-10 20,0",
			want: []PathElement{MoveTo{Pt(10, 10)}, QuadTo{Pt(20, 0), Pt(30, 10)}},
		},
		{
			name: "repeated cubic groups",
			d:    "M0,0 C0,10 10,10 10,0 10,-10 20,-10 20,0",
			want: []PathElement{
				MoveTo{Pt(0, 0)},
				CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
				CubicTo{Pt(10, -10), Pt(20, -10), Pt(20, 0)},
			},
		},
		{
			name: "relative cubic",
			d:    "M10,10 c0,10 10,10 10,0",
			want: []PathElement{MoveTo{Pt(10, 10)}, CubicTo{Pt(10, 20), Pt(20, 20), Pt(20, 10)}},
		},
		{
			name: "smooth cubic reflects previous control",
			d:    "M0,0 C0,10 10,10 10,0 S20,-10 20,0",
			want: []PathElement{
				MoveTo{Pt(0, 0)},
				CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
				CubicTo{Pt(10, -10), Pt(20, -10), Pt(20, 0)},
			},
		},
		{
			name: "smooth cubic without previous cubic",
			d:    "M0,0 S10,10 20,0",
			want: []PathElement{MoveTo{Pt(0, 0)}, CubicTo{Pt(0, 0), Pt(10, 10), Pt(20, 0)}},
		},
		{
			name: "smooth quadratic chain",
			d:    "M0,0 Q10,10 20,0 T40,0 t20,0",
			want: []PathElement{
				MoveTo{Pt(0, 0)},
				QuadTo{Pt(10, 10), Pt(20, 0)},
				QuadTo{Pt(30, -10), Pt(40, 0)},
				QuadTo{Pt(50, 10), Pt(60, 0)},
			},
		},
		{
			name: "close then continue from subpath start",
			d:    "M0,0 L10,0 L10,10 Z L5,5",
			want: []PathElement{
				MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(10, 10)}, Close{}, LineTo{Pt(5, 5)},
			},
		},
		{
			name: "compact numbers",
			d:    "M-5-5L.5.5l1e1-1E1",
			want: []PathElement{MoveTo{Pt(-5, -5)}, LineTo{Pt(0.5, 0.5)}, LineTo{Pt(10.5, -9.5)}},
		},
		{
			name: "empty",
			d:    "",
			want: []PathElement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParsePath(tt.d)
			if err := r.Err(); err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.d, err)
			}
			if diff := cmp.Diff(tt.want, r.Path.Elements(), cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParsePath(%q) elements mismatch (-want +got):\n%s", tt.d, diff)
			}
		})
	}
}

func TestParsePath_Arc(t *testing.T) {
	r := ParsePath("M0,0 A50,50 0 0 1 100,0")
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2", len(r.Segments))
	}
	if r.Current != Pt(100, 0) {
		t.Errorf("Current = %v, want (100, 0)", r.Current)
	}

	// flags may be packed against the following number
	packed := ParsePath("M0,0 a50,50 0 0110,0")
	if err := packed.Err(); err != nil {
		t.Fatalf("packed flags: %v", err)
	}
	if packed.Current != Pt(10, 0) {
		t.Errorf("packed Current = %v, want (10, 0)", packed.Current)
	}
}

func TestParsePath_State(t *testing.T) {
	r := ParsePath("M10,10 L20,10 M50,50 l10,0")
	if r.Start != Pt(50, 50) {
		t.Errorf("Start = %v, want (50, 50)", r.Start)
	}
	if r.Current != Pt(60, 50) {
		t.Errorf("Current = %v, want (60, 50)", r.Current)
	}
	if r.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestParsePath_Errors(t *testing.T) {
	tests := []struct {
		name     string
		d        string
		err      error
		offset   int
		elements int
	}{
		{"lone moveto", "M", ErrMissingNumber, 1, 0},
		{"no current point", "L10,10", ErrNoCurrentPoint, 0, 0},
		{"unknown command", "INVALID", ErrUnknownCommand, 0, 0},
		{"number before command", "10,10", ErrNoCurrentPoint, 0, 0},
		{"unknown after valid", "M0,0 L10,0 X5", ErrUnknownCommand, 11, 2},
		{"truncated group", "M0,0 L10,0 20", ErrMissingNumber, 13, 2},
		{"number after close", "M0,0 L10,0 Z 5", ErrUnexpectedNumber, 13, 3},
		{"bad arc flag", "M0,0 A5,5 0 2 1 10,0", ErrBadFlag, 12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParsePath(tt.d)
			if len(r.Errors) != 1 {
				t.Fatalf("Errors = %v, want exactly one", r.Errors)
			}
			if !errors.Is(r.Err(), tt.err) {
				t.Errorf("error = %v, want %v", r.Err(), tt.err)
			}
			var pe *ParseError
			if !errors.As(r.Err(), &pe) {
				t.Fatalf("error %T is not *ParseError", r.Err())
			}
			if pe.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", pe.Offset, tt.offset)
			}
			if got := len(r.Path.Elements()); got != tt.elements {
				t.Errorf("kept %d elements, want %d", got, tt.elements)
			}
		})
	}
}

func TestParsePath_KeepsPrefixSegments(t *testing.T) {
	r := ParsePath("M0,0 L100,0 L100,?")
	if r.Err() == nil {
		t.Fatal("expected an error")
	}
	if len(r.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(r.Segments))
	}
	if got := r.Segments[0].Length(); got != 100 {
		t.Errorf("kept segment length = %v, want 100", got)
	}
}
