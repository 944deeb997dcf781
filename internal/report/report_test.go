package report

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

func initial(t *testing.T, x, y, w, h, id int) *region.Region {
	t.Helper()
	r, err := region.NewInitial(x, y, w, h, id)
	if err != nil {
		t.Fatalf("NewInitial: %v", err)
	}
	return r
}

func derived(t *testing.T, x, y, w, h int, ids ...int) *region.Region {
	t.Helper()
	r, err := region.NewDerived(x, y, w, h)
	if err != nil {
		t.Fatalf("NewDerived: %v", err)
	}
	r.MergeContributors(ids)
	return r
}

func sampleReport(t *testing.T) Report {
	t.Helper()
	return Report{
		Inputs: []*region.Region{
			initial(t, 100, 100, 250, 80, 1),
			initial(t, 140, 160, 250, 100, 2),
			initial(t, 160, 140, 350, 190, 3),
		},
		Intersections: []*region.Region{
			derived(t, 140, 160, 210, 20, 1, 2),
			derived(t, 160, 160, 190, 20, 1, 2, 3),
		},
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestJoinIDs(t *testing.T) {
	tests := []struct {
		ids  []int
		want string
	}{
		{nil, ""},
		{[]int{2}, "2"},
		{[]int{1, 3}, "1 and 3"},
		{[]int{1, 3, 4}, "1, 3 and 4"},
		{[]int{1, 2, 3, 4, 5}, "1, 2, 3, 4 and 5"},
	}
	for _, tt := range tests {
		if got := JoinIDs(tt.ids); got != tt.want {
			t.Errorf("JoinIDs(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport(t)); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	want := `Inputs:
1: Rectangle at (100,100), delta_x=250, delta_y=80.
2: Rectangle at (140,160), delta_x=250, delta_y=100.
3: Rectangle at (160,140), delta_x=350, delta_y=190.
Intersections:
1: Between rectangle 1 and 2 at (140,160), delta_x=210, delta_y=20.
2: Between rectangle 1, 2 and 3 at (160,160), delta_x=190, delta_y=20.
`
	if got := buf.String(); got != want {
		t.Errorf("WriteText() output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_SourceAndEmpty(t *testing.T) {
	rep := Report{
		Source: "a.json",
		Inputs: []*region.Region{initial(t, 1, 1, 1, 1, 1), initial(t, 5, 5, 1, 1, 2)},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, rep); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if lines[0] != "Source: a.json" {
		t.Errorf("first line = %q, want source header", lines[0])
	}
	if last := lines[len(lines)-1]; last != "Intersections:" {
		t.Errorf("last line = %q, want empty intersections section", last)
	}
}

func TestWriteText_WriteError(t *testing.T) {
	err := WriteText(failingWriter{}, sampleReport(t))
	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("WriteText() error = %v, want *IOError", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport(t)); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(doc.Inputs) != 3 || len(doc.Intersections) != 2 {
		t.Fatalf("got %d inputs and %d intersections, want 3 and 2", len(doc.Inputs), len(doc.Intersections))
	}
	if in := doc.Inputs[1]; in != (Input{ID: 2, X: 140, Y: 160, DeltaX: 250, DeltaY: 100}) {
		t.Errorf("inputs[1] = %+v", in)
	}
	last := doc.Intersections[1]
	if len(last.Contributors) != 3 || last.Contributors[2] != 3 || last.X != 160 || last.DeltaX != 190 {
		t.Errorf("intersections[1] = %+v", last)
	}
	if strings.Contains(buf.String(), `"source"`) {
		t.Errorf("source should be omitted when empty")
	}
}

func TestWriteJSON_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, Report{}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"inputs": []`) || !strings.Contains(out, `"intersections": []`) {
		t.Errorf("empty lists should encode as [], got:\n%s", out)
	}
}

func TestWriteJSON_MarshalError(t *testing.T) {
	orig := jsonMarshalIndent
	defer func() { jsonMarshalIndent = orig }()
	jsonMarshalIndent = func(any, string, string) ([]byte, error) { return nil, io.ErrUnexpectedEOF }

	if err := WriteJSON(&bytes.Buffer{}, Report{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("WriteJSON() error = %v, want wrapped marshal error", err)
	}
}

func TestWrite(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON} {
		var buf bytes.Buffer
		if err := Write(&buf, f, sampleReport(t)); err != nil {
			t.Errorf("Write(%s) error = %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", f)
		}
	}
	if err := Write(&bytes.Buffer{}, Format("yaml"), Report{}); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Write(yaml) error = %v, want ErrUnsupported", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %q, %v", f, err)
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("ParseFormat(csv) error = %v, want ErrUnsupported", err)
	}
}
