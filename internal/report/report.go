// Package report renders input rectangles and the intersections found among
// them, either as the human-readable listing or as JSON.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Injectable for tests.
var jsonMarshalIndent = json.MarshalIndent

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", errors.NewUnsupported("output format", name)
	}
}

// Report is one input set and its closure.
type Report struct {
	// Source names the input. It is printed only when set.
	Source        string
	Inputs        []*region.Region
	Intersections []*region.Region
}

// Input is the JSON form of an initial region.
type Input struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	DeltaX int `json:"delta_x"`
	DeltaY int `json:"delta_y"`
}

// Intersection is the JSON form of a derived region.
type Intersection struct {
	Contributors []int `json:"contributors"`
	X            int   `json:"x"`
	Y            int   `json:"y"`
	DeltaX       int   `json:"delta_x"`
	DeltaY       int   `json:"delta_y"`
}

// Document is the JSON form of a Report.
type Document struct {
	Source        string         `json:"source,omitempty"`
	Inputs        []Input        `json:"inputs"`
	Intersections []Intersection `json:"intersections"`
}

// Write renders rep to w in the given format.
func Write(w io.Writer, format Format, rep Report) error {
	switch format {
	case FormatText:
		return WriteText(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	default:
		return errors.NewUnsupported("output format", string(format))
	}
}

// WriteText writes the listing:
//
//	Inputs:
//	1: Rectangle at (100,100), delta_x=250, delta_y=80.
//	Intersections:
//	1: Between rectangle 1 and 3 at (140,160), delta_x=210, delta_y=20.
func WriteText(w io.Writer, rep Report) error {
	bw := bufio.NewWriter(w)

	if rep.Source != "" {
		fmt.Fprintf(bw, "Source: %s\n", rep.Source)
	}
	fmt.Fprintln(bw, "Inputs:")
	for _, r := range rep.Inputs {
		fmt.Fprintf(bw, "%d: Rectangle at (%d,%d), delta_x=%d, delta_y=%d.\n",
			r.OriginID(), r.X(), r.Y(), r.Width(), r.Height())
	}
	fmt.Fprintln(bw, "Intersections:")
	for i, r := range rep.Intersections {
		fmt.Fprintf(bw, "%d: Between rectangle %s at (%d,%d), delta_x=%d, delta_y=%d.\n",
			i+1, JoinIDs(r.IDs()), r.X(), r.Y(), r.Width(), r.Height())
	}

	if err := bw.Flush(); err != nil {
		return errors.NewIO("write", "report", err)
	}
	return nil
}

// WriteJSON writes rep as an indented JSON document followed by a newline.
func WriteJSON(w io.Writer, rep Report) error {
	data, err := jsonMarshalIndent(NewDocument(rep), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.NewIO("write", "report", err)
	}
	return nil
}

// NewDocument converts rep to its JSON form. Empty lists encode as [].
func NewDocument(rep Report) Document {
	doc := Document{
		Source:        rep.Source,
		Inputs:        make([]Input, 0, len(rep.Inputs)),
		Intersections: make([]Intersection, 0, len(rep.Intersections)),
	}
	for _, r := range rep.Inputs {
		doc.Inputs = append(doc.Inputs, Input{
			ID: r.OriginID(), X: r.X(), Y: r.Y(), DeltaX: r.Width(), DeltaY: r.Height(),
		})
	}
	for _, r := range rep.Intersections {
		doc.Intersections = append(doc.Intersections, Intersection{
			Contributors: r.IDs(), X: r.X(), Y: r.Y(), DeltaX: r.Width(), DeltaY: r.Height(),
		})
	}
	return doc
}

// JoinIDs formats ids as "1", "1 and 3" or "1, 3 and 4".
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
