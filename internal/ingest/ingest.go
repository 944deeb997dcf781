// Package ingest loads rectangle sets from disk and turns them into initial
// regions for the intersection engine.
//
// Supported inputs are JSON ({"rects": [...]}), XML (<rects><rect .../></rects>)
// and a line-oriented text format matching the report's input listing. Any
// of them may be xz-compressed.
package ingest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
	"github.com/FocuswithJustin/IntersectionFinder/internal/validation"
)

// Format identifies an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatText Format = "text"
)

// xzMagic is the xz stream header.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Injectable for tests.
var (
	osOpen       = os.Open
	xzNewReader  = xz.NewReader
	readLimited  = validation.ReadLimited
	maxInputSize = int64(validation.MaxInputSize)
)

// Document is a decoded input file.
type Document struct {
	Path       string
	Format     Format
	Compressed bool
	Rects      []region.Bounds
}

// DetectFormat infers the encoding from the file name. A trailing .xz is
// ignored.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".xz")

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	case ".txt", ".rects":
		return FormatText, nil
	default:
		return "", errors.NewUnsupported("input format", filepath.Base(path))
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatXML, FormatText:
		return f, nil
	default:
		return "", errors.NewUnsupported("input format", name)
	}
}

// Load reads and decodes the file at path.
func Load(path string) (*Document, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := osOpen(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	return Read(f, format, path)
}

// Read decodes r as format. xz-compressed streams are detected by their
// header. Both the raw and the decompressed input are size-limited. name is
// used in error messages only.
func Read(r io.Reader, format Format, name string) (*Document, error) {
	data, err := readLimited(r, maxInputSize)
	if err != nil {
		return nil, classifyRead("read", name, err)
	}

	doc := &Document{Path: name, Format: format}
	if bytes.HasPrefix(data, xzMagic) {
		doc.Compressed = true
		if data, err = decompress(data); err != nil {
			return nil, classifyRead("decompress", name, err)
		}
	}

	rects, err := Decode(data, format, name)
	if err != nil {
		return nil, err
	}
	doc.Rects = rects
	return doc, nil
}

// Decode parses uncompressed data.
func Decode(data []byte, format Format, name string) ([]region.Bounds, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data, name)
	case FormatXML:
		return decodeXML(data, name)
	case FormatText:
		return decodeText(data, name)
	default:
		return nil, errors.NewUnsupported("input format", string(format))
	}
}

func decompress(data []byte) ([]byte, error) {
	xr, err := xzNewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return readLimited(xr, maxInputSize)
}

// classifyRead keeps size violations as validation errors and reports
// everything else as I/O.
func classifyRead(operation, name string, err error) error {
	var valErr *errors.ValidationError
	if errors.As(err, &valErr) {
		return errors.Wrap(err, name)
	}
	return errors.NewIO(operation, name, err)
}
