package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// rectSelector matches every rect element under the document's rects root.
var rectSelector = xpath.MustCompile("/rects/rect")

func decodeXML(data []byte, name string) ([]region.Bounds, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XML", name, err.Error())
	}
	if xmlquery.FindOne(doc, "/rects") == nil {
		return nil, errors.NewParse("XML", name, "missing <rects> root element")
	}

	nodes := xmlquery.QuerySelectorAll(doc, rectSelector)
	rects := make([]region.Bounds, 0, len(nodes))
	for i, n := range nodes {
		var b region.Bounds
		fields := []struct {
			attr string
			dst  *int
		}{
			{"x", &b.X},
			{"y", &b.Y},
			{"delta_x", &b.Width},
			{"delta_y", &b.Height},
		}
		for _, f := range fields {
			raw := strings.TrimSpace(n.SelectAttr(f.attr))
			if raw == "" {
				return nil, errors.NewParse("XML", name, fmt.Sprintf("rect %d: missing attribute %s", i+1, f.attr))
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.NewParse("XML", name, fmt.Sprintf("rect %d: attribute %s=%q is not an integer", i+1, f.attr, raw))
			}
			*f.dst = v
		}
		rects = append(rects, b)
	}
	return rects, nil
}
