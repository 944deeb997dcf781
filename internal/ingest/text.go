package ingest

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// textFile is a list of rectangles, one per line, written as
//
//	(100,100) delta_x=250 delta_y=80
//	2: Rectangle at (120,200), delta_x=250, delta_y=150.
//
// The second form is what the text report prints for its inputs.
type textFile struct {
	Rects []*textRect `@@*`
}

type textRect struct {
	Pos    lexer.Position
	Index  *int `( @Int ":" )?`
	X      int  `( "Rectangle" "at" )? "(" @Int ","`
	Y      int  `@Int ")" ","?`
	DeltaX int  `"delta_x" "=" @Int ","?`
	DeltaY int  `"delta_y" "=" @Int "."?`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Ident", Pattern: `[A-Za-z_]+`},
	// Signed so that negative values reach region validation.
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Punct", Pattern: `[(),:=.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var textParser = participle.MustBuild[textFile](
	participle.Lexer(textLexer),
	participle.Elide("Comment", "Whitespace"),
)

func decodeText(data []byte, name string) ([]region.Bounds, error) {
	file, err := textParser.ParseBytes(name, data)
	if err != nil {
		return nil, errors.NewParse("text", name, err.Error())
	}

	rects := make([]region.Bounds, 0, len(file.Rects))
	for i, r := range file.Rects {
		if r.Index != nil && *r.Index != i+1 {
			return nil, errors.NewParse("text", name,
				fmt.Sprintf("line %d: rectangle numbered %d at position %d", r.Pos.Line, *r.Index, i+1))
		}
		rects = append(rects, region.Bounds{X: r.X, Y: r.Y, Width: r.DeltaX, Height: r.DeltaY})
	}
	return rects, nil
}
