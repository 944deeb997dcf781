package ingest

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

//go:embed schema.json
var schemaJSON []byte

// rectSchema checks shape only. Positivity is left to region construction
// so that it surfaces as a geometry error.
var rectSchema = mustResolveSchema(schemaJSON)

func mustResolveSchema(data []byte) *jsonschema.Resolved {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		panic(fmt.Sprintf("ingest: invalid embedded schema: %v", err))
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("ingest: cannot resolve embedded schema: %v", err))
	}
	return resolved
}

type jsonDocument struct {
	Rects []region.Bounds `json:"rects"`
}

func decodeJSON(data []byte, name string) ([]region.Bounds, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, errors.NewParse("JSON", name, err.Error())
	}
	if err := rectSchema.Validate(instance); err != nil {
		return nil, errors.NewParse("JSON", name, fmt.Sprintf("does not match schema: %v", err))
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParse("JSON", name, err.Error())
	}
	return doc.Rects, nil
}
