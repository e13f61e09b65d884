package model

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchema))
	})
	return schema, schemaErr
}

// ValidateJSON validates raw persisted document JSON against document.schema.json.
func ValidateJSON(b []byte) error {
	return validate(gojsonschema.NewBytesLoader(b))
}

// ValidateMap validates a generic map, e.g. a decoded request body.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(doc gojsonschema.JSONLoader) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load document schema: %w", err)
	}
	res, err := s.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
