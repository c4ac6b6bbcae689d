package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed proposal.schema.json
var schemaBytes []byte

// ValidateJSON validates raw JSON against the proposal content schema.
// Generation fails closed on a schema error: nothing is persisted.
func ValidateJSON(raw []byte) error {
	return validate(gojsonschema.NewBytesLoader(raw))
}

// ValidateMap validates an already-decoded content map against the schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	var msgs []string
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
