package ai

import (
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object found in model output")

// ExtractJSON locates the single JSON object embedded in free-form model
// output: the span from the first '{' to the last '}'. The model is prompted
// to return only JSON, but some replies wrap the object in prose or code
// fences. Callers must still unmarshal and schema-validate the span; an
// unparsable span fails generation rather than salvaging a partial object.
func ExtractJSON(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return s[start : end+1], nil
}
