package export

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Query runs a gjson path against a JSON document. Objects and arrays
// come back indented.
func Query(doc []byte, path string) (string, bool) {
	result := gjson.GetBytes(doc, path)
	if !result.Exists() {
		return "", false
	}
	if result.IsObject() || result.IsArray() {
		return strings.TrimSuffix(string(pretty.Pretty([]byte(result.Raw))), "\n"), true
	}
	return result.String(), true
}
