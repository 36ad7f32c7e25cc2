package request

import (
	"sort"

	"github.com/tidwall/sjson"
)

// encodeJSON builds a JSON object from a flat map using sjson.SetBytes
// (rather than encoding/json) so the field order in the wire body is
// deterministic: keys are sorted before insertion.
func encodeJSON(obj map[string]any) []byte {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	body := []byte("{}")
	for _, k := range keys {
		var err error
		body, err = sjson.SetBytes(body, k, obj[k])
		if err != nil {
			continue
		}
	}
	return body
}
