package productrepo

import (
	"encoding/json"
	"strings"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// decodeParsed reads the parsed_ingredients column. Anything other than a JSON
// array yields nil so the raw text is used; array entries without a string
// name become empty names.
func decodeParsed(raw []byte) []scoring.ParsedIngredient {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil
	}
	out := make([]scoring.ParsedIngredient, 0, len(items))
	for _, item := range items {
		var entry struct {
			Name any `json:"name"`
		}
		_ = json.Unmarshal(item, &entry)
		name, _ := entry.Name.(string)
		out = append(out, scoring.ParsedIngredient{Name: name})
	}
	return out
}

func encodeParsed(items []scoring.ParsedIngredient) ([]byte, error) {
	if items == nil {
		return nil, nil
	}
	return json.Marshal(items)
}
