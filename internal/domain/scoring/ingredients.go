package scoring

import "strings"

// IngredientNames returns the product's ingredient names in listed order. The
// structured list wins whenever it is present, even when empty.
func IngredientNames(data ProductIngredients) []string {
	var names []string
	if data.Parsed != nil {
		for _, item := range data.Parsed {
			if name := strings.TrimSpace(item.Name); name != "" {
				names = append(names, name)
			}
		}
		return names
	}
	for _, part := range strings.Split(data.RawText, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Distinct returns the unique non-empty names, first occurrence order kept.
func Distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Partition orders rules by the normalized ingredient list and collects the
// names without a rule. A name listed twice matches (or misses) twice; rules
// whose name is not in the list are dropped.
func Partition(normalized []string, rules []IngredientRule) (matched []IngredientRule, missing []string) {
	byName := make(map[string]IngredientRule, len(rules))
	for _, rule := range rules {
		if _, ok := byName[rule.NormalizedName]; !ok {
			byName[rule.NormalizedName] = rule
		}
	}
	matched = make([]IngredientRule, 0, len(normalized))
	missing = make([]string, 0)
	for _, name := range normalized {
		if rule, ok := byName[name]; ok && name != "" {
			matched = append(matched, rule)
			continue
		}
		missing = append(missing, name)
	}
	return matched, missing
}
