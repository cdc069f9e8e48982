package sanitize

import "strings"

var canonicalLinkKeys = []string{"primaryLinkUrl", "primaryLinkLabel", "secondaryLinks"}

// NormalizeLink coerces a caller-supplied value for a LINKS field into the
// backend's object shape. Strings are wrapped; objects already exhibiting a
// canonical link key pass through unchanged, as do nulls and anything the
// coercion does not recognize; the API gets to reject those itself.
// The coercion is idempotent.
func NormalizeLink(v any) any {
	switch t := v.(type) {
	case string:
		return map[string]any{
			"primaryLinkUrl":   strings.TrimSpace(t),
			"primaryLinkLabel": "",
			"secondaryLinks":   nil,
		}
	case map[string]any:
		for _, key := range canonicalLinkKeys {
			if _, present := t[key]; present {
				return t
			}
		}
		return t
	default:
		return v
	}
}
