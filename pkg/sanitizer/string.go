package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeType collapses whitespace and capitalizes the first letter so that
// "desk" and "Desk" land in the same bucket.
func NormalizeType(assetType string) string {
	normalized := TrimAndNormalize(assetType)
	if normalized == "" {
		return ""
	}
	runes := []rune(normalized)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeDescription only trims the ends; line breaks inside are kept.
func NormalizeDescription(description string) string {
	return strings.TrimSpace(description)
}

func NormalizeIdentifier(id string) string {
	return strings.TrimSpace(id)
}
