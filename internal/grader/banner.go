package grader

import (
	"fmt"
	"os"
	"strings"
)

// successMarkers holds the pass marker per language tag. Unknown locales
// fall back to English.
var successMarkers = map[string]string{
	"en": "Success",
	"de": "Erfolg",
	"es": "Éxito",
	"fr": "Succès",
	"ja": "成功",
	"ru": "Успех",
	"zh": "成功",
}

// SuccessBanner returns the localized pass marker followed by the literal
// "(success)!" suffix, e.g. `Success (success)!`.
func SuccessBanner() string {
	marker, ok := successMarkers[locale()]
	if !ok {
		marker = successMarkers["en"]
	}
	return fmt.Sprintf("%s (success)!", marker)
}

// locale extracts the two-letter language tag from the usual environment
// variables, in POSIX priority order.
func locale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" || strings.EqualFold(value, "C") || strings.EqualFold(value, "POSIX") {
			continue
		}
		if i := strings.IndexAny(value, "_.@"); i > 0 {
			value = value[:i]
		}
		return strings.ToLower(value)
	}
	return "en"
}
