package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separatorRuns = regexp.MustCompile(`[_-]+`)

// foldAccents strips combining marks after NFD decomposition so accented
// letters reduce to their ASCII base form.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCountry lower-cases raw and resolves it through the alias table.
// Unknown values pass through unchanged; membership in the valid-country set
// is the caller's concern.
func NormalizeCountry(raw string, aliases map[string]string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// Slugify converts a display name into a lowercase hyphen-separated ASCII
// identifier. Accented characters are folded to their base letters; every
// other non-alphanumeric run collapses to a single hyphen.
func Slugify(display string) string {
	folded, _, err := transform.String(foldAccents, display)
	if err != nil {
		folded = display
	}
	var slug strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				slug.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(slug.String(), "-")
}

// DisplayName turns a raw folder name into a title-cased display name.
// Runs of underscores and hyphens become single spaces, then each
// whitespace-separated token gets an uppercase first letter and a lowercase
// remainder. All-uppercase acronyms lose their case under this rule; that
// matches the source data conventions and is intentional.
func DisplayName(rawFolder string) string {
	cleaned := separatorRuns.ReplaceAllString(rawFolder, " ")
	tokens := strings.Fields(strings.TrimSpace(cleaned))
	for i, token := range tokens {
		first, size := utf8.DecodeRuneInString(token)
		tokens[i] = string(unicode.ToUpper(first)) + strings.ToLower(token[size:])
	}
	return strings.Join(tokens, " ")
}

// CapitalizeCountry upper-cases the first letter of a country key for the
// publish manifest ("uganda" -> "Uganda").
func CapitalizeCountry(key string) string {
	if key == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(first)) + key[size:]
}
