package rekog

import (
	"iter"
	"regexp"
)

const (
	urlOctet  = `(?:2(?:[0-4]\d|5[0-5])|1\d\d|\d{1,2})`
	urlIPAddr = urlOctet + `(?:\.` + urlOctet + `){3}`
	urlLabel  = `[0-9a-z](?:[-0-9a-z]*[0-9a-z])?`
	urlTLD    = `[a-z](?:[-a-z]*[a-z])?`
	urlDomain = urlLabel + `(?:\.` + urlLabel + `)*\.` + urlTLD
)

// The host must end on a word boundary so a label is never cut short to fit.
var urlRegex = regexp.MustCompile(
	`(?i)https?://(?:` + urlDomain + `|` + urlIPAddr + `)\b(?::\d+)?(?:/[^\])>\s]*)?`,
)

// FindURLs yields every http(s) URL in text from left to right.
// Repeated URLs are yielded once per occurrence. The sequence can be ranged over
// any number of times.
func FindURLs(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for len(rest) > 0 {
			loc := urlRegex.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[0]:loc[1]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}
