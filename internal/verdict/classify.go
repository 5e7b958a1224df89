package verdict

import "strings"

type phrase struct {
	text string
	// exact phrases are matched against the raw reply, the rest against
	// its lowercase form.
	exact bool
}

// falsePositivePhrases are reply fragments that mark a finding set as a
// false positive.
var falsePositivePhrases = []phrase{
	{text: "not a vulnerability", exact: true},
	{text: "is not a valid vulnerability", exact: true},
	{text: "appears to be a false positive"},
	{text: "is no vulnerability present"},
	{text: "is a false positive"},
	{text: "likely a false positive"},
	{text: "may be a false positive"},
	{text: "seems to be a false positive"},
	{text: "most likely a false positive"},
	{text: "does not contain a vulnerability"},
	{text: "not appear to have a potential vulnerability"},
	{text: "does not seem to have any obvious vulnerability"},
	{text: "does not introduce a vulnerability"},
	{text: "not suggest any security issues"},
	{text: "does not appear to be vulnerable"},
	{text: "does not appear to have any clear vulnerability"},
	{text: "does not appear to have any potential vulnerability"},
	{text: "is not valid in this case"},
	{text: "does not appear to be valid"},
	{text: "does not appear to contain any potential vulnerability"},
}

// Classify maps a model reply to Valid or FalsePositive. An empty reply, or
// one containing any false-positive phrase, is a false positive.
func Classify(text string) string {
	if text == "" {
		return FalsePositive
	}
	lower := strings.ToLower(text)
	for _, p := range falsePositivePhrases {
		haystack := lower
		if p.exact {
			haystack = text
		}
		if strings.Contains(haystack, p.text) {
			return FalsePositive
		}
	}
	return Valid
}
