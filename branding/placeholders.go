package branding

import "strings"

// Placeholder tokens that are replaced in overriding style sheets.
const (
	PlaceholderApplicationName    = "{applicationName}"
	PlaceholderApplicationVersion = "{applicationVersion}"
	PlaceholderToolVersion        = "{toolVersion}"
)

// Placeholders holds the runtime values substituted into overriding style sheets.
// Unset values are substituted with the empty string.
type Placeholders struct {
	ApplicationName    string
	ApplicationVersion string
	ToolVersion        string
}

// Substitute replaces every placeholder token in text with its value.
// Replacement is literal and happens in a single pass, so values that themselves
// contain placeholder tokens are not expanded again.
func (p Placeholders) Substitute(text string) string {
	return strings.NewReplacer(
		PlaceholderApplicationName, p.ApplicationName,
		PlaceholderApplicationVersion, p.ApplicationVersion,
		PlaceholderToolVersion, p.ToolVersion,
	).Replace(text)
}
