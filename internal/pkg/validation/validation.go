package validation

import "regexp"

// Token type name: letters, digits, spaces, hyphens, apostrophes; must start
// with a letter or digit.
var tokenNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-']*$`)

// Hex color code: #RGB or #RRGGBB.
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func IsValidTokenName(name string) bool {
	return name != "" && len(name) <= 100 && tokenNameRe.MatchString(name)
}

func IsValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}
