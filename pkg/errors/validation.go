package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// funcColorRegex matches rgb()/rgba()/hsl()/hsla() with numeric arguments.
var funcColorRegex = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\(\s*[0-9.]+%?\s*(,\s*[0-9.]+%?\s*){2,3}\)$`)

// namedColorRegex matches CSS named colors (e.g. "black", "rebeccapurple").
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)

// ValidateColor validates a fill color before it is written into markup.
//
// Accepted forms:
//   - Hex: #rgb, #rgba, #rrggbb, #rrggbbaa
//   - Functional: rgb(), rgba(), hsl(), hsla()
//   - Named: CSS color keywords, including "none" and "transparent"
//
// Anything else, in particular values containing quotes or angle brackets,
// is rejected so that caller-supplied colors cannot inject attributes.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if hexColorRegex.MatchString(color) ||
		funcColorRegex.MatchString(color) ||
		namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidInput, "invalid color: %q", color)
}

// validOutputExts lists the file extensions a rendered barcode may be written to.
var validOutputExts = map[string]bool{
	".svg":  true,
	".json": true,
}

// ValidateOutputName validates an output filename taken from a manifest.
// It must be a relative path with an .svg or .json extension. Path
// confinement itself is enforced when the name is joined to the output
// directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No null bytes or control characters
//   - No absolute paths
//   - No backslashes (Windows-style paths)
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPath, "output name must be relative (cannot start with /)")
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain backslashes")
	}

	if !validOutputExts[strings.ToLower(filepath.Ext(name))] {
		return New(ErrCodeInvalidPath, "output name must end in .svg or .json: %q", name)
	}

	return nil
}
