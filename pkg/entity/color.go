package entity

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor validates a hex color ("#rgb" or "#rrggbb") and returns it in
// lower-case six digit form. Empty input yields fallback.
func NormalizeColor(raw, fallback string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	c, err := colorful.Hex(raw)
	if err != nil {
		return fallback, fmt.Errorf("entity: invalid color %q", raw)
	}
	return c.Hex(), nil
}
