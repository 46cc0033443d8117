package surface

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	flashPolicy     *bluemonday.Policy
	flashPolicyOnce sync.Once
)

// PlainText strips markup from a server supplied message so it can be shown
// verbatim in the flash area.
func PlainText(message string) string {
	flashPolicyOnce.Do(func() {
		flashPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(flashPolicy.Sanitize(message)))
}
