package vanilla

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicy     *bluemonday.Policy
	descriptionPolicyOnce sync.Once
)

// RenderMarkdown converts an item description to sanitized HTML. Raw HTML in
// the source is dropped before the UGC policy runs.
func RenderMarkdown(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.UGCPolicy()
	})

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	out := markdown.ToHTML([]byte(source), p, renderer)
	return strings.TrimSpace(string(descriptionPolicy.SanitizeBytes(out)))
}

func markdownFilter(input any, _ any) (any, error) {
	text, _ := input.(string)
	return RenderMarkdown(text), nil
}
