package vanilla

// classPrefix namespaces every class the page template emits so the bundled
// stylesheet and a theme stylesheet can target them.
const classPrefix = "wishlist-"

var chromeParts = []string{"page", "flash", "form", "section", "actions", "table", "hidden"}

// chromeClasses maps template slots to CSS class names, e.g. "flash" to
// "wishlist-flash".
func chromeClasses() map[string]string {
	classes := make(map[string]string, len(chromeParts))
	for _, part := range chromeParts {
		classes[part] = classPrefix + part
	}
	return classes
}
