package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// RenderOptions carry per-request presentation data that is not part of the
// Page itself.
type RenderOptions struct {
	// Title heads the page. Renderers fall back to their own default.
	Title string
	// Actions lists the buttons to offer, in order. Empty means every action.
	Actions []surface.Action
	// Forms supplies field constraints (required, length, minimum) keyed by
	// action so renderers can annotate inputs.
	Forms map[surface.Action]model.FormModel
	// Theme is the resolved theme, if any.
	Theme *theme.RendererConfig
	// FormAction is the URL button presses are posted to.
	FormAction string
}

// ActionsOrDefault returns Actions, or every action when none were given.
func (o RenderOptions) ActionsOrDefault() []surface.Action {
	if len(o.Actions) == 0 {
		return surface.Actions()
	}
	return o.Actions
}

// FieldConstraints merges the constraints every form declares for element.
// The first form that binds the element with a schema-backed field wins.
func (o RenderOptions) FieldConstraints(element string) (model.Field, bool) {
	var (
		found model.Field
		ok    bool
	)
	for _, action := range surface.Actions() {
		form, exists := o.Forms[action]
		if !exists {
			continue
		}
		field, bound := form.Field(element)
		if !bound {
			continue
		}
		if !ok || len(field.Validations) > len(found.Validations) {
			found, ok = field, true
		}
	}
	return found, ok
}
