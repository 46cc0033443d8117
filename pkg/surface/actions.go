package surface

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/model"
)

// Action names a button on the page.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionRetrieve     Action = "retrieve"
	ActionDelete       Action = "delete"
	ActionClear        Action = "clear"
	ActionSearch       Action = "search"
	ActionCreateItem   Action = "create-item"
	ActionRetrieveItem Action = "retrieve-item"
	ActionUpdateItem   Action = "update-item"
	ActionDeleteItem   Action = "delete-item"
	ActionClearItem    Action = "clear-item"
)

type actionInfo struct {
	label     string
	operation string
	bindings  []model.Binding
}

var (
	bindWishlistID   = model.Binding{Element: FieldWishlistID, Property: "id", Type: model.FieldTypeInteger}
	bindWishlistName = model.Binding{Element: FieldWishlistName, Property: "name"}
	bindEnabled      = model.Binding{Element: FieldWishlistEnabled, Property: "is_enabled", Type: model.FieldTypeBoolean}
	bindUserID       = model.Binding{Element: FieldWishlistUID, Property: "user_id", Type: model.FieldTypeInteger}
	bindOwner        = model.Binding{Element: FieldWishlistID, Property: "wishlist_id", Type: model.FieldTypeInteger}
	bindItemID       = model.Binding{Element: FieldItemID, Property: "id", Type: model.FieldTypeInteger}
	bindItemName     = model.Binding{Element: FieldItemName, Property: "name"}
	bindCategory     = model.Binding{Element: FieldItemCategory, Property: "category"}
	bindPrice        = model.Binding{Element: FieldItemPrice, Property: "price", Type: model.FieldTypeInteger}
	bindDescription  = model.Binding{Element: FieldItemDescription, Property: "description"}
)

var actionOrder = []Action{
	ActionCreate,
	ActionUpdate,
	ActionRetrieve,
	ActionDelete,
	ActionSearch,
	ActionClear,
	ActionCreateItem,
	ActionRetrieveItem,
	ActionUpdateItem,
	ActionDeleteItem,
	ActionClearItem,
}

var actions = map[Action]actionInfo{
	ActionCreate: {
		label:     "Create",
		operation: apispec.OpCreateWishlist,
		bindings:  []model.Binding{bindWishlistName, bindUserID, bindEnabled},
	},
	ActionUpdate: {
		label:     "Update",
		operation: apispec.OpUpdateWishlist,
		bindings:  []model.Binding{bindWishlistID, bindWishlistName, bindUserID, bindEnabled},
	},
	ActionRetrieve: {
		label:     "Retrieve",
		operation: apispec.OpGetWishlist,
		bindings:  []model.Binding{bindWishlistID},
	},
	ActionDelete: {
		label:     "Delete",
		operation: apispec.OpDeleteWishlist,
		bindings:  []model.Binding{bindWishlistID},
	},
	ActionSearch: {
		label:     "Search",
		operation: apispec.OpListWishlists,
		bindings:  []model.Binding{bindWishlistName, bindUserID, bindEnabled},
	},
	ActionClear: {label: "Clear"},
	ActionCreateItem: {
		label:     "Create Item",
		operation: apispec.OpCreateItem,
		bindings:  []model.Binding{bindOwner, bindItemName, bindCategory, bindPrice, bindDescription},
	},
	ActionRetrieveItem: {
		label:     "Retrieve Item",
		operation: apispec.OpGetItem,
		bindings:  []model.Binding{bindOwner, bindItemID},
	},
	ActionUpdateItem: {
		label:     "Update Item",
		operation: apispec.OpUpdateItem,
		bindings:  []model.Binding{bindOwner, bindItemID, bindItemName, bindCategory, bindPrice, bindDescription},
	},
	ActionDeleteItem: {
		label:     "Delete Item",
		operation: apispec.OpDeleteItem,
		bindings:  []model.Binding{bindOwner, bindItemID},
	},
	ActionClearItem: {label: "Clear Item"},
}

// Actions returns every button in page order.
func Actions() []Action {
	return append([]Action(nil), actionOrder...)
}

// ParseAction accepts an action name or its button id ("create-btn").
func ParseAction(name string) (Action, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "-btn")
	action := Action(key)
	if _, ok := actions[action]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return action, nil
}

// Button returns the element id of the action's button.
func (a Action) Button() string {
	return string(a) + "-btn"
}

// Label returns the button caption.
func (a Action) Label() string {
	if info, ok := actions[a]; ok {
		return info.label
	}
	return string(a)
}

// Operation returns the API operation id the action calls, or "" for actions
// that only touch the page.
func (a Action) Operation() string {
	return actions[a].operation
}

// Bindings returns the page inputs the action reads, labelled for display.
func (a Action) Bindings() []model.Binding {
	info := actions[a]
	out := make([]model.Binding, len(info.bindings))
	for i, binding := range info.bindings {
		binding.Label = Label(binding.Element)
		out[i] = binding
	}
	return out
}

// Forms builds the form model of every action that calls the API, keyed by
// action. Field constraints come from the request schemas in spec.
func Forms(spec *apispec.Spec) (map[Action]model.FormModel, error) {
	builder := model.NewBuilder()
	out := make(map[Action]model.FormModel, len(actions))
	for _, action := range actionOrder {
		opID := action.Operation()
		if opID == "" {
			continue
		}
		op, err := spec.Operation(opID)
		if err != nil {
			return nil, fmt.Errorf("surface: %s: %w", action, err)
		}
		form, err := builder.Build(op, action.Bindings())
		if err != nil {
			return nil, fmt.Errorf("surface: %s: %w", action, err)
		}
		out[action] = form
	}
	return out, nil
}
