package apispec

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_ExposesWishlistOperations(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("default spec: %v", err)
	}

	want := []string{
		OpCreateItem, OpCreateWishlist, OpDeleteItem, OpDeleteWishlist,
		OpGetItem, OpGetWishlist, OpListWishlists, OpUpdateItem, OpUpdateWishlist,
	}
	if diff := cmp.Diff(want, spec.OperationIDs()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	routes := map[string][2]string{
		OpCreateWishlist: {http.MethodPost, "/wishlists"},
		OpGetWishlist:    {http.MethodGet, "/wishlists/{wishlist_id}"},
		OpDeleteItem:     {http.MethodDelete, "/wishlists/{wishlist_id}/items/{item_id}"},
	}
	for id, route := range routes {
		op, err := spec.Operation(id)
		if err != nil {
			t.Fatalf("operation %s: %v", id, err)
		}
		if op.Method != route[0] || op.Path != route[1] {
			t.Fatalf("%s: want %s %s, got %s %s", id, route[0], route[1], op.Method, op.Path)
		}
	}
}

func TestOperation_RequestBodySchema(t *testing.T) {
	op, err := MustDefault().Operation(OpCreateItem)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if !op.HasBody() {
		t.Fatalf("expected createItem to declare a body")
	}

	body := op.RequestBody
	if body.Type != "object" {
		t.Fatalf("expected object body, got %q", body.Type)
	}
	price, ok := body.Properties["price"]
	if !ok || price.Type != "integer" {
		t.Fatalf("expected integer price property, got %#v", price)
	}
	if price.Minimum == nil || *price.Minimum != 0 {
		t.Fatalf("expected price minimum 0, got %v", price.Minimum)
	}
	if !body.IsRequired("name") || body.IsRequired("id") {
		t.Fatalf("unexpected required set: %v", body.Required)
	}
	if name := body.Properties["name"]; name.MaxLength == nil || *name.MaxLength != 64 {
		t.Fatalf("expected name maxLength 64, got %v", name.MaxLength)
	}

	get, err := MustDefault().Operation(OpGetItem)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if get.HasBody() {
		t.Fatalf("expected getItem without body")
	}
}

func TestSpec_UnknownOperation(t *testing.T) {
	_, err := MustDefault().Operation("launchRocket")
	if !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestValidateBody(t *testing.T) {
	spec := MustDefault()

	valid := map[string]any{
		"name": "books", "user_id": 1, "is_enabled": true, "items": []any{},
	}
	if err := spec.ValidateBody(OpCreateWishlist, valid); err != nil {
		t.Fatalf("expected valid body, got %v", err)
	}

	invalid := map[string]any{
		"wishlist_id": 1, "name": "lamp", "category": "home", "price": -5, "description": "",
	}
	err := spec.ValidateBody(OpCreateItem, invalid)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["price"]) == 0 {
		t.Fatalf("expected price violation, got %#v", verr.Fields)
	}

	if err := spec.ValidateBody(OpGetWishlist, nil); err != nil {
		t.Fatalf("operations without body should not validate: %v", err)
	}
}

func TestLoad_RejectsEmptyDocument(t *testing.T) {
	if _, err := Load(context.Background(), []byte("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Load(context.Background(), []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{}}`)); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}
