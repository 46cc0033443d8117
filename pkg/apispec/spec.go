package apispec

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed wishlist.yaml
var embeddedDocument []byte

const (
	OpCreateWishlist = "createWishlist"
	OpListWishlists  = "listWishlists"
	OpGetWishlist    = "getWishlist"
	OpUpdateWishlist = "updateWishlist"
	OpDeleteWishlist = "deleteWishlist"
	OpCreateItem     = "createItem"
	OpGetItem        = "getItem"
	OpUpdateItem     = "updateItem"
	OpDeleteItem     = "deleteItem"
)

// ErrUnknownOperation is returned for operation ids missing from the document.
var ErrUnknownOperation = errors.New("apispec: unknown operation")

// Operation is the console's view of an OpenAPI operation.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	RequestBody Schema

	bodySchema *openapi3.Schema
}

// HasBody reports whether the operation declares a JSON request body.
func (o Operation) HasBody() bool {
	return o.bodySchema != nil
}

// Spec holds the parsed document keyed by operation id.
type Spec struct {
	title      string
	version    string
	operations map[string]Operation
}

var (
	defaultOnce sync.Once
	defaultSpec *Spec
	defaultErr  error
)

// Default parses the embedded document once and returns the shared Spec.
func Default() (*Spec, error) {
	defaultOnce.Do(func() {
		defaultSpec, defaultErr = Load(context.Background(), embeddedDocument)
	})
	return defaultSpec, defaultErr
}

// MustDefault panics when the embedded document does not parse. Useful for
// init-time wiring and tests.
func MustDefault() *Spec {
	spec, err := Default()
	if err != nil {
		panic(err)
	}
	return spec
}

// Load parses and validates an OpenAPI document (JSON or YAML).
func Load(ctx context.Context, data []byte) (*Spec, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apispec: document does not contain any paths")
	}

	spec := &Spec{operations: make(map[string]Operation)}
	if doc.Info != nil {
		spec.title = doc.Info.Title
		spec.version = doc.Info.Version
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			collectOperation(spec.operations, method, path, op)
		}
	}

	if len(spec.operations) == 0 {
		return nil, errors.New("apispec: no operations extracted")
	}
	return spec, nil
}

func collectOperation(target map[string]Operation, method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	out := Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Summary: op.Summary,
	}
	if body := jsonBodySchema(op.RequestBody); body != nil {
		out.bodySchema = body
		out.RequestBody = convertSchema(body)
	}
	target[id] = out
}

func jsonBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	mt := ref.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

// Title reports the document title.
func (s *Spec) Title() string { return s.title }

// Version reports the document version.
func (s *Spec) Version() string { return s.version }

// Operation looks up an operation by id.
func (s *Spec) Operation(id string) (Operation, error) {
	if s == nil {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, id)
	}
	op, ok := s.operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, id)
	}
	return op, nil
}

// OperationIDs lists the known operation ids in sorted order.
func (s *Spec) OperationIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.operations))
	for id := range s.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ValidateBody checks payload against the operation's request body schema.
// The payload is normalised through encoding/json so typed structs validate
// the same way the service sees them on the wire.
func (s *Spec) ValidateBody(id string, payload any) error {
	op, err := s.Operation(id)
	if err != nil {
		return err
	}
	if op.bodySchema == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("apispec: encode %s body: %w", id, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("apispec: decode %s body: %w", id, err)
	}

	if err := op.bodySchema.VisitJSON(generic, openapi3.MultiErrors()); err != nil {
		return newValidationError(id, err)
	}
	return nil
}
