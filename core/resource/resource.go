// Package resource implements the one CRUD page contract every entity page
// follows: fetch the collection on load, validate-then-submit on create and
// edit, delete and toggle with an immediate call, and always refetch after a
// mutation instead of patching locally.
package resource

import (
	"context"
	"fmt"
	"strconv"
)

type Kind int

const (
	Text Kind = iota
	LongText
	Number
	Email
	Password
	Select
	File
	Bool
	Date
	Rating
)

// Field describes one form field of an entity.
type Field struct {
	Name     string // JSON and form name
	Label    string
	Kind     Kind
	Required bool
	// WriteOnly fields (passwords, binaries) are never pre-populated on
	// edit and are optional on update.
	WriteOnly bool
	Options   []string // static choices for Select fields
	Max       int      // upper bound for Rating fields
}

// Endpoints binds a schema to its backend paths. Item-level patterns hold
// one %s for the record id.
type Endpoints struct {
	Collection string // GET list; also POST create unless Create is set
	Create     string
	Item       string // PUT update / DELETE unless overridden below
	Update     string
	Delete     string
	Toggle     string // optional boolean-flip endpoint
	Multipart  bool   // submit as multipart form instead of JSON
	Upsert     bool   // create-or-update via POST to the collection
}

func (e Endpoints) createPath() string {
	if e.Create != "" {
		return e.Create
	}
	return e.Collection
}

func (e Endpoints) updatePath(id string) string {
	if e.Update != "" {
		return fmt.Sprintf(e.Update, id)
	}
	return fmt.Sprintf(e.Item, id)
}

func (e Endpoints) deletePath(id string) string {
	if e.Delete != "" {
		return fmt.Sprintf(e.Delete, id)
	}
	return fmt.Sprintf(e.Item, id)
}

// Schema is the per-entity configuration of the generic page: its field
// list, required set and endpoint bindings as data, not code.
type Schema struct {
	Name      string // plural display name
	Singular  string
	IDField   string
	Fields    []Field
	Endpoints Endpoints

	// Check runs extra entity-specific validation after the required-field
	// pass; entries returned here block the submit.
	Check func(vals Values) []FieldCheckError
}

// FieldCheckError mirrors core.FieldError without the import cycle risk for
// schema authors.
type FieldCheckError struct {
	Field string
	Error string
}

func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Record is one row of the fetched collection, as the backend returned it.
type Record map[string]interface{}

// ID extracts the record identifier named by the schema; backend ids arrive
// as JSON numbers or strings depending on the entity.
func (r Record) ID(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// StringOr renders a possibly-absent field (e.g. a joined relation's name)
// with an explicit fallback instead of silently rendering nothing.
func (r Record) StringOr(key, fallback string) string {
	switch v := r[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fallback
}

// Values holds the submitted form values, keyed by field name.
type Values map[string]string

// Upload is an attached binary read from the submitted form.
type Upload struct {
	FieldName string
	Filename  string
	Content   []byte
}

// Doer is the slice of the backend client the engine needs.
type Doer interface {
	GetJSON(ctx context.Context, path string, out interface{}) error
	PostJSON(ctx context.Context, path string, body, out interface{}) error
	PutJSON(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	SendMultipart(ctx context.Context, method, path string, fields map[string]string, files []Upload, out interface{}) error
}
