package resource

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
)

const (
	requiredText = "this field is required"
	numberText   = "enter a valid number"
	emailText    = "enter a valid email address"
	ratingText   = "rating is out of range"
)

// Manager drives one entity's resource page against the backend.
type Manager struct {
	Schema Schema
	doer   Doer
	logger core.Logger
}

func NewManager(schema Schema, doer Doer, logger core.Logger) *Manager {
	return &Manager{Schema: schema, doer: doer, logger: logger}
}

// List fetches the full collection. A failure leaves the caller with an
// empty list and a transient error; there is no retry.
func (m *Manager) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := m.doer.GetJSON(ctx, m.Schema.Endpoints.Collection, &records); err != nil {
		return nil, errors.Wrapf(err, "fetching %s", m.Schema.Name)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Create validates the submitted values and posts them. A ValidationError
// is returned before any network call; a backend error keeps the entered
// values intact for the caller to re-render.
func (m *Manager) Create(ctx context.Context, vals Values, files []Upload) error {
	if err := m.validate(vals, files, false); err != nil {
		return err
	}
	ep := m.Schema.Endpoints
	if ep.Multipart {
		err := m.doer.SendMultipart(ctx, http.MethodPost, ep.createPath(), m.formFields(vals), files, nil)
		return errors.Wrapf(err, "creating %s", m.Schema.Singular)
	}
	err := m.doer.PostJSON(ctx, ep.createPath(), m.body(vals), nil)
	return errors.Wrapf(err, "creating %s", m.Schema.Singular)
}

// Update routes the same validated form to the update endpoint. Write-only
// fields left empty are omitted rather than overwritten.
func (m *Manager) Update(ctx context.Context, id string, vals Values, files []Upload) error {
	if err := m.validate(vals, files, true); err != nil {
		return err
	}
	ep := m.Schema.Endpoints
	if ep.Upsert {
		err := m.doer.PostJSON(ctx, ep.createPath(), m.body(vals), nil)
		return errors.Wrapf(err, "upserting %s", m.Schema.Singular)
	}
	if ep.Multipart {
		err := m.doer.SendMultipart(ctx, http.MethodPut, ep.updatePath(id), m.formFields(vals), files, nil)
		return errors.Wrapf(err, "updating %s", m.Schema.Singular)
	}
	err := m.doer.PutJSON(ctx, ep.updatePath(id), m.body(vals), nil)
	return errors.Wrapf(err, "updating %s", m.Schema.Singular)
}

// Delete posts straight to the delete endpoint; there is no confirmation
// step in this design.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return errors.Wrapf(m.doer.Delete(ctx, m.Schema.Endpoints.deletePath(id)), "deleting %s", m.Schema.Singular)
}

// Toggle flips the entity's boolean server-side field in one round-trip.
func (m *Manager) Toggle(ctx context.Context, id string) error {
	ep := m.Schema.Endpoints
	if ep.Toggle == "" {
		return errors.Errorf("%s has no toggle endpoint", m.Schema.Name)
	}
	return errors.Wrapf(m.doer.PutJSON(ctx, fmt.Sprintf(ep.Toggle, id), nil, nil), "toggling %s", m.Schema.Singular)
}

// validate runs the required-field pass then the schema's own Check hook.
// Nothing reaches the network when it fails.
func (m *Manager) validate(vals Values, files []Upload, forUpdate bool) error {
	var flds []core.FieldError

	for _, f := range m.Schema.Fields {
		val := vals[f.Name]

		if f.Kind == File {
			if f.Required && !forUpdate && !hasFile(files, f.Name) && val == "" {
				flds = append(flds, core.FieldError{Field: f.Name, Error: requiredText})
			}
			continue
		}
		if f.WriteOnly && forUpdate && val == "" {
			continue
		}
		if f.Required {
			if err := core.Validate.Var(val, "required"); err != nil {
				flds = append(flds, core.FieldError{Field: f.Name, Error: requiredText})
				continue
			}
		}
		if val == "" {
			continue
		}
		switch f.Kind {
		case Number:
			if err := core.Validate.Var(val, "numeric"); err != nil {
				flds = append(flds, core.FieldError{Field: f.Name, Error: numberText})
			}
		case Email:
			if err := core.Validate.Var(val, "email"); err != nil {
				flds = append(flds, core.FieldError{Field: f.Name, Error: emailText})
			}
		case Rating:
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 || (f.Max > 0 && n > f.Max) {
				flds = append(flds, core.FieldError{Field: f.Name, Error: ratingText})
			}
		}
	}

	if m.Schema.Check != nil {
		for _, ce := range m.Schema.Check(vals) {
			flds = append(flds, core.FieldError{Field: ce.Field, Error: ce.Error})
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// body converts the form values into the JSON shape the backend expects,
// typed per field kind. Empty write-only values are dropped.
func (m *Manager) body(vals Values) map[string]interface{} {
	body := make(map[string]interface{}, len(m.Schema.Fields))
	for _, f := range m.Schema.Fields {
		val, ok := vals[f.Name]
		if !ok && f.Kind != Bool {
			continue
		}
		if val == "" && f.WriteOnly {
			continue
		}
		switch f.Kind {
		case Number, Rating:
			if n, err := strconv.Atoi(val); err == nil {
				body[f.Name] = n
			}
		case Bool:
			body[f.Name] = val == "true" || val == "on"
		default:
			body[f.Name] = val
		}
	}
	return body
}

// formFields renders the values as multipart string fields.
func (m *Manager) formFields(vals Values) map[string]string {
	fields := make(map[string]string, len(vals))
	for _, f := range m.Schema.Fields {
		if f.Kind == File {
			continue
		}
		if val, ok := vals[f.Name]; ok && !(val == "" && f.WriteOnly) {
			fields[f.Name] = val
		}
	}
	return fields
}

func hasFile(files []Upload, fieldName string) bool {
	for _, f := range files {
		if f.FieldName == fieldName && len(f.Content) > 0 {
			return true
		}
	}
	return false
}
