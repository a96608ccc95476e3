package resource

import (
	"context"
	"io/ioutil"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migeprof/fehub/core"
)

type call struct {
	method string
	path   string
	body   interface{}
	fields map[string]string
	files  []Upload
}

// fakeDoer records calls and replays canned list responses.
type fakeDoer struct {
	calls   []call
	listOut []Record
	err     error
}

func (d *fakeDoer) GetJSON(_ context.Context, path string, out interface{}) error {
	d.calls = append(d.calls, call{method: "GET", path: path})
	if d.err != nil {
		return d.err
	}
	if recs, ok := out.(*[]Record); ok {
		*recs = d.listOut
	}
	return nil
}

func (d *fakeDoer) PostJSON(_ context.Context, path string, body, _ interface{}) error {
	d.calls = append(d.calls, call{method: "POST", path: path, body: body})
	return d.err
}

func (d *fakeDoer) PutJSON(_ context.Context, path string, body, _ interface{}) error {
	d.calls = append(d.calls, call{method: "PUT", path: path, body: body})
	return d.err
}

func (d *fakeDoer) Delete(_ context.Context, path string) error {
	d.calls = append(d.calls, call{method: "DELETE", path: path})
	return d.err
}

func (d *fakeDoer) SendMultipart(_ context.Context, method, path string, fields map[string]string, files []Upload, _ interface{}) error {
	d.calls = append(d.calls, call{method: method, path: path, fields: fields, files: files})
	return d.err
}

func testSchema() Schema {
	return Schema{
		Name:     "widgets",
		Singular: "widget",
		IDField:  "WidgetID",
		Fields: []Field{
			{Name: "Name", Label: "Name", Kind: Text, Required: true},
			{Name: "Contact", Label: "Contact", Kind: Email},
			{Name: "Count", Label: "Count", Kind: Number},
			{Name: "Secret", Label: "Secret", Kind: Password, Required: true, WriteOnly: true},
		},
		Endpoints: Endpoints{
			Collection: "/widgets",
			Item:       "/widgets/%s",
			Toggle:     "/widgets/toggle/%s",
		},
	}
}

func newTestManager(schema Schema, doer *fakeDoer) *Manager {
	return NewManager(schema, doer, core.NewStdLogger(log.New(ioutil.Discard, "", 0)))
}

func TestManager_List(t *testing.T) {
	doer := &fakeDoer{listOut: []Record{{"WidgetID": "1", "Name": "a"}}}
	m := newTestManager(testSchema(), doer)

	recs, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].StringOr("Name", ""))

	// an empty backend response still yields a non-nil slice
	doer.listOut = nil
	recs, err = m.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestManager_Create_validation(t *testing.T) {
	tests := []struct {
		name       string
		vals       Values
		wantFields []string
	}{
		{
			name:       "missing required",
			vals:       Values{"Name": "", "Secret": ""},
			wantFields: []string{"Name", "Secret"},
		},
		{
			name:       "bad email and number",
			vals:       Values{"Name": "x", "Secret": "s", "Contact": "nope", "Count": "many"},
			wantFields: []string{"Contact", "Count"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{}
			m := newTestManager(testSchema(), doer)

			err := m.Create(context.Background(), tt.vals, nil)
			require.Error(t, err)

			vErr, ok := errors.Cause(err).(*core.ValidationError)
			require.True(t, ok, "want ValidationError, got %T", errors.Cause(err))
			fm := vErr.FieldMap()
			for _, f := range tt.wantFields {
				assert.Contains(t, fm, f)
			}

			// nothing reached the network
			assert.Empty(t, doer.calls)
		})
	}
}

func TestManager_Create_postsTypedBody(t *testing.T) {
	doer := &fakeDoer{}
	m := newTestManager(testSchema(), doer)

	err := m.Create(context.Background(), Values{
		"Name":    "Pump",
		"Contact": "x@y.org",
		"Count":   "3",
		"Secret":  "s3cret",
	}, nil)
	require.NoError(t, err)

	require.Len(t, doer.calls, 1)
	c := doer.calls[0]
	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/widgets", c.path)

	body, ok := c.body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Pump", body["Name"])
	assert.Equal(t, 3, body["Count"])
	assert.Equal(t, "s3cret", body["Secret"])
}

func TestManager_Update(t *testing.T) {
	doer := &fakeDoer{}
	m := newTestManager(testSchema(), doer)

	// empty write-only field is omitted, not blanked
	err := m.Update(context.Background(), "7", Values{"Name": "Pump", "Secret": ""}, nil)
	require.NoError(t, err)

	require.Len(t, doer.calls, 1)
	c := doer.calls[0]
	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/widgets/7", c.path)

	body := c.body.(map[string]interface{})
	assert.NotContains(t, body, "Secret")
}

func TestManager_Update_upsert(t *testing.T) {
	schema := Schema{
		Name:     "marks",
		Singular: "mark",
		IDField:  "MarkID",
		Fields: []Field{
			{Name: "ProgramID", Kind: Select, Required: true},
			{Name: "Status", Kind: Select, Required: true, Options: []string{"Present", "Absent"}},
		},
		Endpoints: Endpoints{Collection: "/marks", Upsert: true},
	}
	doer := &fakeDoer{}
	m := newTestManager(schema, doer)

	err := m.Update(context.Background(), "ignored", Values{"ProgramID": "1", "Status": "Present"}, nil)
	require.NoError(t, err)

	require.Len(t, doer.calls, 1)
	assert.Equal(t, "POST", doer.calls[0].method)
	assert.Equal(t, "/marks", doer.calls[0].path)
}

func TestManager_multipart(t *testing.T) {
	schema := Schema{
		Name:     "clips",
		Singular: "clip",
		IDField:  "ClipID",
		Fields: []Field{
			{Name: "Title", Kind: Text, Required: true},
			{Name: "video", Kind: File, Required: true, WriteOnly: true},
		},
		Endpoints: Endpoints{Collection: "/clips", Item: "/clips/%s", Multipart: true},
	}
	doer := &fakeDoer{}
	m := newTestManager(schema, doer)

	// required file missing on create
	err := m.Create(context.Background(), Values{"Title": "Intro"}, nil)
	require.Error(t, err)
	_, ok := errors.Cause(err).(*core.ValidationError)
	assert.True(t, ok)

	upload := Upload{FieldName: "video", Filename: "intro.mp4", Content: []byte("bytes")}
	err = m.Create(context.Background(), Values{"Title": "Intro"}, []Upload{upload})
	require.NoError(t, err)

	c := doer.calls[len(doer.calls)-1]
	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/clips", c.path)
	assert.Equal(t, "Intro", c.fields["Title"])
	require.Len(t, c.files, 1)
	assert.Equal(t, "intro.mp4", c.files[0].Filename)

	// file is optional on update
	err = m.Update(context.Background(), "9", Values{"Title": "Intro v2"}, nil)
	require.NoError(t, err)
	c = doer.calls[len(doer.calls)-1]
	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/clips/9", c.path)
}

func TestManager_Delete(t *testing.T) {
	doer := &fakeDoer{}
	m := newTestManager(testSchema(), doer)

	require.NoError(t, m.Delete(context.Background(), "4"))
	require.Len(t, doer.calls, 1)
	assert.Equal(t, "DELETE", doer.calls[0].method)
	assert.Equal(t, "/widgets/4", doer.calls[0].path)
}

func TestManager_Toggle(t *testing.T) {
	doer := &fakeDoer{}
	m := newTestManager(testSchema(), doer)

	require.NoError(t, m.Toggle(context.Background(), "4"))
	require.Len(t, doer.calls, 1)
	assert.Equal(t, "PUT", doer.calls[0].method)
	assert.Equal(t, "/widgets/toggle/4", doer.calls[0].path)

	noToggle := testSchema()
	noToggle.Endpoints.Toggle = ""
	m = newTestManager(noToggle, &fakeDoer{})
	assert.Error(t, m.Toggle(context.Background(), "4"))
}

func TestManager_schemaCheckHook(t *testing.T) {
	schema := testSchema()
	schema.Check = func(vals Values) []FieldCheckError {
		if vals["Name"] == "forbidden" {
			return []FieldCheckError{{Field: "Name", Error: "that name is taken"}}
		}
		return nil
	}
	doer := &fakeDoer{}
	m := newTestManager(schema, doer)

	err := m.Create(context.Background(), Values{"Name": "forbidden", "Secret": "s"}, nil)
	require.Error(t, err)
	vErr := errors.Cause(err).(*core.ValidationError)
	assert.Equal(t, "that name is taken", vErr.FieldMap()["Name"])
	assert.Empty(t, doer.calls)
}
