package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migeprof/fehub/core"
)

// One row per typed endpoint method: the call must hit exactly the
// documented method and path.
func TestAPIs_wireShapes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func(c *Client) error
		want    string
		respond string // body the fake backend answers with
	}{
		{
			name: "programs create",
			call: func(c *Client) error { return c.Programs.Create(ctx, Program{ProgramName: "Nutrition"}) },
			want: "POST /programs",
		},
		{
			name: "programs update",
			call: func(c *Client) error { return c.Programs.Update(ctx, "3", Program{ProgramName: "Nutrition"}) },
			want: "PUT /programs/3",
		},
		{
			name: "programs delete",
			call: func(c *Client) error { return c.Programs.Delete(ctx, "3") },
			want: "DELETE /programs/3",
		},
		{
			name: "programs toggle status",
			call: func(c *Client) error { return c.Programs.ToggleStatus(ctx, "3") },
			want: "PUT /programs/toggle-status/3",
		},
		{
			name: "families register",
			call: func(c *Client) error { return c.Families.Register(ctx, Family{FamilyHeadName: "Uwase"}) },
			want: "POST /families/register",
		},
		{
			name: "families update",
			call: func(c *Client) error { return c.Families.Update(ctx, "7", Family{FamilyHeadName: "Uwase"}) },
			want: "PUT /families/update/7",
		},
		{
			name: "families delete",
			call: func(c *Client) error { return c.Families.Delete(ctx, "7") },
			want: "DELETE /families/delete/7",
		},
		{
			name: "contents create",
			call: func(c *Client) error {
				return c.Contents.Create(ctx, NewContent{
					Title: "Handwashing", ProgramID: "3",
					Video: Upload{Filename: "clip.mp4", Content: []byte("bytes")},
				})
			},
			want: "POST /contents",
		},
		{
			name: "contents update",
			call: func(c *Client) error { return c.Contents.Update(ctx, "5", NewContent{Title: "Handwashing"}) },
			want: "PUT /contents/5",
		},
		{
			name: "contents delete",
			call: func(c *Client) error { return c.Contents.Delete(ctx, "5") },
			want: "DELETE /contents/5",
		},
		{
			name: "users update",
			call: func(c *Client) error { return c.Users.Update(ctx, "9", UpdateUser{Username: "aline"}) },
			want: "PUT /users/9",
		},
		{
			name: "users delete",
			call: func(c *Client) error { return c.Users.Delete(ctx, "9") },
			want: "DELETE /users/9",
		},
		{
			name: "users toggle activation",
			call: func(c *Client) error { return c.Users.ToggleActivation(ctx, "9") },
			want: "PUT /users/9/toggle-activation",
		},
		{
			name: "feedback submit",
			call: func(c *Client) error { return c.Feedback.Submit(ctx, SessionFeedback{FullName: "Aline"}) },
			want: "POST /feedback",
		},
		{
			name: "reports feedback",
			call: func(c *Client) error {
				_, err := c.Reports.Feedback(ctx)
				return err
			},
			want:    "GET /reports/feedback",
			respond: "[]",
		},
		{
			name: "reports feedback by id",
			call: func(c *Client) error {
				_, err := c.Reports.FeedbackByID(ctx, "11")
				return err
			},
			want: "GET /reports/feedback/11",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = append(got, r.Method+" "+r.URL.Path)
				body := tt.respond
				if body == "" {
					body = "{}"
				}
				_, _ = w.Write([]byte(body))
			}))

			require.NoError(t, tt.call(client))
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestUsersAPI_Create_localValidation(t *testing.T) {
	var requests int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("{}"))
	}))

	err := client.Users.Create(context.Background(), NewUser{Username: "aline"})
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	require.True(t, ok, "want a validation error, got %v", err)

	m := vErr.FieldMap()
	assert.Equal(t, "this field is required", m["Email"])
	assert.Equal(t, "this field is required", m["Password"])
	assert.Zero(t, requests, "validation must run before any network call")

	err = client.Users.Create(context.Background(), NewUser{
		Username: "aline", Email: "not-an-address", Password: "pass",
	})
	vErr, ok = errors.Cause(err).(*core.ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.FieldMap()["Email"], "email")

	require.NoError(t, client.Users.Create(context.Background(), NewUser{
		Username: "aline", Email: "aline@hub.org", Password: "pass",
	}))
	assert.Equal(t, 1, requests)
}
