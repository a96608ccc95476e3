package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Content is a training material attached to a program. The video travels
// as a multipart form part, not inline JSON.
type Content struct {
	ContentID   string `json:"ContentID"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	ProgramID   string `json:"ProgramID"`
	VideoURL    string `json:"VideoURL,omitempty"`

	// Program is the optional joined relation; display falls back to a
	// placeholder when the backend omits it.
	Program *Program `json:"Program,omitempty"`
}

// NewContent carries the upload form.
type NewContent struct {
	Title       string
	Description string
	ProgramID   string
	Video       Upload
}

func (nc NewContent) fields() map[string]string {
	return map[string]string{
		"Title":       nc.Title,
		"Description": nc.Description,
		"ProgramID":   nc.ProgramID,
	}
}

func (nc NewContent) files() []Upload {
	if len(nc.Video.Content) == 0 {
		return nil
	}
	nc.Video.FieldName = "video"
	return []Upload{nc.Video}
}

type ContentsAPI struct {
	c *Client
}

func (api ContentsAPI) List(ctx context.Context) ([]Content, error) {
	var contents []Content
	if err := api.c.GetJSON(ctx, "/contents", &contents); err != nil {
		return nil, errors.Wrap(err, "fetching contents")
	}
	return contents, nil
}

func (api ContentsAPI) Create(ctx context.Context, nc NewContent) error {
	err := api.c.SendMultipart(ctx, http.MethodPost, "/contents", nc.fields(), nc.files(), nil)
	return errors.Wrap(err, "creating content")
}

// Update re-submits the form; an absent video leaves the stored one as is.
func (api ContentsAPI) Update(ctx context.Context, id string, nc NewContent) error {
	err := api.c.SendMultipart(ctx, http.MethodPut, itemPath("/contents/%s", id), nc.fields(), nc.files(), nil)
	return errors.Wrap(err, "updating content")
}

func (api ContentsAPI) Delete(ctx context.Context, id string) error {
	return errors.Wrap(api.c.Delete(ctx, itemPath("/contents/%s", id)), "deleting content")
}
