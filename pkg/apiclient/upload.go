package apiclient

import "context"

// StoredFile describes an upload stored by the backend. URL is relative to
// the backend origin; resolve it with MediaURL before handing it to a
// browser.
type StoredFile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Upload sends files to the backend's upload endpoint and returns the stored
// file descriptors. Parts are named "files" as the endpoint requires.
func (c *Client) Upload(ctx context.Context, files ...FormFile) ([]StoredFile, error) {
	body := &Multipart{}
	for _, f := range files {
		f.Field = "files"
		body.Files = append(body.Files, f)
	}

	var stored []StoredFile
	if err := c.Post(ctx, "/upload", body, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}
