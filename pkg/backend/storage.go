package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Upload sends a file to a storage bucket. With upsert set, re-uploading
// the same object path replaces the previous file.
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, body []byte, contentType string, upsert bool) error {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken()).
		SetHeader("Content-Type", contentType).
		SetBody(body)
	if upsert {
		req.SetHeader("x-upsert", "true")
	}
	resp, err := req.Post("/storage/v1/object/" + bucket + "/" + objectPath)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("storage %s: %d %s", bucket, resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}
	return nil
}

// PublicURL returns the unauthenticated URL for an object in a public
// bucket.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + objectPath
}
