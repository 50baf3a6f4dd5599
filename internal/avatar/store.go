// Package avatar abstracts the external image store that holds user avatars.
package avatar

import "context"

// Image is the persisted reference to an externally stored avatar.
type Image struct {
	ExternalID string `json:"public_id"`
	URL        string `json:"url"`
}

type Store interface {
	// Upload stores the image bytes and returns the reference to keep on
	// the user record.
	Upload(ctx context.Context, data []byte, contentType string) (Image, error)
	// Destroy removes a previously uploaded image.
	Destroy(ctx context.Context, externalID string) error
}
