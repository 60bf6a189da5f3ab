// internal/storage/storage.go
package storage

import "context"

// ImageStore uploads inline image data to an object store and removes it
// again when the owning record is deleted.
type ImageStore interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, folder string, dataURI string) (string, error)
	// Delete removes a previously uploaded image by its public URL.
	// Unknown URLs are ignored.
	Delete(ctx context.Context, publicURL string) error
}

// IsDataURI reports whether s looks like inline base64 image data
// ("data:image/...;base64,..."). Plain URLs pass through untouched.
func IsDataURI(s string) bool {
	return len(s) > 11 && s[:11] == "data:image/"
}
