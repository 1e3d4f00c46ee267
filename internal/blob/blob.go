// Package blob wraps the external image host that screenshots are pushed to.
// The rest of the app only sees opaque URLs; whether an upload or delete is
// allowed at all is decided before this package is called.
package blob

import "context"

type Store interface {
	// Store uploads the image and returns its public URL.
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	// Delete removes a previously stored image. Unknown URLs are not an error.
	Delete(ctx context.Context, url string) error
}
