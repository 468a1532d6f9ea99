package imageref

import (
	"fmt"
	"net/url"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/keywords"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/post"
)

// Kind discriminates how an image reference is dereferenced.
type Kind string

const (
	// Embedded images travel inline with the post record as a data URI.
	Embedded Kind = "embedded"
	// Remote images are fetched from the stock-photo service.
	Remote Kind = "remote"
)

// DataURIPrefix is the fixed media-type prefix for embedded JPEG uploads.
const DataURIPrefix = "data:image/jpeg;base64,"

// ImageRef points at the representative image for a post. Construction is
// pure; the rendering layer (or the download router) dereferences it.
type ImageRef struct {
	Kind Kind
	URI  string
}

// Resolver builds image references from posts. The zero value is not
// usable; use NewResolver for the standard stock endpoint and size.
type Resolver struct {
	stockBase string
	width     int
	height    int
}

const (
	defaultStockBase = "https://loremflickr.com"
	defaultStockSize = 800
)

// NewResolver returns a resolver for the given stock-image endpoint.
// Empty base or non-positive size fall back to the defaults (loremflickr,
// 800x800).
func NewResolver(stockBase string, size int) *Resolver {
	if stockBase == "" {
		stockBase = defaultStockBase
	}
	if size <= 0 {
		size = defaultStockSize
	}
	return &Resolver{stockBase: stockBase, width: size, height: size}
}

// Resolve maps a post to its image reference. Uploaded posts embed their
// bytes verbatim in a data URI; generated posts get a keyword-seeded stock
// query URL whose lock parameter pins the same image across re-renders.
func (r *Resolver) Resolve(p post.Post) ImageRef {
	if p.IsUpload {
		return ImageRef{
			Kind: Embedded,
			URI:  DataURIPrefix + p.ImageData,
		}
	}
	return ImageRef{
		Kind: Remote,
		URI: fmt.Sprintf("%s/%d/%d/%s?lock=%s",
			r.stockBase, r.width, r.height,
			keywords.Query(p.Content),
			url.QueryEscape(string(p.ImageSeed))),
	}
}
