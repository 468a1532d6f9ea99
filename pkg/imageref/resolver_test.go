package imageref

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/post"
)

func TestResolveEmbedded(t *testing.T) {
	r := NewResolver("", 0)
	p := post.Post{
		Content:   "my dog at the beach",
		IsUpload:  true,
		ImageData: "aGVsbG8gd29ybGQ=",
	}

	ref := r.Resolve(p)
	assert.Equal(t, Embedded, ref.Kind)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8gd29ybGQ=", ref.URI)

	// Idempotent: repeated renders of the same post are byte-identical.
	assert.Equal(t, ref, r.Resolve(p))
}

func TestResolveRemote(t *testing.T) {
	r := NewResolver("", 0)
	p := post.Post{
		Content:   "launched my startup today",
		IsUpload:  false,
		ImageSeed: "482913",
	}

	ref := r.Resolve(p)
	assert.Equal(t, Remote, ref.Kind)
	assert.Equal(t, "https://loremflickr.com/800/800/launched,startup?lock=482913", ref.URI)

	// Same content and seed pin the same stock image across renders.
	assert.Equal(t, ref, r.Resolve(p))
}

func TestResolveRemoteNoKeywords(t *testing.T) {
	r := NewResolver("", 0)
	ref := r.Resolve(post.Post{Content: "at it", ImageSeed: "7"})

	// An unfiltered query is preserved, not corrected.
	assert.Equal(t, "https://loremflickr.com/800/800/?lock=7", ref.URI)
}

func TestResolverCustomEndpoint(t *testing.T) {
	r := NewResolver("https://stock.example.com", 400)
	ref := r.Resolve(post.Post{Content: "mountain sunrise", ImageSeed: "99"})
	assert.Equal(t, "https://stock.example.com/400/400/mountain,sunrise?lock=99", ref.URI)
}
