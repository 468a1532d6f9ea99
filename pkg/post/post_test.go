package post

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalServiceShape(t *testing.T) {
	// The service's SQLite schema stores is_upload and image_seed as
	// integers; the client must accept that wire shape.
	raw := `{
		"id": 3,
		"user_id": "u-1",
		"content": "launched my startup today",
		"tone": "Funny",
		"instagram_version": "ig caption",
		"twitter_version": "tw caption",
		"is_upload": 0,
		"image_seed": 482913
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "launched my startup today", p.Content)
	assert.Equal(t, ToneFunny, p.Tone)
	assert.False(t, bool(p.IsUpload))
	assert.Equal(t, Seed("482913"), p.ImageSeed)
	assert.Equal(t, "ig caption", p.InstagramVersion)
}

func TestUnmarshalUploadVariant(t *testing.T) {
	raw := `{"content":"photo","tone":"Professional","is_upload":1,"image_data":"QUJD","instagram_version":"","twitter_version":""}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.True(t, bool(p.IsUpload))
	assert.Equal(t, "QUJD", p.ImageData)
	assert.Empty(t, p.ImageSeed)
}

func TestFlagAcceptsBooleans(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"content":"x","tone":"Funny","is_upload":true,"instagram_version":"","twitter_version":""}`), &p))
	assert.True(t, bool(p.IsUpload))
}

func TestSeedAcceptsStrings(t *testing.T) {
	var s Seed
	require.NoError(t, json.Unmarshal([]byte(`"abc42"`), &s))
	assert.Equal(t, Seed("abc42"), s)
}

func TestParseTone(t *testing.T) {
	for _, tone := range Tones {
		got, err := ParseTone(string(tone))
		require.NoError(t, err)
		assert.Equal(t, tone, got)
	}

	got, err := ParseTone("genz")
	require.NoError(t, err)
	assert.Equal(t, ToneGenZ, got)

	_, err = ParseTone("angry")
	assert.Error(t, err)
}
