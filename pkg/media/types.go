package media

// ImagePart is a validated, base64-encoded upload ready to be sent to the
// generation service as a multipart payload.
type ImagePart struct {
	MediaType string `json:"media_type"` // MIME type, e.g. "image/jpeg"
	Data      string `json:"data"`       // base64-encoded image bytes
	FileName  string `json:"file_name"`  // original filename
	Size      int64  `json:"size"`       // raw size in bytes
}
