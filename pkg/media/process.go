package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxImageSize caps raw upload size (base64 adds ~33% on the wire).
const maxImageSize = 15 * 1024 * 1024

// imageExts maps file extensions to MIME types for supported image formats.
var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// LoadImage reads an image file from disk, validates it, and returns an
// ImagePart with the bytes base64-encoded. Unrecognized extensions and
// oversized or empty files are rejected before any bytes are read.
func LoadImage(path string) (*ImagePart, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	fileName := filepath.Base(path)

	mimeType, ok := imageExts[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %q (use jpg, png, gif, or webp)", ext)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("empty file: %s", fileName)
	}
	if info.Size() > maxImageSize {
		return nil, fmt.Errorf("image too large: %s, %.1f MB (limit 15 MB)", fileName, float64(info.Size())/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}

	return &ImagePart{
		MediaType: mimeType,
		Data:      base64.StdEncoding.EncodeToString(data),
		FileName:  fileName,
		Size:      info.Size(),
	}, nil
}

// RawBytes decodes the part's payload back to raw image bytes.
func (p *ImagePart) RawBytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", p.FileName, err)
	}
	return raw, nil
}
