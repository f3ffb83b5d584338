// Package sanitize strips embedded metadata from uploaded evidence images.
//
// Whistleblower evidence must not leak EXIF/GPS/camera data. Decoding an
// image and re-encoding it from raw pixels discards every metadata segment
// while preserving the visual content and the original MIME type. Non-image
// files pass through untouched.
package sanitize

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
)

const jpegQuality = 90

// imageMIMETypes are the formats the upload endpoint accepts that can carry
// embedded metadata worth stripping.
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// IsImage reports whether contentType is a sanitizable image format.
func IsImage(contentType string) bool {
	return imageMIMETypes[contentType]
}

// File re-encodes image payloads to drop metadata and returns other payloads
// unchanged. The re-encode is lossy only in the sense of discarding metadata,
// never pixel data (modulo JPEG re-compression at high quality).
func File(r io.Reader, contentType string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !IsImage(contentType) {
		return data, nil
	}
	return Image(data, contentType)
}

// Image decodes raw image bytes and re-encodes them in the same format. If
// the payload does not decode as the claimed format the original bytes are
// returned along with the decode error so callers can decide to reject.
func Image(data []byte, contentType string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, err
	}

	var buf bytes.Buffer
	switch contentType {
	case "image/jpeg", "image/jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return data, nil
	}
	if err != nil {
		return data, err
	}

	return buf.Bytes(), nil
}
