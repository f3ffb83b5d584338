package sanitize

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	return img
}

// jpegWithExif encodes the test image as JPEG and splices an APP1 Exif
// segment right after the SOI marker, the way camera firmware does.
func jpegWithExif(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), &jpeg.Options{Quality: 90}))
	encoded := buf.Bytes()
	require.True(t, bytes.HasPrefix(encoded, []byte{0xFF, 0xD8}), "JPEG must start with SOI")

	payload := append([]byte("Exif\x00\x00"), []byte("MM\x00*fake gps coordinates")...)
	segment := make([]byte, 4+len(payload))
	segment[0] = 0xFF
	segment[1] = 0xE1
	binary.BigEndian.PutUint16(segment[2:4], uint16(len(payload)+2))
	copy(segment[4:], payload)

	withExif := append([]byte{}, encoded[:2]...)
	withExif = append(withExif, segment...)
	withExif = append(withExif, encoded[2:]...)
	return withExif
}

func TestImageStripsExif(t *testing.T) {
	original := jpegWithExif(t)
	require.True(t, bytes.Contains(original, []byte("Exif")))

	sanitized, err := Image(original, "image/jpeg")
	require.NoError(t, err)

	assert.False(t, bytes.Contains(sanitized, []byte("Exif")))
	assert.False(t, bytes.Contains(sanitized, []byte("fake gps coordinates")))

	// Pixel content survives: same format, same bounds.
	decoded, format, err := image.Decode(bytes.NewReader(sanitized))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded.Bounds())
}

func TestImagePNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	sanitized, err := Image(buf.Bytes(), "image/png")
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(sanitized))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded.Bounds())
}

func TestImageRejectsNonImagePayload(t *testing.T) {
	data := []byte("definitely not a jpeg")

	out, err := Image(data, "image/jpeg")
	assert.Error(t, err)
	assert.Equal(t, data, out)
}

func TestFilePassesDocumentsThrough(t *testing.T) {
	data := []byte("quarterly ledger, page 1")

	out, err := File(bytes.NewReader(data), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestFileSanitizesImages(t *testing.T) {
	original := jpegWithExif(t)

	out, err := File(bytes.NewReader(original), "image/jpeg")
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("Exif")))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.True(t, IsImage("image/jpg"))
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/gif"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage("text/plain"))
	assert.False(t, IsImage(""))
}
