package analysis

import (
	"encoding/base64"
	"regexp"
	"slices"
	"strings"
)

var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// SupportedMediaTypes are the image types accepted by the model providers.
var SupportedMediaTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var mediaTypeAliases = map[string]string{
	"image/jpg":   "image/jpeg",
	"image/pjpeg": "image/jpeg",
	"image/x-png": "image/png",
}

// Image is a decoded selfie ready to be sent to a model.
type Image struct {
	MediaType string
	// Base64 is the payload exactly as received, for providers that take base64 text.
	Base64 string
	Data   []byte
}

// ParseImage splits a data URI into a canonical media type and its payload.
func ParseImage(dataURI string) (Image, error) {
	m := dataURIPattern.FindStringSubmatch(dataURI)
	if m == nil {
		return Image{}, ImageFormatError("Invalid image format")
	}

	mediaType := NormalizeMediaType(m[1])
	if !slices.Contains(SupportedMediaTypes, mediaType) {
		return Image{}, ImageFormatError("Unsupported image format: " + m[1])
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil || len(data) == 0 {
		return Image{}, ImageFormatError("Invalid image data")
	}
	return Image{MediaType: mediaType, Base64: m[2], Data: data}, nil
}

// NormalizeMediaType lowercases t and maps known aliases to their canonical type.
func NormalizeMediaType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if canonical, ok := mediaTypeAliases[t]; ok {
		return canonical
	}
	return t
}
