package convert

import (
	"errors"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// ErrMalformedDataURL is returned when a data URL has no payload separator.
var ErrMalformedDataURL = errors.New("malformed data URL")

// DataURL encodes data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return dataurl.New(data, mimeType).String()
}

// StripDataURLPrefix drops the scheme and media type, returning only the
// base64 payload after the first comma.
func StripDataURLPrefix(dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", ErrMalformedDataURL
	}
	i := strings.IndexByte(dataURL, ',')
	if i < 0 {
		return "", ErrMalformedDataURL
	}
	return dataURL[i+1:], nil
}

// EncodePayload returns the base64 payload the model request carries.
func EncodePayload(mimeType string, data []byte) (string, error) {
	return StripDataURLPrefix(DataURL(mimeType, data))
}
