package convert

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:application/pdf;base64,aGVsbG8=", DataURL("application/pdf", []byte("hello")))
}

func TestStripDataURLPrefix(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "pdf data url", in: "data:application/pdf;base64,aGVsbG8=", want: "aGVsbG8="},
		{name: "empty payload", in: "data:application/pdf;base64,", want: ""},
		{name: "only first comma splits", in: "data:text/plain,a,b", want: "a,b"},
		{name: "missing comma", in: "data:application/pdf;base64", wantErr: true},
		{name: "not a data url", in: "aGVsbG8=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripDataURLPrefix(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDataURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodePayload(t *testing.T) {
	data := []byte("%PDF-1.7\n\x00\x01\x02binary")

	payload, err := EncodePayload("application/pdf", data)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}
