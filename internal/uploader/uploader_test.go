package uploader

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

	t.Run("valid", func(t *testing.T) {
		data, contentType, err := decodeDataURI("data:image/png;base64," + payload)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-png-bytes"), data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, uri := range []string{
			"",
			"not-a-data-uri",
			"data:image/png;base64",         // no comma
			"data:;base64," + payload,       // empty content type
			"data:image/png;hex," + payload, // wrong encoding
			"data:image/png;base64,!!!",     // bad base64
		} {
			_, _, err := decodeDataURI(uri)
			assert.Error(t, err, "uri %q", uri)
		}
	})
}

func TestExtFor(t *testing.T) {
	assert.Equal(t, ".jpg", extFor("image/jpeg"))
	assert.Equal(t, ".png", extFor("image/png"))
	assert.Equal(t, ".webp", extFor("image/webp"))
	assert.Empty(t, extFor("application/octet-stream"))
}
