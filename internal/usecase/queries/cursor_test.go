//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"supplier-quotes/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 10, 12, 30, 0, 123456000, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.True(t, at.Equal(gotAt))
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	for name, c := range map[string]string{
		"empty":         "",
		"not base64":    "%%%",
		"wrong version": base64.URLEncoding.EncodeToString([]byte("v0:1-" + uuid.NewString())),
		"bad timestamp": base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString())),
		"bad uuid":      base64.URLEncoding.EncodeToString([]byte("v1:1-nope")),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(c)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
