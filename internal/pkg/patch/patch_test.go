//go:build unit

package patch_test

import (
	"encoding/json"
	"testing"

	"supplier-quotes/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	v := 3
	assert.Equal(t, 3, patch.Coalesce(&v, 7))
	assert.Equal(t, 7, patch.Coalesce[int](nil, 7))
}

func TestField(t *testing.T) {
	current := "current"

	t.Run("unset keeps current", func(t *testing.T) {
		var f patch.Field[string]
		assert.False(t, f.IsSet())
		assert.Same(t, &current, f.Or(&current))
	})

	t.Run("null clears", func(t *testing.T) {
		f := patch.Null[string]()
		assert.True(t, f.IsSet())
		assert.Nil(t, f.Or(&current))
	})

	t.Run("set replaces", func(t *testing.T) {
		f := patch.Set("next")
		got := f.Or(&current)
		require.NotNil(t, got)
		assert.Equal(t, "next", *got)
	})

	t.Run("from pointer", func(t *testing.T) {
		assert.Nil(t, patch.FromPtr[string](nil).Or(&current))

		v := "reason"
		got := patch.FromPtr(&v).Or(&current)
		require.NotNil(t, got)
		assert.Equal(t, "reason", *got)
	})
}

func TestField_UnmarshalJSON(t *testing.T) {
	type body struct {
		Notes patch.Field[string] `json:"notes"`
	}

	testCases := []struct {
		name      string
		raw       string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", raw: `{}`, wantSet: false},
		{name: "null", raw: `{"notes":null}`, wantSet: true},
		{name: "value", raw: `{"notes":"call back"}`, wantSet: true, wantValue: ptr("call back")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &b))
			assert.Equal(t, tc.wantSet, b.Notes.IsSet())
			assert.Equal(t, tc.wantValue, b.Notes.Value())
		})
	}

	t.Run("wrong type", func(t *testing.T) {
		var b body
		require.Error(t, json.Unmarshal([]byte(`{"notes":3}`), &b))
	})
}

func ptr[T any](v T) *T { return &v }
