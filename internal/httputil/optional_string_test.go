package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		ParentID OptionalString `json:"parentId"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{
			name:        "field absent",
			body:        `{}`,
			wantPresent: false,
			wantValue:   nil,
		},
		{
			name:        "explicit null",
			body:        `{"parentId": null}`,
			wantPresent: true,
			wantValue:   nil,
		},
		{
			name:        "value set",
			body:        `{"parentId": "folder-1"}`,
			wantPresent: true,
			wantValue:   ptr("folder-1"),
		},
		{
			name:        "empty string is still a value",
			body:        `{"parentId": ""}`,
			wantPresent: true,
			wantValue:   ptr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantPresent, p.ParentID.Present)
			if tt.wantValue == nil {
				assert.Nil(t, p.ParentID.Value)
			} else {
				require.NotNil(t, p.ParentID.Value)
				assert.Equal(t, *tt.wantValue, *p.ParentID.Value)
			}
		})
	}
}

func TestOptionalStringUnmarshalRejectsNonString(t *testing.T) {
	var o OptionalString
	err := json.Unmarshal([]byte(`42`), &o)
	assert.Error(t, err)
}

func ptr(s string) *string { return &s }
