package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		input    string
		expected FlexString
	}{
		{`{"day":"Day 2"}`, "Day 2"},
		{`{"day":3}`, "3"},
		{`{"day":1.5}`, "1.5"},
		{`{"day":null}`, ""},
	}
	for _, tt := range tests {
		var v struct {
			Day FlexString `json:"day"`
		}
		require.NoError(t, json.Unmarshal([]byte(tt.input), &v), tt.input)
		assert.Equal(t, tt.expected, v.Day, tt.input)
	}

	var v struct {
		Day FlexString `json:"day"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"day":["x"]}`), &v))
}
