package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want StringArray
	}{
		{"nil", nil, StringArray{}},
		{"json bytes", []byte(`["Go","Rust"]`), StringArray{"Go", "Rust"}},
		{"empty", "", StringArray{}},
		{"null", "null", StringArray{}},
		{"legacy comma string", "Go, Rust ,", StringArray{"Go", "Rust"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringArray
			require.NoError(t, got.Scan(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}

	var got StringArray
	assert.Error(t, got.Scan(42))
}

func TestStringArrayJSON(t *testing.T) {
	var body struct {
		Tags StringArray `json:"tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tags":"React, Node.js"}`), &body))
	assert.Equal(t, StringArray{"React", "Node.js"}, body.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":[" Go ",""]}`), &body))
	assert.Equal(t, StringArray{"Go"}, body.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["A rover that maps, plans and drives"]}`), &body))
	assert.Equal(t, StringArray{"A rover that maps, plans and drives"}, body.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":null}`), &body))
	assert.Equal(t, StringArray{"A rover that maps, plans and drives"}, body.Tags)

	assert.Error(t, json.Unmarshal([]byte(`{"tags":7}`), &body))

	out, err := json.Marshal(struct {
		Tags StringArray `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(out))
}

func TestFormList(t *testing.T) {
	assert.Nil(t, FormList(nil))
	assert.Equal(t, StringArray{}, FormList([]string{}))
	assert.Equal(t, StringArray{"Go", "gin"}, FormList([]string{" Go, gin ,"}))
	assert.Equal(t, StringArray{"maps, plans", "drives"}, FormList([]string{"maps, plans", " drives ", ""}))
}
