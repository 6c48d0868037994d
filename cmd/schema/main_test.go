package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, writeSchema(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Ref  string                     `json:"$ref"`
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "#/$defs/Config", doc.Ref)
	assert.Contains(t, doc.Defs, "Config")
	assert.Contains(t, doc.Defs, "Feed")

	require.Error(t, writeSchema(filepath.Join(t.TempDir(), "no", "such", "dir", "schema.json")))
}
