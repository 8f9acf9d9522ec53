package config

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchema(t *testing.T) {
	schemaJSON, err := JSONSchema()
	require.NoError(t, err)

	schema := &jsonschema.Schema{}
	require.NoError(t, schema.UnmarshalJSON(schemaJSON))
	assert.Equal(t, "genie-admin configuration", schema.Title)

	out := string(schemaJSON)
	for _, key := range []string{`"page_size"`, `"suggestion_limit"`, `"min_server_version"`, `"key_prefix"`} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, `"PageSize"`)
}
