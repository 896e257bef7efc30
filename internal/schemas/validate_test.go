package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "count"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "go", "count": 3}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "", "count": -1}`)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_MissingRequired(t *testing.T) {
	err := ValidateJSONString(testSchema, `{}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 42}`, `{}`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "test.schema.json")
	docPath := filepath.Join(dir, "doc.json")

	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0o644))
	require.NoError(t, os.WriteFile(docPath, []byte(`{"name": "go", "count": 1}`), 0o644))

	assert.NoError(t, ValidateJSON(schemaPath, docPath))

	require.NoError(t, os.WriteFile(docPath, []byte(`{"count": "three"}`), 0o644))
	assert.Error(t, ValidateJSON(schemaPath, docPath))
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "test.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0o644))

	err := ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "JSON file not found")

	err = ValidateJSON(filepath.Join(dir, "missing.schema.json"), schemaPath)
	assert.ErrorContains(t, err, "schema file not found")
}

func TestResolveSchemaPath(t *testing.T) {
	// A file that exists relative to this package.
	path := ResolveSchemaPath(filepath.Join("schemas", "overview.schema.json"))
	assert.NotEmpty(t, path)

	assert.Empty(t, ResolveSchemaPath(filepath.Join("schemas", "does_not_exist.schema.json")))
}
