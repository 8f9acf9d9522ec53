package config

import (
	"errors"

	"github.com/invopop/jsonschema"
)

var ErrGeneratedSchemaIsNil = errors.New("generated JSON Schema is nil")

// JSONSchema describes config.yaml. Property names follow the mapstructure tags so
// the schema matches the keys viper reads.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "mapstructure",
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&Config{})
	if schema == nil {
		return nil, ErrGeneratedSchemaIsNil
	}
	schema.Title = "genie-admin configuration"

	return schema.MarshalJSON()
}
