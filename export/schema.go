package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "fxworld-document.schema.json"

var (
	compileOnce sync.Once
	compiled    *validator.Schema
	compileErr  error
)

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	s := reflector.ReflectFromType(reflect.TypeOf(Document{}))
	s.Version = jsonschema.Version
	s.Title = "fxworld document"
	s.Description = "World file contents with every fixed-point quantity as its raw integer."
	return s
}

// Schema returns the JSON schema of Document
func Schema(indent bool) ([]byte, error) {
	s := buildSchema()
	if indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}

func compiledSchema() (*validator.Schema, error) {
	compileOnce.Do(func() {
		data, err := Schema(false)
		if err != nil {
			compileErr = fmt.Errorf("export: marshal schema: %w", err)
			return
		}
		c := validator.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("export: add schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("export: compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks raw JSON against the Document schema
func Validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("export: decode: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
