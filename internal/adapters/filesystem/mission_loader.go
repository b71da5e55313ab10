// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/missiondata"
	"github.com/example/aerobridge/internal/ports/secondary"
)

//go:embed mission.schema.json
var missionSchemaJSON string

const missionSchemaURL = "https://aerobridge.example/schemas/mission-context.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func missionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(missionSchemaURL, strings.NewReader(missionSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add mission schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(missionSchemaURL)
	})
	return compiledSchema, schemaErr
}

// MissionLoader implements secondary.MissionSource for a YAML or JSON
// document on disk or embedded in the binary.
type MissionLoader struct {
	name string
	read func() ([]byte, error)
}

var _ secondary.MissionSource = (*MissionLoader)(nil)

// NewFileMissionLoader loads the mission context from path.
func NewFileMissionLoader(path string) *MissionLoader {
	return &MissionLoader{
		name: path,
		read: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// NewEmbeddedMissionLoader loads the sample mission compiled into the binary.
func NewEmbeddedMissionLoader() *MissionLoader {
	return &MissionLoader{
		name: missiondata.SampleName,
		read: func() ([]byte, error) { return missiondata.Sample(), nil },
	}
}

// Name describes where the mission context comes from.
func (l *MissionLoader) Name() string {
	return l.name
}

// Load reads and decodes the mission context. I/O failures are returned
// as-is; malformed content is a *recommendation.SchemaError.
func (l *MissionLoader) Load(ctx context.Context) (*recommendation.MissionContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := l.read()
	if err != nil {
		return nil, fmt.Errorf("failed to read mission file %s: %w", l.name, err)
	}
	return DecodeMission(data)
}

// DecodeMission parses a YAML or JSON mission document, checks it against
// the mission JSON Schema, then applies recommendation.Validate.
func DecodeMission(data []byte) (*recommendation.MissionContext, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &recommendation.SchemaError{Reason: "malformed document", Err: err}
	}
	if raw == nil {
		return nil, &recommendation.SchemaError{Reason: "empty document"}
	}

	// Normalise through JSON so the schema sees JSON types regardless of
	// the input syntax.
	normalised, err := json.Marshal(raw)
	if err != nil {
		return nil, &recommendation.SchemaError{Reason: "document is not representable as JSON", Err: err}
	}

	var instance any
	dec := json.NewDecoder(bytes.NewReader(normalised))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return nil, &recommendation.SchemaError{Reason: "malformed document", Err: err}
	}

	schema, err := missionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, schemaError(err)
	}

	var mc recommendation.MissionContext
	if err := json.Unmarshal(normalised, &mc); err != nil {
		return nil, typeError(err)
	}
	if err := recommendation.Validate(&mc); err != nil {
		return nil, err
	}
	return &mc, nil
}

// schemaError reports the first leaf violation of a schema validation error.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &recommendation.SchemaError{Reason: "schema validation failed", Err: err}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &recommendation.SchemaError{
		Path:   pointerPath(leaf.InstanceLocation),
		Reason: leaf.Message,
	}
}

func typeError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return &recommendation.SchemaError{
			Path:   te.Field,
			Reason: fmt.Sprintf("cannot use %s as %s", te.Value, te.Type),
		}
	}
	return &recommendation.SchemaError{Reason: "malformed document", Err: err}
}

// pointerPath converts a JSON pointer to the dotted path used in schema
// errors: "/recommendations/0/name" -> "recommendations[0].name".
func pointerPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		seg = strings.NewReplacer("~1", "/", "~0", "~").Replace(seg)
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
