// Package catalog loads static content (assessment questions, missions,
// concepts) and learner response files from JSON or YAML. Every document is
// checked against an embedded JSON schema before it is decoded.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studycore/internal/mission"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/weakness"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind names a catalog document type and its schema.
type Kind string

const (
	KindQuestions Kind = "questions"
	KindResponses Kind = "responses"
	KindMissions  Kind = "missions"
	KindConcepts  Kind = "concepts"
)

// schemaCache caches compiled JSON schemas by kind.
var schemaCache sync.Map // map[Kind]*jsonschema.Schema

func compiledSchema(kind Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
	if err != nil {
		return nil, fmt.Errorf("no schema for %q: %w", kind, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", kind, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", kind)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}

// Format is the serialization of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from a file extension; anything that is not
// .yaml or .yml is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode validates data against kind's schema and unmarshals it into v.
func Decode(data []byte, format Format, kind Kind, v any) error {
	jsonData := data
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("convert yaml to json: %w", err)
		}
		jsonData = b
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%s document failed schema validation: %w", kind, err)
	}

	if err := json.Unmarshal(jsonData, v); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

func loadFile(path string, kind Kind, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := Decode(data, FormatOf(path), kind, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadQuestions reads an assessment question catalog.
func LoadQuestions(path string) ([]proficiency.Question, error) {
	var doc struct {
		Questions []proficiency.Question `json:"questions"`
	}
	if err := loadFile(path, KindQuestions, &doc); err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

// LoadResponses reads one assessment attempt.
func LoadResponses(path string) ([]proficiency.Response, error) {
	var doc struct {
		Responses []proficiency.Response `json:"responses"`
	}
	if err := loadFile(path, KindResponses, &doc); err != nil {
		return nil, err
	}
	return doc.Responses, nil
}

// LoadMissions reads a mission catalog.
func LoadMissions(path string) ([]mission.Mission, error) {
	var doc struct {
		Missions []mission.Mission `json:"missions"`
	}
	if err := loadFile(path, KindMissions, &doc); err != nil {
		return nil, err
	}
	return doc.Missions, nil
}

// LoadConcepts reads a concept catalog.
func LoadConcepts(path string) ([]weakness.Concept, error) {
	var doc struct {
		Concepts []weakness.Concept `json:"concepts"`
	}
	if err := loadFile(path, KindConcepts, &doc); err != nil {
		return nil, err
	}
	return doc.Concepts, nil
}
