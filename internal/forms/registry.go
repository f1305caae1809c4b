package forms

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	dErrors "pathways/pkg/domain-errors"
)

// stepIDPattern keeps step ids filesystem-safe before they are joined into a
// schema file path.
var stepIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Registry loads form schemas by step id. A YAML file in the forms directory
// wins over the built-in defaults; a step id matching neither is unknown.
type Registry struct {
	dir string
}

// NewRegistry creates a registry reading schema files from dir. An empty dir
// disables file-backed schemas and serves built-ins only.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Load resolves the schema for a step id.
func (r *Registry) Load(stepID string) (Schema, error) {
	if !stepIDPattern.MatchString(stepID) {
		return Schema{}, dErrors.New(dErrors.CodeBadRequest, "invalid step id")
	}

	if r.dir != "" {
		schema, err := r.loadFile(stepID)
		switch {
		case err == nil:
			return schema, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Schema{}, err
		}
	}

	if schema, ok := defaultSchemas[stepID]; ok {
		return schema, nil
	}
	return Schema{}, dErrors.New(dErrors.CodeNotFound, "unknown step: "+stepID)
}

func (r *Registry) loadFile(stepID string) (Schema, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, stepID+".yml"))
	if err != nil {
		return Schema{}, err
	}
	var schema Schema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return Schema{}, dErrors.Wrap(err, dErrors.CodeInternal, "malformed schema file for "+stepID)
	}
	if schema.ID == "" || len(schema.Fields) == 0 {
		return Schema{}, dErrors.New(dErrors.CodeInternal, "schema file for "+stepID+" is missing id or fields")
	}
	return schema, nil
}

// Known reports whether the registry can serve the step id from either
// source. Used by handlers to distinguish unknown steps early.
func (r *Registry) Known(stepID string) bool {
	_, err := r.Load(stepID)
	return err == nil
}
