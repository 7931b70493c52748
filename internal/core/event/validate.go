package event

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Validator checks published payloads against a declared shape table.
// It is advisory and opt-in: a failed check logs a warning and the message
// is delivered anyway. Topics absent from the table are never checked.
type Validator struct {
	log    *zap.Logger
	shapes map[string][]string // topic → required payload field names
}

// shapeFile is the on-disk YAML layout of the declared shape table.
type shapeFile struct {
	Shapes map[string][]string `yaml:"shapes"`
}

// LoadValidator reads a topic shape table from a YAML file.
func LoadValidator(path string, log *zap.Logger) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shape table %s: %w", path, err)
	}
	var f shapeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse shape table %s: %w", path, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log, shapes: f.Shapes}, nil
}

// NewValidator builds a validator from an in-memory shape table.
func NewValidator(shapes map[string][]string, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log, shapes: shapes}
}

// Check verifies that every declared field for the message's topic is present
// on the payload. Struct payloads are matched by exported field name
// (case-insensitive); map payloads by key.
func (v *Validator) Check(msg Message) {
	required, ok := v.shapes[msg.Topic]
	if !ok || len(required) == 0 {
		return
	}
	for _, field := range required {
		if !hasField(msg.Data, field) {
			v.log.Warn("payload missing declared field",
				zap.String("topic", msg.Topic),
				zap.String("field", field))
		}
	}
}

func hasField(data any, field string) bool {
	if data == nil {
		return false
	}
	if m, ok := data.(map[string]any); ok {
		_, present := m[field]
		return present
	}
	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if strings.EqualFold(rt.Field(i).Name, field) {
			return true
		}
	}
	return false
}
