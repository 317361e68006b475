package models

// FieldType enumerates the input kinds an admin form field may declare. The
// schema builder matches on it exhaustively; an unknown type is an error.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeUrl      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeFile     FieldType = "file"
)

func IsValidFieldType(ft FieldType) bool {
	switch ft {
	case FieldTypeText,
		FieldTypeEmail,
		FieldTypeUrl,
		FieldTypeNumber,
		FieldTypeTel,
		FieldTypeSelect,
		FieldTypeTextarea,
		FieldTypeFile:
		return true
	default:
		return false
	}
}

// FieldConfig describes one editable field of an admin entity. Options is
// meaningful only for select fields.
type FieldConfig struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// FormConfig is the declarative description of one admin entity form. It is
// defined once per entity type and never mutated at runtime.
type FormConfig struct {
	Title      string        `json:"title"`
	EntityName string        `json:"entityName"`
	Collection string        `json:"collection"`
	Bucket     string        `json:"bucket,omitempty"`
	Fields     []FieldConfig `json:"fields"`
}

// FieldNamed returns the config for the named field, or false when absent.
func (c FormConfig) FieldNamed(name string) (FieldConfig, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}
