package model

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/id"
)

// FieldType defines the data type of a field.
type FieldType string

const (
	TypeText   FieldType = "text"
	TypeNumber FieldType = "number"
	TypeSelect FieldType = "select"
)

// ValidFieldType reports whether t is a known field type.
func ValidFieldType(t FieldType) bool {
	switch t {
	case TypeText, TypeNumber, TypeSelect:
		return true
	}
	return false
}

// Field is a typed attribute definition. The report flags control how
// rendering collaborators place the field in tables and charts; the
// engine itself only reads Type and the axis/compare flags.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`

	// Options are the allowed values when Type is select. Checked at
	// input-validation time only; not enforced as a stored invariant.
	Options []string `json:"options,omitempty"`

	// Report-usage flags
	UseForRecordsTable      bool `json:"useForRecordsTable"`
	IsColumn3               bool `json:"isColumn3"`
	IsColumn4               bool `json:"isColumn4"`
	IsColumn5               bool `json:"isColumn5"`
	UseForComparativeReport bool `json:"useForComparativeReports"`
	IsHorizontalAxis        bool `json:"isHorizontalAxis"`
	IsCompareField          bool `json:"isCompareField"`
}

// NewField creates a Field with a fresh id.
func NewField(name string, fieldType FieldType) *Field {
	return &Field{
		ID:   id.New(),
		Name: name,
		Type: fieldType,
	}
}

// IsNumeric reports whether the field holds numeric values.
func (f *Field) IsNumeric() bool {
	return f.Type == TypeNumber
}

// Validate implements Validatable.
func (f *Field) Validate(ctx context.Context) error {
	if f.ID == "" {
		return apperror.NewValidation("field id is required").
			WithDetail("field", "id")
	}
	if f.Name == "" {
		return apperror.NewValidation("field name is required").
			WithDetail("field", "name")
	}
	if !ValidFieldType(f.Type) {
		return apperror.NewValidation("invalid field type").
			WithDetail("field", "type").
			WithDetail("value", string(f.Type))
	}
	if f.Type == TypeSelect && len(f.Options) == 0 {
		return apperror.NewValidation("select field requires options").
			WithDetail("field", "options")
	}
	return nil
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	cp := *f
	if f.Options != nil {
		cp.Options = append([]string{}, f.Options...)
	}
	return &cp
}
