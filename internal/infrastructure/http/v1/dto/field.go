package dto

import (
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/fields"
)

// FieldRequest carries a field definition for create and update.
type FieldRequest struct {
	Name     string   `json:"name" binding:"required"`
	Type     string   `json:"type" binding:"required,oneof=text number select"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`

	UseForRecordsTable      bool `json:"useForRecordsTable"`
	IsColumn3               bool `json:"isColumn3"`
	IsColumn4               bool `json:"isColumn4"`
	IsColumn5               bool `json:"isColumn5"`
	UseForComparativeReport bool `json:"useForComparativeReport"`
	IsHorizontalAxis        bool `json:"isHorizontalAxis"`
	IsCompareField          bool `json:"isCompareField"`
}

func (r FieldRequest) ToSpec() fields.Spec {
	return fields.Spec{
		Name:     r.Name,
		Type:     model.FieldType(r.Type),
		Required: r.Required,
		Options:  r.Options,

		UseForRecordsTable:      r.UseForRecordsTable,
		IsColumn3:               r.IsColumn3,
		IsColumn4:               r.IsColumn4,
		IsColumn5:               r.IsColumn5,
		UseForComparativeReport: r.UseForComparativeReport,
		IsHorizontalAxis:        r.IsHorizontalAxis,
		IsCompareField:          r.IsCompareField,
	}
}

// FieldIDsRequest names a batch of fields to look up.
type FieldIDsRequest struct {
	FieldIDs []string `json:"fieldIds" binding:"required"`
}

// FieldResponse is the wire form of a field definition.
type FieldResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`

	UseForRecordsTable      bool `json:"useForRecordsTable"`
	IsColumn3               bool `json:"isColumn3"`
	IsColumn4               bool `json:"isColumn4"`
	IsColumn5               bool `json:"isColumn5"`
	UseForComparativeReport bool `json:"useForComparativeReport"`
	IsHorizontalAxis        bool `json:"isHorizontalAxis"`
	IsCompareField          bool `json:"isCompareField"`
}

func FromField(f *model.Field) FieldResponse {
	return FieldResponse{
		ID:       f.ID,
		Name:     f.Name,
		Type:     string(f.Type),
		Required: f.Required,
		Options:  f.Options,

		UseForRecordsTable:      f.UseForRecordsTable,
		IsColumn3:               f.IsColumn3,
		IsColumn4:               f.IsColumn4,
		IsColumn5:               f.IsColumn5,
		UseForComparativeReport: f.UseForComparativeReport,
		IsHorizontalAxis:        f.IsHorizontalAxis,
		IsCompareField:          f.IsCompareField,
	}
}

func FromFields(defs []*model.Field) []FieldResponse {
	out := make([]FieldResponse, 0, len(defs))
	for _, f := range defs {
		out = append(out, FromField(f))
	}
	return out
}
