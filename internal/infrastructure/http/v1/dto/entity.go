package dto

import "fieldbook/internal/core/model"

// CreateEntityRequest creates a new tracked entity.
type CreateEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameEntityRequest changes an entity's display name.
type RenameEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssignFieldsRequest replaces an entity's field assignment list.
type AssignFieldsRequest struct {
	FieldIDs []string `json:"fieldIds"`
}

// EntityResponse is the wire form of a tracked entity.
type EntityResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

func FromEntity(e *model.Entity) EntityResponse {
	fields := e.Fields
	if fields == nil {
		fields = []string{}
	}
	return EntityResponse{ID: e.ID, Name: e.Name, Fields: fields}
}

func FromEntities(entities []*model.Entity) []EntityResponse {
	out := make([]EntityResponse, 0, len(entities))
	for _, e := range entities {
		out = append(out, FromEntity(e))
	}
	return out
}
