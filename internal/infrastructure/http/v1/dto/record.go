package dto

import (
	"time"

	"fieldbook/internal/core/model"
)

// CreateRecordRequest adds a data record for an entity.
type CreateRecordRequest struct {
	EntityID string         `json:"entityId" binding:"required"`
	Data     map[string]any `json:"data"`
}

// UpdateRecordRequest merges partial data into a record and may move
// its timestamp.
type UpdateRecordRequest struct {
	Data      map[string]any `json:"data"`
	Timestamp *time.Time     `json:"timestamp"`
}

// UpdateRecordDateRequest moves a record to a new timestamp.
type UpdateRecordDateRequest struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// RecordResponse is the wire form of a data record.
type RecordResponse struct {
	ID        string         `json:"id"`
	EntityID  string         `json:"entityId"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

func FromRecord(r *model.Record) RecordResponse {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	return RecordResponse{ID: r.ID, EntityID: r.EntityID, Timestamp: r.Timestamp, Data: data}
}

func FromRecords(records []*model.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
