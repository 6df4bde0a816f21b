// Package dto defines request and response bodies for the v1 API.
package dto

// IDResponse returns the id of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// DeletedResponse reports whether a delete actually removed something.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// SuccessResponse is a generic success message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
