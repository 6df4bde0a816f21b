package dto

import "fieldbook/internal/core/model"

// UpdateSettingsRequest patches workspace settings. Nil pointers leave
// the current value untouched.
type UpdateSettingsRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	EntityName  *string   `json:"entityName"`
	NavbarTitle *string   `json:"navbarTitle"`
	KPIFields   *[]string `json:"kpiFields"`
}

func (r UpdateSettingsRequest) ApplyTo(cfg *model.Config) {
	if r.Title != nil {
		cfg.Title = *r.Title
	}
	if r.Description != nil {
		cfg.Description = *r.Description
	}
	if r.EntityName != nil {
		cfg.EntityName = *r.EntityName
	}
	if r.NavbarTitle != nil {
		cfg.NavbarTitle = *r.NavbarTitle
	}
	if r.KPIFields != nil {
		cfg.KPIFields = append([]string{}, (*r.KPIFields)...)
	}
}

// EntityGroupRequest replaces the member list of a named entity group.
// An empty list removes the group.
type EntityGroupRequest struct {
	EntityIDs []string `json:"entityIds"`
}

// SettingsResponse is the wire form of workspace settings.
type SettingsResponse struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	EntityName   string              `json:"entityName"`
	NavbarTitle  string              `json:"navbarTitle"`
	KPIFields    []string            `json:"kpiFields"`
	EntityGroups map[string][]string `json:"entityGroups"`
}

func FromConfig(cfg model.Config) SettingsResponse {
	resp := SettingsResponse{
		Title:        cfg.Title,
		Description:  cfg.Description,
		EntityName:   cfg.EntityName,
		NavbarTitle:  cfg.NavbarTitle,
		KPIFields:    cfg.KPIFields,
		EntityGroups: cfg.EntityGroups,
	}
	if resp.KPIFields == nil {
		resp.KPIFields = []string{}
	}
	if resp.EntityGroups == nil {
		resp.EntityGroups = map[string][]string{}
	}
	return resp
}
