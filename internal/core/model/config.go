package model

// Config holds process-wide settings: naming overrides for the UI
// collaborators, KPI-view preferences and the entity-group partition
// used by report filtering. Created with defaults on first store
// initialization; read-modify-written on every settings change, never
// deleted.
type Config struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EntityName  string `json:"entityName"`
	NavbarTitle string `json:"navbarTitle"`

	// KPIFields lists the field ids shown on the KPI view.
	KPIFields []string `json:"kpiFields"`

	// EntityGroups partitions entities by a caller-supplied grouping
	// key. Ids of deleted entities may linger here; group views drop
	// them silently.
	EntityGroups map[string][]string `json:"entityGroups,omitempty"`
}

// DefaultConfig returns the settings installed on first initialization.
func DefaultConfig() Config {
	return Config{
		Title:       "Fieldbook",
		Description: "Track anything with custom fields",
		EntityName:  "Entity",
		NavbarTitle: "Fieldbook",
		KPIFields:   []string{},
	}
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	cp := c
	cp.KPIFields = append([]string{}, c.KPIFields...)
	if c.EntityGroups != nil {
		cp.EntityGroups = make(map[string][]string, len(c.EntityGroups))
		for k, v := range c.EntityGroups {
			cp.EntityGroups[k] = append([]string{}, v...)
		}
	}
	return cp
}
