package model

// Snapshot is the whole in-memory dataset: every registry reads and
// mutates it through the dataset store, and transfer codecs serialize
// it wholesale.
type Snapshot struct {
	Config   Config    `json:"config"`
	Entities []*Entity `json:"entities"`
	Fields   []*Field  `json:"fields"`
	Records  []*Record `json:"records"`
}

// NewSnapshot returns an empty snapshot with default config.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Config:   DefaultConfig(),
		Entities: []*Entity{},
		Fields:   []*Field{},
		Records:  []*Record{},
	}
}

// Clone returns a deep copy. The store hands clones across its
// boundary so callers can never alias the coordinator's state.
func (s *Snapshot) Clone() *Snapshot {
	cp := &Snapshot{
		Config:   s.Config.Clone(),
		Entities: make([]*Entity, len(s.Entities)),
		Fields:   make([]*Field, len(s.Fields)),
		Records:  make([]*Record, len(s.Records)),
	}
	for i, e := range s.Entities {
		cp.Entities[i] = e.Clone()
	}
	for i, f := range s.Fields {
		cp.Fields[i] = f.Clone()
	}
	for i, r := range s.Records {
		cp.Records[i] = r.Clone()
	}
	return cp
}

// EntityByID returns the entity with the given id, nil when absent.
func (s *Snapshot) EntityByID(id string) *Entity {
	for _, e := range s.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FieldByID returns the field with the given id, nil when absent.
func (s *Snapshot) FieldByID(id string) *Field {
	for _, f := range s.Fields {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// RecordByID returns the record with the given id, nil when absent.
func (s *Snapshot) RecordByID(id string) *Record {
	for _, r := range s.Records {
		if r.ID == id {
			return r
		}
	}
	return nil
}
