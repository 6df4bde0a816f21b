package kpi

import (
	"context"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/filter"
)

// Summary bundles the basic metrics with one period-bucketed series per
// KPI field.
type Summary struct {
	Metrics Metrics                      `json:"metrics"`
	Period  Period                       `json:"period"`
	Series  map[string]map[string]Bucket `json:"series"`
}

// Service computes KPI summaries over the dataset.
type Service struct {
	store dataset.Store
}

// NewService creates a new KPI service.
func NewService(store dataset.Store) *Service {
	return &Service{store: store}
}

// Summary filters the record set and computes basic metrics plus one
// bucketed series per requested field. When fieldIDs is empty the
// configured KPI field list is used. Fields that no longer exist are
// skipped. Period defaults to day.
func (s *Service) Summary(
	ctx context.Context,
	criteria filter.Criteria,
	fieldIDs []string,
	period Period,
) (*Summary, error) {
	if period == "" {
		period = ByDay
	}
	if !ValidPeriod(period) {
		return nil, apperror.NewValidation("unknown period").
			WithDetail("period", string(period))
	}
	if criteria.EntityID != "" {
		criteria.EntityIDs = append(criteria.EntityIDs, criteria.EntityID)
		criteria.EntityID = ""
	}

	return dataset.Get(ctx, s.store, func(snap *model.Snapshot) (*Summary, error) {
		records, err := filter.ApplyMultiple(snap.Records, criteria)
		if err != nil {
			return nil, err
		}

		ids := fieldIDs
		if len(ids) == 0 {
			ids = snap.Config.KPIFields
		}

		summary := &Summary{
			Metrics: BasicMetrics(records),
			Period:  period,
			Series:  map[string]map[string]Bucket{},
		}
		for _, id := range ids {
			if snap.FieldByID(id) == nil {
				continue
			}
			summary.Series[id] = GroupByPeriod(records, id, period)
		}
		return summary, nil
	})
}
