package services

import (
	"time"

	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
)

// PendingStats summarizes the current working set. It is recomputed from the
// snapshot on every change and never persisted.
type PendingStats struct {
	TotalObjects          int                              `json:"totalObjects"`
	CountsByType          map[insuredobject.ObjectType]int `json:"countsByType"`
	DistinctOrganizations int                              `json:"distinctOrganizations"`
	TotalValue            float64                          `json:"totalValue"`
	OldestAgeDays         int                              `json:"oldestAgeDays"`
}

func ComputeStats(objects []*insuredobject.PendingObject, now time.Time) PendingStats {
	stats := PendingStats{
		TotalObjects: len(objects),
		CountsByType: map[insuredobject.ObjectType]int{},
	}
	organizations := map[string]struct{}{}
	var oldest time.Time
	for _, obj := range objects {
		stats.CountsByType[obj.ObjectType]++
		organizations[obj.Organization] = struct{}{}
		stats.TotalValue += obj.Value
		if oldest.IsZero() || obj.CreatedAt.Before(oldest) {
			oldest = obj.CreatedAt
		}
	}
	stats.DistinctOrganizations = len(organizations)
	if !oldest.IsZero() {
		stats.OldestAgeDays = int(now.Sub(oldest).Hours() / 24)
	}
	return stats
}
