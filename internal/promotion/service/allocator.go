package service

import (
	"sort"

	"github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

// allocateGreedy consumes the ordered quantity largest-threshold-first,
// applying each slab as many whole times as the remainder allows.
//
// This is a greedy approximation, not an exact knapsack: it is optimal only
// while larger thresholds grant a free ratio at least as good as smaller
// ones, which slab design guarantees today. It lives behind this one
// function so an exact strategy can replace it without touching callers.
func allocateGreedy(slabs []domain.Slab, quantity int64) domain.Allocation {
	allocation := domain.Allocation{Breakdown: []domain.AllocationEntry{}}
	if quantity <= 0 || len(slabs) == 0 {
		return allocation
	}

	sorted := make([]domain.Slab, len(slabs))
	copy(sorted, slabs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ThresholdQuantity > sorted[j].ThresholdQuantity
	})

	remaining := quantity
	for _, slab := range sorted {
		if slab.ThresholdQuantity <= 0 || remaining < slab.ThresholdQuantity {
			continue
		}
		timesApplied := remaining / slab.ThresholdQuantity
		freeUnits := timesApplied * slab.FreeQuantity
		remaining -= timesApplied * slab.ThresholdQuantity

		allocation.Breakdown = append(allocation.Breakdown, domain.AllocationEntry{
			ThresholdQuantity: slab.ThresholdQuantity,
			FreeQuantity:      slab.FreeQuantity,
			TimesApplied:      timesApplied,
			FreeUnits:         freeUnits,
		})
		allocation.TotalFreeUnits += freeUnits
	}

	return allocation
}
