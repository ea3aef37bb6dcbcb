package schedule

import (
	"sort"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

// SlotAvailability is one row of the best-times report.
type SlotAvailability struct {
	Slot           model.TimeSlot `json:"slot"`
	AvailableCount int            `json:"available_count"`
	AvailableNames []string       `json:"available_names"`
}

// Aggregate computes, per slot, who can attend, and ranks slots by
// popularity. Slots nobody picked are excluded. Ranking is descending by
// count and stable: equally popular slots keep their original ascending-time
// order. Names appear in response-submission order; duplicates are kept
// because a name is a label, not an identity.
//
// Slot ids referenced by a response that are not in slots are ignored here;
// the caller is responsible for rejecting foreign ids at submission time.
func Aggregate(slots []model.TimeSlot, responses []model.Response) []SlotAvailability {
	byID := make(map[string]*SlotAvailability, len(slots))
	ordered := make([]*SlotAvailability, 0, len(slots))

	for _, slot := range slots {
		entry := &SlotAvailability{Slot: slot}
		byID[slot.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, response := range responses {
		seen := make(map[string]struct{}, len(response.TimeSlotIDs))
		for _, slotID := range response.TimeSlotIDs {
			if _, dup := seen[slotID]; dup {
				continue
			}
			seen[slotID] = struct{}{}

			if entry, ok := byID[slotID]; ok {
				entry.AvailableCount++
				entry.AvailableNames = append(entry.AvailableNames, response.Name)
			}
		}
	}

	ranked := make([]SlotAvailability, 0, len(ordered))
	for _, entry := range ordered {
		if entry.AvailableCount > 0 {
			ranked = append(ranked, *entry)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvailableCount > ranked[j].AvailableCount
	})

	return ranked
}
