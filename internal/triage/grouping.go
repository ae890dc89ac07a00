package triage

import (
	"fmt"
	"sort"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

// groupBatch collapses groupable notifications sharing a group id into
// one representative each, keeps singletons and non-groupable items as
// they are, and returns the whole list sorted by priority.
func groupBatch(items []domain.ProcessedNotification) []domain.ProcessedNotification {
	out := make([]domain.ProcessedNotification, 0, len(items))
	buckets := make(map[string][]domain.ProcessedNotification)
	var bucketOrder []string

	for _, n := range items {
		if n.IsGroupable && n.GroupID != "" {
			if _, seen := buckets[n.GroupID]; !seen {
				bucketOrder = append(bucketOrder, n.GroupID)
			}
			buckets[n.GroupID] = append(buckets[n.GroupID], n)
			continue
		}
		out = append(out, n)
	}

	for _, id := range bucketOrder {
		bucket := buckets[id]
		if len(bucket) >= 2 {
			out = append(out, representative(bucket))
		} else {
			out = append(out, bucket[0])
		}
	}

	sortByPriority(out)
	return out
}

// representative summarizes a bucket as a shallow copy of its first
// member with a rewritten title and description.
func representative(bucket []domain.ProcessedNotification) domain.ProcessedNotification {
	rep := bucket[0]

	desc := fmt.Sprintf("Multiple %s items: %s, %s", rep.Category, bucket[0].Title, bucket[1].Title)
	if len(bucket) > 2 {
		desc += "..."
	}

	rep.Title = fmt.Sprintf("%d %s notifications", len(bucket), rep.Category)
	rep.Description = desc
	rep.IsGrouped = true
	rep.GroupCount = len(bucket)
	return rep
}

// sortByPriority orders the list by descending priority, preserving the
// original order among equal priorities.
func sortByPriority(items []domain.ProcessedNotification) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AIPriority > items[j].AIPriority
	})
}
