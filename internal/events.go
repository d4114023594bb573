package internal

import "slices"

// BuildEvents emits a START and an END event for every segment with a non
// empty angular interval. An edge pointing straight at the observer covers no
// angle at all, so it can never be the nearest obstacle over an interval and
// gets no events.
func BuildEvents(segments []*Segment) []Event {
	events := make([]Event, 0, 2*len(segments))
	for _, segment := range segments {
		if segment.Span() < AngleTolerance {
			continue
		}
		events = append(events,
			Event{Angle: segment.AngleStart, Kind: Start, Segment: segment},
			Event{Angle: segment.AngleEnd, Kind: End, Segment: segment},
		)
	}
	return events
}

// CompareEvents orders by angle (equal within AngleTolerance), then END before
// START, then by segment creation order. The last key makes the order total,
// so both sort strategies agree on every input.
func CompareEvents(a, b Event) int {
	if a.Angle < b.Angle-AngleTolerance {
		return -1
	}
	if a.Angle > b.Angle+AngleTolerance {
		return 1
	}
	if a.Kind != b.Kind {
		if a.Kind == End {
			return -1
		}
		return 1
	}
	return a.Segment.Seq - b.Segment.Seq
}

// SortEvents sorts in place with the chosen strategy. The threshold is the
// largest run the merge strategy hands to insertion sort; other strategies
// ignore it.
func SortEvents(events []Event, strategy SortStrategy, threshold int) {
	switch strategy {
	case SortQuick:
		slices.SortFunc(events, CompareEvents)
	case SortMerge:
		if threshold < 1 {
			threshold = 1
		}
		scratch := make([]Event, len(events))
		mergeSortHybrid(events, scratch, threshold)
	default:
		throwf(ErrUnknownSortStrategy, "%v", strategy)
	}
}

// Recursively halve, merge back through scratch (which must be at least as
// long as events), and insertion sort anything at or below the threshold.
func mergeSortHybrid(events, scratch []Event, threshold int) {
	if len(events) <= 1 {
		return
	}
	if len(events) <= threshold {
		insertionSortEvents(events)
		return
	}
	mid := len(events) / 2
	mergeSortHybrid(events[:mid], scratch[:mid], threshold)
	mergeSortHybrid(events[mid:], scratch[mid:], threshold)
	mergeEvents(events, mid, scratch)
}

// Merge the sorted runs events[:mid] and events[mid:]. Ties take from the left
// run, which keeps the merge stable.
func mergeEvents(events []Event, mid int, scratch []Event) {
	left := scratch[:mid]
	copy(left, events[:mid])
	right := events[mid:]

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if CompareEvents(left[i], right[j]) <= 0 {
			events[k] = left[i]
			i++
		} else {
			events[k] = right[j]
			j++
		}
		k++
	}
	// Whatever is left of the right run is already in place
	for i < len(left) {
		events[k] = left[i]
		i++
		k++
	}
}

func insertionSortEvents(events []Event) {
	for i := 1; i < len(events); i++ {
		key := events[i]
		j := i - 1
		for j >= 0 && CompareEvents(key, events[j]) < 0 {
			events[j+1] = events[j]
			j--
		}
		events[j+1] = key
	}
}
