package motion

// SectionThreshold is the visible fraction at which a section counts as in
// view: the majority of it must be on screen.
const SectionThreshold = 0.5

// SectionTracker maintains the active page section from intersection
// reports.
//
// Batches apply in arrival order, and the latest batch with an intersecting
// entry wins. Within a batch only the last entry per id counts; among the
// intersecting ones the highest ratio wins and ties go to the section that
// comes first in the page. Non-intersecting entries never clear the active
// id, so the last section in view stays highlighted.
type SectionTracker struct {
	ids      []string
	order    map[string]int
	active   string
	observer Observer
	onChange []func(id string)
}

// NewSectionTracker creates a tracker for ids in page order, starting with
// initial active.
func NewSectionTracker(ids []string, initial string) *SectionTracker {
	order := make(map[string]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}
	return &SectionTracker{
		ids:    append([]string(nil), ids...),
		order:  order,
		active: initial,
	}
}

// Mount observes every section at SectionThreshold.
func (t *SectionTracker) Mount(w VisibilityWatcher) {
	t.Unmount()
	t.observer = w.Observe(WatchOptions{Threshold: SectionThreshold}, t.Apply, t.ids...)
}

// Unmount disconnects the observer.
func (t *SectionTracker) Unmount() {
	if t.observer != nil {
		t.observer.Disconnect()
		t.observer = nil
	}
}

// Mounted reports whether the tracker is observing.
func (t *SectionTracker) Mounted() bool { return t.observer != nil }

// Active returns the active section id.
func (t *SectionTracker) Active() string { return t.active }

// Sections returns the tracked ids in page order.
func (t *SectionTracker) Sections() []string {
	return append([]string(nil), t.ids...)
}

// OnChange registers fn to run whenever the active id changes.
func (t *SectionTracker) OnChange(fn func(id string)) {
	t.onChange = append(t.onChange, fn)
}

// Apply folds one batch of entries into the active id. Entries for unknown
// ids are ignored.
func (t *SectionTracker) Apply(entries []IntersectionEntry) {
	latest := make(map[string]IntersectionEntry, len(entries))
	for _, e := range entries {
		if _, ok := t.order[e.ID]; ok {
			latest[e.ID] = e
		}
	}

	best := ""
	bestRatio := -1.0
	for _, id := range t.ids {
		e, ok := latest[id]
		if !ok || !e.Intersecting {
			continue
		}
		if e.Ratio > bestRatio {
			best, bestRatio = id, e.Ratio
		}
	}
	if best == "" || best == t.active {
		return
	}
	t.active = best
	for _, fn := range t.onChange {
		fn(best)
	}
}
