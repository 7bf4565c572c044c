package motion

// IntersectionEntry reports how much of an observed element lies inside the
// watcher's root box.
type IntersectionEntry struct {
	ID           string
	Intersecting bool
	// Ratio is the visible fraction of the element's area in [0, 1].
	Ratio float64
}

// EntryFunc receives one batch of entries. Entries within a batch are in
// the order the watcher produced them.
type EntryFunc func(entries []IntersectionEntry)

// WatchOptions configures an observation.
type WatchOptions struct {
	// Margin grows (positive) or shrinks (negative) the root box on every
	// side. A negative margin requires an element to be that far inside the
	// viewport edge before it counts as intersecting.
	Margin float64
	// Threshold is the visible fraction at which an element counts as
	// intersecting. Zero means any overlap.
	Threshold float64
}

// Observer is a live observation returned by VisibilityWatcher.Observe.
type Observer interface {
	Observe(id string)
	Unobserve(id string)
	// Disconnect stops all observation. No further batches are delivered.
	Disconnect()
}

// VisibilityWatcher detects element visibility within the viewport.
type VisibilityWatcher interface {
	Observe(opts WatchOptions, fn EntryFunc, ids ...string) Observer
}

// watch is the shared Observer implementation used by ManualWatcher and
// Viewport.
type watch struct {
	opts      WatchOptions
	fn        EntryFunc
	ids       []string
	reported  map[string]bool // last intersecting state sent per id
	connected bool
	detach    func(*watch)
}

func newWatch(opts WatchOptions, fn EntryFunc, ids []string, detach func(*watch)) *watch {
	w := &watch{
		opts:      opts,
		fn:        fn,
		reported:  make(map[string]bool, len(ids)),
		connected: true,
		detach:    detach,
	}
	for _, id := range ids {
		w.Observe(id)
	}
	return w
}

func (w *watch) Observe(id string) {
	if !w.connected || w.has(id) {
		return
	}
	w.ids = append(w.ids, id)
}

func (w *watch) Unobserve(id string) {
	for i, v := range w.ids {
		if v == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			delete(w.reported, id)
			return
		}
	}
}

func (w *watch) Disconnect() {
	if !w.connected {
		return
	}
	w.connected = false
	w.ids = nil
	clear(w.reported)
	if w.detach != nil {
		w.detach(w)
	}
}

func (w *watch) has(id string) bool {
	for _, v := range w.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (w *watch) deliver(entries []IntersectionEntry) {
	if !w.connected || len(entries) == 0 {
		return
	}
	w.fn(entries)
}

// watchSet tracks live watches for a watcher implementation.
type watchSet struct {
	watches []*watch
}

func (s *watchSet) add(opts WatchOptions, fn EntryFunc, ids []string) *watch {
	w := newWatch(opts, fn, ids, s.remove)
	s.watches = append(s.watches, w)
	return w
}

func (s *watchSet) remove(w *watch) {
	for i, v := range s.watches {
		if v == w {
			copy(s.watches[i:], s.watches[i+1:])
			s.watches[len(s.watches)-1] = nil
			s.watches = s.watches[:len(s.watches)-1]
			return
		}
	}
}

// snapshot returns the current watches so callbacks that disconnect do not
// disturb iteration.
func (s *watchSet) snapshot() []*watch {
	out := make([]*watch, len(s.watches))
	copy(out, s.watches)
	return out
}

// ManualWatcher is a VisibilityWatcher driven by injected entries. Each
// Deliver call forms one batch per observer.
type ManualWatcher struct {
	set watchSet
}

// NewManualWatcher creates a watcher with no observers.
func NewManualWatcher() *ManualWatcher {
	return &ManualWatcher{}
}

// Observe registers fn for the given ids.
func (m *ManualWatcher) Observe(opts WatchOptions, fn EntryFunc, ids ...string) Observer {
	return m.set.add(opts, fn, ids)
}

// Deliver hands each observer the subset of entries for ids it observes.
func (m *ManualWatcher) Deliver(entries ...IntersectionEntry) {
	for _, w := range m.set.snapshot() {
		var batch []IntersectionEntry
		for _, e := range entries {
			if w.has(e.ID) {
				batch = append(batch, e)
			}
		}
		w.deliver(batch)
	}
}

// Enter delivers a fully visible, intersecting entry for id.
func (m *ManualWatcher) Enter(id string) {
	m.Deliver(IntersectionEntry{ID: id, Intersecting: true, Ratio: 1})
}

// Leave delivers a non-intersecting entry for id.
func (m *ManualWatcher) Leave(id string) {
	m.Deliver(IntersectionEntry{ID: id})
}

// Live returns the number of connected observers.
func (m *ManualWatcher) Live() int {
	return len(m.set.watches)
}

// Observed reports whether any connected observer watches id.
func (m *ManualWatcher) Observed(id string) bool {
	for _, w := range m.set.watches {
		if w.has(id) {
			return true
		}
	}
	return false
}
