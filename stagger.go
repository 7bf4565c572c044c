package motion

// StaggerGroup reveals its children in sequence from a single parent
// trigger. Children do not observe the viewport themselves.
type StaggerGroup struct {
	// StaggerDelay is the gap in seconds between consecutive children.
	StaggerDelay float64
	// DelayChildren is the wait before the first child starts.
	DelayChildren float64
	// Once keeps the group visible after its first reveal.
	Once bool
	// Margin is the parent's watch margin.
	Margin float64

	children []*staggerChild
	observer Observer
	ticker   Ticker
	mounted  bool
	state    RevealState
}

type staggerChild struct {
	ctrl *RevealController
	sink StyleSink
}

// NewStaggerGroup returns a group with the site's defaults: 0.08s stagger,
// 0.1s initial delay, once, margin -60.
func NewStaggerGroup() *StaggerGroup {
	return &StaggerGroup{
		StaggerDelay:  0.08,
		DelayChildren: 0.1,
		Once:          true,
		Margin:        -60,
	}
}

// Add appends a child. The child's Once follows the group. If the group is
// already mounted the child is attached immediately in the group's state.
func (g *StaggerGroup) Add(cfg RevealConfig, sink StyleSink) *RevealController {
	cfg.Once = g.Once
	ctrl := NewRevealController(cfg)
	g.children = append(g.children, &staggerChild{ctrl: ctrl, sink: sink})
	if g.mounted {
		ctrl.attach(g.ticker, sink)
		if g.state == StateVisible {
			ctrl.setVisible(true, g.childDelay(len(g.children)-1)-cfg.Delay)
		}
	}
	return ctrl
}

// Children returns the child controllers in order.
func (g *StaggerGroup) Children() []*RevealController {
	out := make([]*RevealController, len(g.children))
	for i, c := range g.children {
		out[i] = c.ctrl
	}
	return out
}

// ChildDelays returns each child's effective reveal delay in seconds.
func (g *StaggerGroup) ChildDelays() []float64 {
	out := make([]float64, len(g.children))
	for i := range g.children {
		out[i] = g.childDelay(i)
	}
	return out
}

func (g *StaggerGroup) childDelay(i int) float64 {
	return g.children[i].ctrl.cfg.Delay + g.DelayChildren + float64(i)*g.StaggerDelay
}

// State returns the group's trigger state.
func (g *StaggerGroup) State() RevealState { return g.state }

// Mount observes the parent element id and attaches every child.
func (g *StaggerGroup) Mount(w VisibilityWatcher, t Ticker, id string) {
	if g.mounted {
		g.Unmount()
	}
	g.ticker = t
	g.mounted = true
	g.state = StateHidden
	for _, c := range g.children {
		c.ctrl.attach(t, c.sink)
	}
	g.observer = w.Observe(WatchOptions{Margin: g.Margin}, func(entries []IntersectionEntry) {
		g.setVisible(entries[len(entries)-1].Intersecting)
	}, id)
}

// Unmount disconnects the parent observer and unmounts every child. If the
// parent never reported, nothing was animated and nothing is left pending.
func (g *StaggerGroup) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	if g.observer != nil {
		g.observer.Disconnect()
		g.observer = nil
	}
	for _, c := range g.children {
		c.ctrl.Unmount()
	}
}

func (g *StaggerGroup) setVisible(visible bool) {
	if !g.mounted {
		return
	}
	if visible {
		if g.state == StateVisible {
			return
		}
		g.state = StateVisible
		if g.Once && g.observer != nil {
			g.observer.Disconnect()
			g.observer = nil
		}
		for i, c := range g.children {
			c.ctrl.setVisible(true, g.DelayChildren+float64(i)*g.StaggerDelay)
		}
		return
	}
	if g.Once || g.state == StateHidden {
		return
	}
	g.state = StateHidden
	for _, c := range g.children {
		c.ctrl.setVisible(false, 0)
	}
}
