package stage

import (
	"math"

	"github.com/phanxgames/motion"
)

// BlockKind selects how a page block animates.
type BlockKind uint8

const (
	// BlockReveal fades and slides in once it enters the viewport.
	BlockReveal BlockKind = iota
	// BlockStagger is a group whose items reveal one after another.
	BlockStagger
	// BlockCounter counts up to Value.
	BlockCounter
	// BlockBar fills to Value percent.
	BlockBar
)

// Block is a placeholder element on the page. Bounds is relative to the
// top-left corner of its section.
type Block struct {
	ID        string
	Kind      BlockKind
	Bounds    motion.Rect
	Direction motion.Direction
	Delay     float64
	Label     string

	// Items and Columns lay out stagger children in a grid inside Bounds.
	Items   int
	Columns int
	// Hoverable blocks (or their items) grow the cursor ring.
	Hoverable bool

	// Value is the counter target or the bar level.
	Value float64
}

// Section is a full-width band of the page tracked by the navigation.
type Section struct {
	ID     string
	Title  string
	Height float64
	Blocks []Block
}

// Page is the vertical list of sections laid out top to bottom.
type Page struct {
	Sections []Section
}

// itemGap separates stagger items.
const itemGap = 16

// DefaultPage returns the portfolio layout for the given screen width.
func DefaultPage(width float64) Page {
	inner := width - 160
	return Page{Sections: []Section{
		{ID: "hero", Title: "Hero", Height: 720, Blocks: []Block{
			{ID: "hero-title", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 260, Width: inner * 0.6, Height: 72}, Direction: motion.DirectionUp, Label: "Hello, I build things"},
			{ID: "hero-sub", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 352, Width: inner * 0.45, Height: 32}, Direction: motion.DirectionUp, Delay: 0.2, Label: "Backend, tooling and the odd game"},
			{ID: "hero-cta", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 416, Width: 160, Height: 44}, Direction: motion.DirectionUp, Delay: 0.35, Label: "See work", Hoverable: true},
		}},
		{ID: "about", Title: "About", Height: 640, Blocks: []Block{
			{ID: "about-heading", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 96, Width: 240, Height: 40}, Direction: motion.DirectionUp, Label: "About"},
			{ID: "about-text", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 168, Width: inner * 0.55, Height: 200}, Direction: motion.DirectionLeft, Label: "A few paragraphs about me"},
			{ID: "about-years", Kind: BlockCounter, Bounds: motion.Rect{X: width * 0.65, Y: 168, Width: 140, Height: 80}, Value: 8, Label: "years"},
			{ID: "about-projects", Kind: BlockCounter, Bounds: motion.Rect{X: width * 0.65, Y: 272, Width: 140, Height: 80}, Value: 40, Label: "projects"},
			{ID: "about-commits", Kind: BlockCounter, Bounds: motion.Rect{X: width * 0.65, Y: 376, Width: 140, Height: 80}, Value: 2500, Label: "commits"},
		}},
		{ID: "skills", Title: "Skills", Height: 600, Blocks: []Block{
			{ID: "skills-heading", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 96, Width: 240, Height: 40}, Direction: motion.DirectionUp, Label: "Skills"},
			{ID: "skill-go", Kind: BlockBar, Bounds: motion.Rect{X: 80, Y: 180, Width: inner, Height: 12}, Value: 92, Label: "Go"},
			{ID: "skill-sql", Kind: BlockBar, Bounds: motion.Rect{X: 80, Y: 240, Width: inner, Height: 12}, Value: 80, Delay: 0.1, Label: "SQL"},
			{ID: "skill-ts", Kind: BlockBar, Bounds: motion.Rect{X: 80, Y: 300, Width: inner, Height: 12}, Value: 74, Delay: 0.2, Label: "TypeScript"},
			{ID: "skill-k8s", Kind: BlockBar, Bounds: motion.Rect{X: 80, Y: 360, Width: inner, Height: 12}, Value: 61, Delay: 0.3, Label: "Kubernetes"},
		}},
		{ID: "experience", Title: "Experience", Height: 760, Blocks: []Block{
			{ID: "experience-heading", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 96, Width: 240, Height: 40}, Direction: motion.DirectionUp, Label: "Experience"},
			{ID: "experience-list", Kind: BlockStagger, Bounds: motion.Rect{X: 80, Y: 168, Width: inner, Height: 496}, Items: 4, Columns: 1, Label: "Role"},
		}},
		{ID: "projects", Title: "Projects", Height: 760, Blocks: []Block{
			{ID: "projects-heading", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 96, Width: 240, Height: 40}, Direction: motion.DirectionUp, Label: "Projects"},
			{ID: "projects-grid", Kind: BlockStagger, Bounds: motion.Rect{X: 80, Y: 168, Width: inner, Height: 496}, Items: 6, Columns: 3, Hoverable: true, Label: "Project"},
		}},
		{ID: "contact", Title: "Contact", Height: 600, Blocks: []Block{
			{ID: "contact-heading", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 96, Width: 240, Height: 40}, Direction: motion.DirectionUp, Label: "Contact"},
			{ID: "contact-card", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 168, Width: inner * 0.6, Height: 280}, Direction: motion.DirectionNone, Delay: 0.1, Label: "Say hello"},
			{ID: "contact-send", Kind: BlockReveal, Bounds: motion.Rect{X: 80, Y: 472, Width: 160, Height: 44}, Direction: motion.DirectionUp, Delay: 0.2, Label: "Send", Hoverable: true},
		}},
	}}
}

// SectionIDs returns the section ids in document order.
func (p Page) SectionIDs() []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Height returns the total document height.
func (p Page) Height() float64 {
	var h float64
	for _, s := range p.Sections {
		h += s.Height
	}
	return h
}

// SectionRect returns the document rectangle of section i.
func (p Page) SectionRect(i int, width float64) motion.Rect {
	var y float64
	for _, s := range p.Sections[:i] {
		y += s.Height
	}
	return motion.Rect{X: 0, Y: y, Width: width, Height: p.Sections[i].Height}
}

// ItemRect returns the rectangle of stagger item i inside block bounds b.
func (b Block) ItemRect(i int) motion.Rect {
	if b.Items <= 0 {
		return motion.Rect{}
	}
	cols := b.Columns
	if cols <= 0 || cols > b.Items {
		cols = b.Items
	}
	rows := int(math.Ceil(float64(b.Items) / float64(cols)))
	w := (b.Bounds.Width - float64(cols-1)*itemGap) / float64(cols)
	h := (b.Bounds.Height - float64(rows-1)*itemGap) / float64(rows)
	c, r := i%cols, i/cols
	return motion.Rect{
		X:      b.Bounds.X + float64(c)*(w+itemGap),
		Y:      b.Bounds.Y + float64(r)*(h+itemGap),
		Width:  w,
		Height: h,
	}
}
