package projector

// CollapseState is the externally owned expand/collapse UI state. It lives
// outside the data model on purpose: sections stay immutable and the state
// is testable on its own. Keys are section titles, and "{title}-{category}"
// for per-category state. Single writer; no locking needed.
type CollapseState struct {
	sections   map[string]bool
	categories map[string]bool
}

func NewCollapseState() *CollapseState {
	return &CollapseState{
		sections:   make(map[string]bool),
		categories: make(map[string]bool),
	}
}

// SeedCollapsed marks every given section collapsed, the initial load
// default. Category state starts expanded until toggled.
func (c *CollapseState) SeedCollapsed(views []SectionView) {
	for _, v := range views {
		c.sections[v.Title] = true
	}
}

// ToggleSection flips a section's collapsed state.
func (c *CollapseState) ToggleSection(title string) {
	c.sections[title] = !c.sections[title]
}

// ToggleCategory flips a category's collapsed state within a section.
func (c *CollapseState) ToggleCategory(title, category string) {
	key := categoryKey(title, category)
	c.categories[key] = !c.categories[key]
}

func (c *CollapseState) SectionCollapsed(title string) bool {
	return c.sections[title]
}

func (c *CollapseState) CategoryCollapsed(title, category string) bool {
	return c.categories[categoryKey(title, category)]
}

func categoryKey(title, category string) string {
	return title + "-" + category
}
