// Package model defines the content types built at load time and the GORM
// models that hold per-user skill values.
package model

// Skill is one documentation page. Content is a template artifact that still
// needs rendering against a context.
type Skill struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// Package groups the tabs found in one content directory.
type Package struct {
	Identifier string `json:"identifier"`
	Tabs       []Tab  `json:"tabs"`
}

// Tab finds a tab by identifier.
func (p *Package) Tab(identifier string) (*Tab, bool) {
	for i := range p.Tabs {
		if p.Tabs[i].Identifier == identifier {
			return &p.Tabs[i], true
		}
	}
	return nil, false
}

// Tab is one transformed diagram. Content holds unresolved skill placeholders.
type Tab struct {
	Identifier string `json:"identifier"`
	Content    string `json:"content"`
	// Shapes is the number of shapes bound to a skill identifier.
	Shapes int `json:"shapes"`
}

// MissingReference records a diagram label whose identifier has no skill page.
type MissingReference struct {
	PackageIdentifier string `json:"package"`
	TabIdentifier     string `json:"tab"`
	RawLabel          string `json:"raw_label"`
}
