// Package registry holds the content produced by one load pass. A Registry is
// built once and never mutated, so handlers read it without locking.
package registry

import (
	"sort"
	"time"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
)

// Registry is the immutable result of loading a content tree.
type Registry struct {
	skills   []model.Skill
	byID     map[string]int
	packages []model.Package
	byPkg    map[string]int
	missing  []model.MissingReference
	loadedAt time.Time
}

// Stats summarises a Registry.
type Stats struct {
	Skills   int       `json:"skills"`
	Packages int       `json:"packages"`
	Tabs     int       `json:"tabs"`
	Shapes   int       `json:"shapes"`
	Missing  int       `json:"missing"`
	LoadedAt time.Time `json:"loaded_at"`
}

// New builds a Registry. Skills and packages are sorted by identifier; missing
// references keep their order.
func New(skills []model.Skill, packages []model.Package, missing []model.MissingReference) *Registry {
	r := &Registry{
		skills:   append([]model.Skill(nil), skills...),
		packages: append([]model.Package(nil), packages...),
		missing:  append([]model.MissingReference(nil), missing...),
		loadedAt: time.Now(),
	}
	sort.Slice(r.skills, func(i, j int) bool { return r.skills[i].Identifier < r.skills[j].Identifier })
	sort.Slice(r.packages, func(i, j int) bool { return r.packages[i].Identifier < r.packages[j].Identifier })

	r.byID = make(map[string]int, len(r.skills))
	for i, s := range r.skills {
		r.byID[s.Identifier] = i
	}
	r.byPkg = make(map[string]int, len(r.packages))
	for i, p := range r.packages {
		tabs := append([]model.Tab(nil), p.Tabs...)
		sort.Slice(tabs, func(a, b int) bool { return tabs[a].Identifier < tabs[b].Identifier })
		r.packages[i].Tabs = tabs
		r.byPkg[p.Identifier] = i
	}
	return r
}

// Skills returns all skills sorted by identifier.
func (r *Registry) Skills() []model.Skill {
	return append([]model.Skill(nil), r.skills...)
}

// Skill looks up a skill.
func (r *Registry) Skill(id string) (model.Skill, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.Skill{}, false
	}
	return r.skills[i], true
}

// HasSkill reports whether id names a loaded skill.
func (r *Registry) HasSkill(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Known returns the set of skill identifiers.
func (r *Registry) Known() skilltree.SkillSet {
	set := make(skilltree.SkillSet, len(r.skills))
	for _, s := range r.skills {
		set[s.Identifier] = struct{}{}
	}
	return set
}

// Packages returns all packages sorted by identifier.
func (r *Registry) Packages() []model.Package {
	return append([]model.Package(nil), r.packages...)
}

// Package looks up a package.
func (r *Registry) Package(id string) (model.Package, bool) {
	i, ok := r.byPkg[id]
	if !ok {
		return model.Package{}, false
	}
	return r.packages[i], true
}

// Tab looks up a tab within a package.
func (r *Registry) Tab(pkg, tab string) (model.Tab, bool) {
	i, ok := r.byPkg[pkg]
	if !ok {
		return model.Tab{}, false
	}
	t, ok := r.packages[i].Tab(tab)
	if !ok {
		return model.Tab{}, false
	}
	return *t, true
}

// Missing returns the missing references in the order they were found.
func (r *Registry) Missing() []model.MissingReference {
	return append([]model.MissingReference(nil), r.missing...)
}

// LoadedAt is the time the Registry was built.
func (r *Registry) LoadedAt() time.Time {
	return r.loadedAt
}

// Stats counts the contents of the Registry.
func (r *Registry) Stats() Stats {
	st := Stats{
		Skills:   len(r.skills),
		Packages: len(r.packages),
		Missing:  len(r.missing),
		LoadedAt: r.loadedAt,
	}
	for _, p := range r.packages {
		st.Tabs += len(p.Tabs)
		for _, t := range p.Tabs {
			st.Shapes += t.Shapes
		}
	}
	return st
}
