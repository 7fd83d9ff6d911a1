package aggregate

import "github.com/grantsscope/wrapped/internal/model"

// Index provides in-memory lookup of rounds and projects by ID, the join
// side of the aggregation.
type Index struct {
	rounds   map[string]model.Round
	projects map[string]model.Project
}

// NewIndex builds an Index. A duplicated ID keeps its first row.
func NewIndex(rounds []model.Round, projects []model.Project) *Index {
	idx := &Index{
		rounds:   make(map[string]model.Round, len(rounds)),
		projects: make(map[string]model.Project, len(projects)),
	}
	for _, r := range rounds {
		if _, ok := idx.rounds[r.ID]; !ok {
			idx.rounds[r.ID] = r
		}
	}
	for _, p := range projects {
		if _, ok := idx.projects[p.ID]; !ok {
			idx.projects[p.ID] = p
		}
	}
	return idx
}

// Round returns a round by ID.
func (i *Index) Round(id string) (model.Round, bool) {
	r, ok := i.rounds[id]
	return r, ok
}

// Project returns a project by ID.
func (i *Index) Project(id string) (model.Project, bool) {
	p, ok := i.projects[id]
	return p, ok
}
