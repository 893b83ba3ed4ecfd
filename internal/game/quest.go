package game

// Quest tracks a single objective. Completed implies Started; rewards are
// granted exactly once, at the started→completed transition.
type Quest struct {
	ID           string         `json:"quest_id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Description  string         `json:"description" yaml:"description"`
	Requirements map[string]int `json:"requirements" yaml:"requirements"`
	Rewards      []Item         `json:"rewards" yaml:"rewards"`
	Started      bool           `json:"started" yaml:"-"`
	Completed    bool           `json:"completed" yaml:"-"`
}

// Clone returns an independent copy of the quest template.
func (q *Quest) Clone() *Quest {
	out := *q
	out.Requirements = make(map[string]int, len(q.Requirements))
	for k, v := range q.Requirements {
		out.Requirements[k] = v
	}
	out.Rewards = make([]Item, 0, len(q.Rewards))
	for _, r := range q.Rewards {
		out.Rewards = append(out.Rewards, r.Clone())
	}
	return &out
}

// RequirementProgress describes how far along one quest requirement is.
type RequirementProgress struct {
	Required int `json:"required"`
	Current  int `json:"current"`
}
