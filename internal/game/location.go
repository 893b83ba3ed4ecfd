package game

// Location is a node in the world graph. Connections are directed keys into
// the location map; the default world wires them symmetrically, but nothing
// requires that. Monsters is a spawn pool of monster keys, not live instances.
type Location struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Connections []string `json:"connections" yaml:"connections"`
	Items       []Item   `json:"items" yaml:"items"`
	NPCs        []string `json:"npcs" yaml:"npcs"`
	Monsters    []string `json:"monsters" yaml:"monsters"`
	Stations    []string `json:"stations" yaml:"stations"`
	Merchants   []string `json:"merchants" yaml:"merchants"`
	Visited     bool     `json:"visited" yaml:"-"`
}

// Clone deep-copies the location so per-session state never aliases the
// world template.
func (l *Location) Clone() *Location {
	out := *l
	out.Connections = append([]string(nil), l.Connections...)
	out.NPCs = append([]string(nil), l.NPCs...)
	out.Monsters = append([]string(nil), l.Monsters...)
	out.Stations = append([]string(nil), l.Stations...)
	out.Merchants = append([]string(nil), l.Merchants...)
	out.Items = make([]Item, 0, len(l.Items))
	for _, it := range l.Items {
		out.Items = append(out.Items, it.Clone())
	}
	return &out
}

// RemoveItem takes an item out of the location by name. Returns the item and
// whether it was present.
func (l *Location) RemoveItem(name string) (Item, bool) {
	for i, it := range l.Items {
		if equalFold(it.Name, name) {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}
