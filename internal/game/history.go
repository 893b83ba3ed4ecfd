package game

import "encoding/json"

// History is a bounded log of entries; when full, the oldest entries are
// evicted.
type History struct {
	entries []string
	maxSize int
}

func NewHistory(maxSize int) *History {
	return &History{
		entries: make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func (h *History) Add(entry string) {
	h.entries = append(h.entries, entry)

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (h *History) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// Tail returns up to n of the most recent entries.
func (h *History) Tail(n int) []string {
	if n >= len(h.entries) {
		return h.Entries()
	}
	result := make([]string, n)
	copy(result, h.entries[len(h.entries)-n:])
	return result
}

func (h *History) Len() int { return len(h.entries) }

type historyJSON struct {
	MaxSize int      `json:"max_size"`
	Entries []string `json:"entries"`
}

func (h *History) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyJSON{MaxSize: h.maxSize, Entries: h.entries})
}

func (h *History) UnmarshalJSON(data []byte) error {
	var raw historyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.maxSize = raw.MaxSize
	h.entries = make([]string, 0, h.maxSize)
	h.entries = append(h.entries, raw.Entries...)
	return nil
}
