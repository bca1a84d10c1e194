package component

import "sort"

// Flock is the CPU-side bookkeeping for one pack
type Flock struct {
	ID    PackID
	Count int
	Name  string
}

// Roster is the ordered set of flocks in a session, ordered by pack id
// Roster order is the capture priority order
type Roster struct {
	flocks []Flock
}

// NewRoster builds a roster, sorting by pack id
func NewRoster(flocks ...Flock) *Roster {
	r := &Roster{flocks: append([]Flock(nil), flocks...)}
	sort.Slice(r.flocks, func(i, j int) bool { return r.flocks[i].ID < r.flocks[j].ID })
	return r
}

// Len returns the number of flocks
func (r *Roster) Len() int { return len(r.flocks) }

// At returns a pointer to the i-th flock in roster order
func (r *Roster) At(i int) *Flock { return &r.flocks[i] }

// Get returns the flock for pack id
func (r *Roster) Get(id PackID) (*Flock, bool) {
	for i := range r.flocks {
		if r.flocks[i].ID == id {
			return &r.flocks[i], true
		}
	}
	return nil, false
}

// Ensure returns the flock for id, adding it with a default name when absent
// Packs seen in a snapshot but missing from the roster are adopted rather than dropped
func (r *Roster) Ensure(id PackID, name string) *Flock {
	if f, ok := r.Get(id); ok {
		return f
	}
	r.flocks = append(r.flocks, Flock{ID: id, Name: name})
	sort.Slice(r.flocks, func(i, j int) bool { return r.flocks[i].ID < r.flocks[j].ID })
	f, _ := r.Get(id)
	return f
}

// Count returns the count of pack id, zero when unknown
func (r *Roster) Count(id PackID) int {
	if f, ok := r.Get(id); ok {
		return f.Count
	}
	return 0
}

// Total returns the sum of counts across all flocks
func (r *Roster) Total() int {
	total := 0
	for i := range r.flocks {
		total += r.flocks[i].Count
	}
	return total
}

// Competitors returns the number of non-food flocks
func (r *Roster) Competitors() int {
	n := 0
	for i := range r.flocks {
		if r.flocks[i].ID.IsCompetitor() {
			n++
		}
	}
	return n
}

// Alive returns ids of non-food flocks with nonzero count, in roster order
func (r *Roster) Alive() []PackID {
	var ids []PackID
	for i := range r.flocks {
		if r.flocks[i].ID.IsCompetitor() && r.flocks[i].Count > 0 {
			ids = append(ids, r.flocks[i].ID)
		}
	}
	return ids
}

// Snapshot returns a copy safe to hand to the presentation layer
func (r *Roster) Snapshot() []Flock {
	return append([]Flock(nil), r.flocks...)
}

// Leaderboard returns non-food flocks sorted by count descending, ties by id
func (r *Roster) Leaderboard() []Flock {
	board := make([]Flock, 0, len(r.flocks))
	for _, f := range r.flocks {
		if f.ID.IsCompetitor() {
			board = append(board, f)
		}
	}
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Count != board[j].Count {
			return board[i].Count > board[j].Count
		}
		return board[i].ID < board[j].ID
	})
	return board
}
