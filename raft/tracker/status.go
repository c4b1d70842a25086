package tracker

import (
	"sort"

	"golang.org/x/exp/maps"
)

// ProgressStatus gives a snapshot of one member's replication state.
type ProgressStatus struct {
	ID       uint64
	State    ProgressState
	MatchIdx uint64
	NextIdx  uint64
}

// Status gives some tracker runtime information.
type Status struct {
	// LeaderID return the owning leader's id.
	LeaderID uint64
	// Joint return whether a membership change is in flight.
	Joint bool
	// Members return per member replication state, ordered by id.
	Members []ProgressStatus
}

// Status collect a snapshot of every tracked member, for logging and
// introspection by the surrounding role layer.
func (t *Tracker) Status() Status {
	ids := maps.Keys(t.progress)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	members := make([]ProgressStatus, 0, len(ids))
	for _, id := range ids {
		p := t.progress[id]
		members = append(members, ProgressStatus{
			ID:       p.ID,
			State:    p.state,
			MatchIdx: p.MatchIdx,
			NextIdx:  p.NextIdx,
		})
	}

	return Status{
		LeaderID: t.myID,
		Joint:    len(t.previousVoters) != 0,
		Members:  members,
	}
}
