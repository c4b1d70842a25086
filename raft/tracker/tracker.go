package tracker

import (
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"

	"github.com/Orenef11/scylla/utils"
)

func quorum(len int) int {
	return len/2 + 1
}

// Tracker owns the replication progress of every member of the active
// configuration, and calculates the commit index over it.
type Tracker struct {
	// copy of this server's id
	myID uint64

	progress map[uint64]*Progress

	currentVoters  map[uint64]struct{}
	previousVoters map[uint64]struct{}

	// True if the leader is a voter of the current configuration.
	//
	// 4.2.2 Removing the current leader
	// There will be a period of time (while it is committing C_new)
	// when a leader can manage a cluster that does not include itself;
	// it replicates log entries but does not count itself in majorities.
	leaderIsVoter bool
}

// MakeTracker create an empty tracker for the leader myID. A configuration
// must be installed before any quorum calculation.
func MakeTracker(myID uint64) *Tracker {
	return &Tracker{
		myID:           myID,
		progress:       make(map[uint64]*Progress),
		currentVoters:  make(map[uint64]struct{}),
		previousVoters: make(map[uint64]struct{}),
	}
}

// SetConfiguration reconcile tracked progress with a newly installed
// configuration. Members entering the configuration start probing from
// nextIdx, members leaving it are dropped, members staying keep their
// progress untouched.
func (t *Tracker) SetConfiguration(conf Configuration, nextIdx uint64) {
	conf.Verify()

	t.currentVoters = voterSet(conf.Current)
	t.previousVoters = voterSet(conf.Previous)

	members := make(map[uint64]struct{})
	for _, addr := range append(conf.Current, conf.Previous...) {
		members[addr.ID] = struct{}{}

		if _, ok := t.progress[addr.ID]; !ok {
			t.progress[addr.ID] = makeProgress(t.myID, addr.ID, nextIdx)

			log.Debugf("%d track node: %d [next: %d]", t.myID, addr.ID, nextIdx)
		}
	}

	for _, id := range maps.Keys(t.progress) {
		if _, ok := members[id]; !ok {
			delete(t.progress, id)

			log.Debugf("%d forget node: %d", t.myID, id)
		}
	}

	_, t.leaderIsVoter = t.currentVoters[t.myID]
}

// Find return progress for a member. May return nil if the member is not
// part of the current configuration any more, which happens when handling
// messages from removed members; the caller must ignore such messages.
func (t *Tracker) Find(id uint64) *Progress {
	return t.progress[id]
}

// LeaderProgress return the leader's own progress if it is a voter of the
// current configuration, nil otherwise.
func (t *Tracker) LeaderProgress() *Progress {
	if !t.leaderIsVoter {
		return nil
	}
	return t.progress[t.myID]
}

// Size return the number of tracked members.
func (t *Tracker) Size() int {
	return len(t.progress)
}

// majorityIdx return the largest index replicated to a majority of voters:
// with match indexes sorted descending, the one at the quorum rank.
func (t *Tracker) majorityIdx(voters map[uint64]struct{}) uint64 {
	matches := make([]uint64, 0, len(voters))
	for id := range voters {
		p, ok := t.progress[id]
		utils.Assert(ok, "%d voter %d has no progress", t.myID, id)

		matches = append(matches, p.MatchIdx)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i] > matches[j]
	})
	return matches[len(matches)/2]
}

// Committed calculate the current commit index based on the simple or
// joint quorum. During a joint configuration the index must be replicated
// to a majority of both voter sets independently. The result never drops
// below prevCommitIdx: the commit index must not regress once advanced.
func (t *Tracker) Committed(prevCommitIdx uint64) uint64 {
	utils.Assert(len(t.currentVoters) != 0,
		"%d no voters in current configuration", t.myID)

	idx := t.majorityIdx(t.currentVoters)
	if len(t.previousVoters) != 0 {
		idx = utils.MinUint64(idx, t.majorityIdx(t.previousVoters))
	}
	return utils.MaxUint64(prevCommitIdx, idx)
}
