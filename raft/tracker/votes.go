package tracker

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/Orenef11/scylla/utils"
)

// VoteResult said the possible outcomes of an election campaign.
type VoteResult int

// Outcome enum constants.
const (
	// VoteUnknown means not enough responses arrived yet, either because
	// servers have not voted or responses were lost.
	VoteUnknown VoteResult = iota
	// VoteWon means the candidate has won the election.
	VoteWon
	// VoteLost means a quorum of servers has voted against the candidate.
	VoteLost
)

var voteResultString = []string{
	"Unknown",
	"Won",
	"Lost",
}

func (result VoteResult) String() string {
	return voteResultString[result]
}

// ElectionTracker is the state of an election in a single quorum.
type ElectionTracker struct {
	// all eligible voters
	suffrage map[uint64]struct{}
	// members responded so far
	responded map[uint64]struct{}
	granted   int
}

func makeElectionTracker(addrs []ServerAddress) *ElectionTracker {
	suffrage := make(map[uint64]struct{})
	for _, addr := range addrs {
		if addr.CanVote {
			suffrage[addr.ID] = struct{}{}
		}
	}

	return &ElectionTracker{
		suffrage:  suffrage,
		responded: make(map[uint64]struct{}),
	}
}

// RegisterVote records one response. Responses from members without
// suffrage are not counted and reported with false. A duplicated response
// from the same member is counted only once, first response wins.
func (e *ElectionTracker) RegisterVote(from uint64, granted bool) bool {
	if _, ok := e.suffrage[from]; !ok {
		return false
	}

	if _, ok := e.responded[from]; !ok {
		// have not counted this vote yet
		e.responded[from] = struct{}{}
		if granted {
			e.granted++
		}
	}
	return true
}

// TallyVotes classifies the election outcome for this quorum. The campaign
// is lost only once even the members yet to respond could not grant enough
// votes to reach quorum.
func (e *ElectionTracker) TallyVotes() VoteResult {
	quorum := quorum(len(e.suffrage))
	if e.granted >= quorum {
		return VoteWon
	}

	utils.Assert(len(e.responded) <= len(e.suffrage),
		"responded %d beyond suffrage %d", len(e.responded), len(e.suffrage))

	unknown := len(e.suffrage) - len(e.responded)
	if e.granted+unknown >= quorum {
		return VoteUnknown
	}
	return VoteLost
}

func (e *ElectionTracker) String() string {
	return fmt.Sprintf("{responded: %d of %d, granted: %d}",
		len(e.responded), len(e.suffrage), e.granted)
}

// Votes is the candidate's state specific to one election campaign. During
// a joint configuration it tracks both electorates; the campaign is won
// only when both report a win.
type Votes struct {
	voters   []ServerAddress
	current  *ElectionTracker
	previous *ElectionTracker
}

// MakeVotes create election state for one campaign over the given
// configuration.
func MakeVotes(conf Configuration) *Votes {
	conf.Verify()

	votes := &Votes{
		voters:  unionAddresses(conf),
		current: makeElectionTracker(conf.Current),
	}
	if conf.IsJoint() {
		votes.previous = makeElectionTracker(conf.Previous)
	}
	return votes
}

// Voters return the union address set of both electorates, the servers a
// candidate sends vote requests to.
func (v *Votes) Voters() []ServerAddress {
	return v.voters
}

// RegisterVote records one response. A member present in both electorates
// is counted independently in each.
func (v *Votes) RegisterVote(from uint64, granted bool) {
	counted := v.current.RegisterVote(from, granted)
	if v.previous != nil && v.previous.RegisterVote(from, granted) {
		counted = true
	}

	if !counted {
		log.Debugf("ignore vote from %d, not in the configuration", from)
	}
}

// TallyVotes combines the electorate outcomes: won only if every tracked
// electorate reports a win, lost as soon as either reports a loss.
func (v *Votes) TallyVotes() VoteResult {
	current := v.current.TallyVotes()
	if v.previous == nil {
		return current
	}

	previous := v.previous.TallyVotes()
	if current == VoteLost || previous == VoteLost {
		return VoteLost
	}
	if current == VoteWon && previous == VoteWon {
		return VoteWon
	}
	return VoteUnknown
}

func (v *Votes) String() string {
	if v.previous != nil {
		return fmt.Sprintf("current: %v, previous: %v", v.current, v.previous)
	}
	return fmt.Sprintf("current: %v", v.current)
}

func unionAddresses(conf Configuration) []ServerAddress {
	byID := make(map[uint64]ServerAddress)
	for _, addr := range append(conf.Current, conf.Previous...) {
		if known, ok := byID[addr.ID]; ok {
			// a voter of either electorate is contacted as a voter
			addr.CanVote = addr.CanVote || known.CanVote
		}
		byID[addr.ID] = addr
	}

	voters := make([]ServerAddress, 0, len(byID))
	for _, addr := range byID {
		voters = append(voters, addr)
	}
	sort.Slice(voters, func(i, j int) bool {
		return voters[i].ID < voters[j].ID
	})
	return voters
}
