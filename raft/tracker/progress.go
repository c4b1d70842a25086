package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/Orenef11/scylla/utils"
)

// MaxInFlight bounds the number of un-acked append requests a pipelining
// leader keeps outstanding to one follower.
const MaxInFlight uint = 10

// Rejected is the payload of an append rejection: the first index the
// follower reported as not matching, and the follower's last log index.
type Rejected struct {
	NonMatchingIdx uint64
	LastIdx        uint64
}

// Progress is the leader's view of one follower, including itself.
type Progress struct {
	belongID uint64

	// member id
	ID uint64

	// next entry index to send
	NextIdx uint64

	// highest index known to be replicated to this member
	MatchIdx uint64

	// highest index known to be committed by the member itself,
	// kept for lagging follower handling
	CommitIdx uint64

	// When in StateProbe, leader sends at most one append request at a
	// time, to discover the member's true log position without flooding
	// it. probeSent is true while that request is unresolved.
	//
	// When in StatePipeline, leader optimistically advances NextIdx after
	// each send and keeps up to MaxInFlight requests outstanding.
	//
	// When in StateSnapshot, a full snapshot is being transferred and
	// ordinary replication is suspended.
	state     ProgressState
	probeSent bool

	// ins is the pipeline window of un-acked requests.
	ins inFlights
}

func makeProgress(belong, id, nextIdx uint64) *Progress {
	utils.Assert(nextIdx > InvalidIndex,
		"%d node: %d next index must be positive", belong, id)

	return &Progress{
		belongID:  belong,
		ID:        id,
		NextIdx:   nextIdx,
		MatchIdx:  InvalidIndex,
		CommitIdx: InvalidIndex,
		state:     defaultProgressState(),
		probeSent: false,
		ins:       makeInFlights(MaxInFlight),
	}
}

// State return the current flow control state.
func (p *Progress) State() ProgressState {
	return p.state
}

// Accepted merges an acknowledgement that the member has appended entries
// up to idx. Append replies can arrive out of order or duplicated, so
// neither MatchIdx nor NextIdx ever regresses.
func (p *Progress) Accepted(idx uint64) {
	p.MatchIdx = utils.MaxUint64(idx, p.MatchIdx)
	// idx may be smaller if NextIdx was increased
	// optimistically in pipeline mode.
	p.NextIdx = utils.MaxUint64(idx+1, p.NextIdx)

	switch p.state {
	case StateProbe:
		p.probeSent = false
	case StatePipeline:
		p.ins.freeTo(idx)
	}

	utils.Assert(p.NextIdx > p.MatchIdx,
		"%d node: %d next index %d not ahead of match index %d",
		p.belongID, p.ID, p.NextIdx, p.MatchIdx)
}

// IsStrayReject test whether a rejection carries no new information given
// the current position, because it was delayed or reordered, and must be
// dropped without touching NextIdx.
func (p *Progress) IsStrayReject(rej Rejected) bool {
	if rej.NonMatchingIdx <= p.MatchIdx {
		// if the leader knows the position matches, the reject is stale
		return true
	}
	if rej.LastIdx < p.MatchIdx {
		return true
	}

	switch p.state {
	case StateSnapshot:
		// any reject during snapshot transfer is a stray one
		return true
	case StateProbe:
		// the reply is only valid if it matches the single
		// outstanding probe
		if rej.NonMatchingIdx != p.NextIdx-1 {
			return true
		}
	}
	return false
}

// ApplyReject regresses NextIdx toward the member's reported position and
// drops back to probe mode. Stray rejections are dropped without mutating
// state; the return value reports whether the rejection was applied.
func (p *Progress) ApplyReject(rej Rejected) bool {
	if p.IsStrayReject(rej) {
		log.Debugf("%d node: %d [next: %d, match: %d] ignore stray rejection: %d",
			p.belongID, p.ID, p.NextIdx, p.MatchIdx, rej.NonMatchingIdx)
		return false
	}

	p.NextIdx = utils.MaxUint64(InvalidIndex+1,
		utils.MinUint64(rej.NonMatchingIdx, rej.LastIdx+1))
	p.BecomeProbe()

	utils.Assert(p.NextIdx > p.MatchIdx,
		"%d node: %d next index %d not ahead of match index %d",
		p.belongID, p.ID, p.NextIdx, p.MatchIdx)
	return true
}

// CanSendTo return true if a new replication request can be sent to the
// member now.
func (p *Progress) CanSendTo() bool {
	switch p.state {
	case StateProbe:
		return !p.probeSent
	case StatePipeline:
		return !p.ins.full()
	case StateSnapshot:
		// replication suspended until the transfer completes
		return false
	default:
		panic("unreachable")
	}
}

// ReplicateTo records an append request dispatched with lastIdx as the
// index of its last entry.
func (p *Progress) ReplicateTo(lastIdx uint64) {
	switch p.state {
	case StateProbe:
		p.probeSent = true
	case StatePipeline:
		// optimistically increase the next index when pipelining
		p.NextIdx = utils.MaxUint64(p.NextIdx, lastIdx+1)
		p.ins.add(lastIdx)
	default:
		log.Fatalf("%d node: %d sending append in unhandled state %s",
			p.belongID, p.ID, p.state)
	}
}

// UpdateCommitted merges the commit index the member reported for itself.
func (p *Progress) UpdateCommitted(idx uint64) {
	p.CommitIdx = utils.MaxUint64(idx, p.CommitIdx)
}

// BecomeProbe transfer state to probe, and reset the in flight window.
func (p *Progress) BecomeProbe() {
	origin := p.state
	p.state = StateProbe
	p.probeSent = false
	p.ins.reset()

	log.Debugf("%d node: %d from %v => %v", p.belongID, p.ID, origin, p.state)
}

// BecomePipeline transfer state to pipeline. Only valid from probe, since
// pipelining requires an already matched baseline.
func (p *Progress) BecomePipeline() {
	utils.Assert(p.state == StateProbe,
		"%d node: %d invalid translation [%v => %v]",
		p.belongID, p.ID, p.state, StatePipeline)

	p.state = StatePipeline
	p.ins.reset()

	log.Debugf("%d node: %d from %v => %v", p.belongID, p.ID, StateProbe, p.state)
}

// BecomeSnapshot transfer state to snapshot, valid from any state. The
// member's log is too far behind for incremental replication; once the
// transfer at snpIdx completes replication resumes right after it.
func (p *Progress) BecomeSnapshot(snpIdx uint64) {
	origin := p.state
	p.state = StateSnapshot
	p.NextIdx = snpIdx + 1
	p.probeSent = false
	p.ins.reset()

	log.Debugf("%d node: %d from %v => %v [snapshot: %d]",
		p.belongID, p.ID, origin, p.state, snpIdx)
}
