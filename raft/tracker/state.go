package tracker

// State transfer graph.
//
// Default state => probe (next: leader.lastIdx + 1)
//
// probe:
// 		send entries (probeSent: true)
// 		receive append response
//			accepted: => pipeline (match: idx, next: idx+1)
// 			rejected: => probe (next: min{nonMatchingIdx, lastIdx+1})
//			ignore on nonMatchingIdx != next-1
// 		send snapshot => snapshot (next: snpIdx + 1)
//
// pipeline:
// 		send entries (next: lastIdx sent + 1, window occupied in order)
// 		receive append response:
//			accepted: (match: max{match, idx}, window freed to idx)
// 			rejected: => probe (next: min{nonMatchingIdx, lastIdx+1})
//		send snapshot => snapshot (next: snpIdx + 1)
//
// snapshot:
// 		ordinary replication suspended, any rejection is stray
// 		transfer done => probe
type ProgressState int

// Replication flow control states.
const (
	StateProbe ProgressState = iota
	StatePipeline
	StateSnapshot
)

var progressStateString = []string{
	"Probe",
	"Pipeline",
	"Snapshot",
}

func (state ProgressState) String() string {
	return progressStateString[state]
}

func defaultProgressState() ProgressState {
	return StateProbe
}
