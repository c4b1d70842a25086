// Package tracker provides the leader side bookkeeping of the raft
// consensus algorithm.
//
// It contains three cooperating pieces. `Progress` records what the leader
// knows about a single follower's log, and controls how aggressively new
// entries are sent to it through the probe/pipeline/snapshot flow control
// states. `Tracker` owns one `Progress` per member of the active
// configuration, and calculates the commit index over the simple or joint
// quorum. `Votes` counts responses of an election campaign, joint
// configuration aware as well.
//
// The package holds no locks and performs no I/O: acknowledgements and vote
// responses must be applied one at a time from the owning role's event
// loop. Reordered or duplicated network delivery is handled semantically,
// `Accepted` never regresses, `IsStrayReject` drops stale rejections, and
// a duplicated vote is counted only once.
//
// Nothing here is persisted. On leader restart the surrounding role layer
// rebuilds a fresh `Tracker` and `Votes` from the durable log and
// configuration state.
package tracker
