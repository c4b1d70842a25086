package tracker

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Invalid value for raft.
const (
	InvalidIndex uint64 = 0
	InvalidID    uint64 = math.MaxUint64
)

// ServerAddress describes one member of the raft group. Members with
// CanVote false still receive replication but never count toward quorum.
type ServerAddress struct {
	ID      uint64
	CanVote bool
}

// Configuration is the active membership, supplied by the surrounding
// membership change subsystem. Previous is non-empty only while a joint
// membership change is in flight; during that window any quorum decision
// must hold in both member sets independently.
type Configuration struct {
	Current  []ServerAddress
	Previous []ServerAddress
}

// IsJoint test whether a membership change is in flight.
func (c *Configuration) IsJoint() bool {
	return len(c.Previous) != 0
}

// Verify check whether fields of Configuration is valid.
func (c *Configuration) Verify() bool {
	if len(c.Current) == 0 {
		log.Panicf("current configuration cannot be empty")
	}

	if len(voterSet(c.Current)) == 0 {
		log.Panicf("current configuration must contain a voter")
	}

	for _, addr := range append(c.Current, c.Previous...) {
		if addr.ID == InvalidID {
			log.Panicf("member id cannot be invalid")
		}
	}

	return true
}

func voterSet(addrs []ServerAddress) map[uint64]struct{} {
	voters := make(map[uint64]struct{})
	for _, addr := range addrs {
		if addr.CanVote {
			voters[addr.ID] = struct{}{}
		}
	}
	return voters
}
