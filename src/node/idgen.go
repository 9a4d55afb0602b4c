package node

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
)

// Generated ids are laid out as follows:
//
//  63            32 31  30 29                     0
//  +---------------+------+------------------------+
//  | epoch seconds | node |         random         |
//  +---------------+------+------------------------+
const (
	timeShift = 32
	nodeShift = 30
	nodeMask  = 1<<2 - 1
	randMask  = 1<<30 - 1

	// maxDraws bounds the redraws on ledger collisions within one call.
	maxDraws = 1 << 16
)

// ComposeID packs a timestamp, a node index and a random value into an id.
// Only the low 32 bits of the timestamp, the low 2 bits of the index and the
// low 30 bits of the random value are kept.
func ComposeID(t time.Time, index uint64, random uint32) uint64 {
	return uint64(uint32(t.Unix()))<<timeShift |
		(index&nodeMask)<<nodeShift |
		uint64(random)&randMask
}

// SplitID is the inverse of ComposeID.
func SplitID(id uint64) (seconds uint32, node uint64, random uint32) {
	return uint32(id >> timeShift),
		(id >> nodeShift) & nodeMask,
		uint32(id & randMask)
}

func (c *Core) generate() (uint64, error) {
	if c.self == nil {
		return 0, common.NewProtocolErr(common.Sequencing, "Generate received before Init", nil)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(int64(c.self.Index())))
	}

	for i := 0; i < maxDraws; i++ {
		id := ComposeID(c.clock(), c.self.Index(), c.rng.Uint32())

		seen, err := c.store.HasID(id)
		if err != nil {
			return 0, common.NewProtocolErr(common.Storage, "reading id ledger", err)
		}
		if seen {
			c.logger.WithField("id", id).Debug("Id already issued, drawing again")
			continue
		}

		if err := c.store.AddID(id); err != nil {
			return 0, common.NewProtocolErr(common.Storage, "recording id", err)
		}

		return id, nil
	}

	return 0, common.NewProtocolErr(common.Storage,
		"exhausted id space",
		fmt.Errorf("%d draws collided", maxDraws))
}
