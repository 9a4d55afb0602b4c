package node

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/mosaicnetworks/glomers/src/peers"
	"github.com/mosaicnetworks/glomers/src/store"
	"github.com/sirupsen/logrus"
)

// Core is the node state together with the handlers that mutate it. It is not
// safe for concurrent use; the Node serialises access.
type Core struct {
	// self is nil until init is handled
	self  *message.Identifier
	peers *peers.PeerSet

	// nextMsgID is the msg_id of the next reply
	nextMsgID uint64

	// rng is seeded with the node index on the first generate
	rng   *rand.Rand
	clock func() time.Time

	store store.Store

	logger *logrus.Entry
}

// NewCore creates an uninitialised Core.
func NewCore(store store.Store, clock func() time.Time, logger *logrus.Entry) *Core {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &Core{
		peers:     peers.NewPeerSet(nil),
		nextMsgID: 1,
		clock:     clock,
		store:     store,
		logger:    logger,
	}
}

// Handle answers one request with exactly one reply. On error the state is
// left as it was, except for ids already recorded in the ledger, and the
// error is a common.ProtocolErr that should stop the node.
func (c *Core) Handle(req message.Envelope) (message.Envelope, error) {
	var res message.Payload

	switch p := req.Body.Payload.(type) {
	case message.Init:
		if c.self != nil {
			return message.Envelope{}, unexpected(p)
		}
		c.init(p)
		res = message.InitOk{}
	case message.Echo:
		res = message.EchoOk{Echo: p.Echo}
	case message.Generate:
		id, err := c.generate()
		if err != nil {
			return message.Envelope{}, err
		}
		res = message.GenerateOk{ID: id}
	default:
		return message.Envelope{}, unexpected(p)
	}

	reply := req.Reply(c.nextMsgID, res)
	c.nextMsgID++

	return reply, nil
}

func (c *Core) init(p message.Init) {
	self := p.NodeID
	c.self = &self
	c.peers = peers.NewPeerSet(p.NodeIDs)

	index, others := c.peers.ExcludePeer(self)
	if index < 0 {
		c.logger.WithField("node_id", self).Warn("Own id missing from node_ids")
	}
	if c.peers.Distinct() < c.peers.Len() {
		c.logger.WithFields(logrus.Fields{
			"node_ids": c.peers.Strings(),
			"distinct": c.peers.Distinct(),
		}).Warn("Duplicate entries in node_ids")
	}

	c.logger.WithFields(logrus.Fields{
		"node_id":   self,
		"node_ids":  c.peers.Strings(),
		"neighbors": len(others),
	}).Debug("Initialised")
}

// Ready reports whether init was handled.
func (c *Core) Ready() bool {
	return c.self != nil
}

// Self returns the node's own Identifier, once initialised.
func (c *Core) Self() (message.Identifier, bool) {
	if c.self == nil {
		return message.Identifier{}, false
	}
	return *c.self, true
}

// Peers returns the cluster membership in the order received.
func (c *Core) Peers() []message.Identifier {
	return c.peers.IDs()
}

// NextMsgID returns the msg_id that the next reply will carry.
func (c *Core) NextMsgID() uint64 {
	return c.nextMsgID
}

func unexpected(p message.Payload) error {
	msgType := "<nil>"
	if p != nil {
		msgType = p.Type()
	}
	return common.NewProtocolErr(common.UnexpectedMessage,
		"Unexpected message type",
		errors.New(msgType))
}
