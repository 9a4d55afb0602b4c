package node

import (
	"bytes"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/mosaicnetworks/glomers/src/net"
	"github.com/mosaicnetworks/glomers/src/store"
	"github.com/mosaicnetworks/glomers/src/telemetry"
	"github.com/sirupsen/logrus"
)

//Node defines a cluster node serving requests from a Transport
type Node struct {
	state

	conf   *Config
	logger *logrus.Entry

	core     *Core
	coreLock sync.Mutex

	trans net.Transport
	store store.Store

	start    time.Time
	received int
	sent     int
}

//NewNode is a factory method that returns a Node instance
func NewNode(conf *Config, store store.Store, trans net.Transport) *Node {
	node := Node{
		conf:   conf,
		logger: conf.Logger,
		core:   NewCore(store, conf.Clock, conf.Logger),
		trans:  trans,
		store:  store,
		start:  time.Now(),
	}

	return &node
}

//Run reads requests until the end of input, which is a normal stop. It
//returns the first error encountered; no reply is written for the request
//that caused it.
func (n *Node) Run() error {
	for {
		line, err := n.trans.ReadLine()
		if err == io.EOF {
			n.logger.Info("Detected EOF, exiting")
			return nil
		}
		if err != nil {
			n.logger.WithError(err).Error("Reading input")
			return err
		}

		if len(bytes.TrimSpace(line)) == 0 {
			n.logger.Debug("Skipping blank line")
			continue
		}

		if err := n.processLine(line); err != nil {
			n.fatal(err)
			return err
		}
	}
}

func (n *Node) processLine(line []byte) error {
	n.logger.WithField("line", string(line)).Debug("Received")

	req, err := message.Decode(line)
	if err != nil {
		return err
	}
	reqType := req.Body.Payload.Type()
	telemetry.MessagesReceived.WithLabelValues(reqType).Inc()

	reply, err := n.handle(req)
	if err != nil {
		return err
	}

	out, err := message.Encode(reply)
	if err != nil {
		return err
	}

	if err := n.trans.WriteLine(out); err != nil {
		return err
	}

	repType := reply.Body.Payload.Type()
	telemetry.MessagesSent.WithLabelValues(repType).Inc()
	if repType == message.GenerateOkType {
		telemetry.IDsGenerated.Inc()
	}
	n.sent++

	n.logger.WithField("line", string(out)).Debug("Sent")

	return nil
}

func (n *Node) handle(req message.Envelope) (message.Envelope, error) {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	n.received++

	if self, ok := n.core.Self(); ok && req.Dest != self {
		n.logger.WithFields(logrus.Fields{
			"dest": req.Dest,
			"self": self,
		}).Warn("Request addressed to another node")
	}

	reply, err := n.core.Handle(req)
	if err != nil {
		return message.Envelope{}, err
	}

	if err := n.store.SetMessage(*reply.Body.MsgID, reply); err != nil {
		return message.Envelope{}, common.NewProtocolErr(common.Storage, "journaling reply", err)
	}

	if n.getState() == Uninitialized && n.core.Ready() {
		n.setState(Ready)
		n.logger.WithField("node_id", reply.Src).Info("Ready")
	}

	return reply, nil
}

func (n *Node) fatal(err error) {
	kind := "transport"
	if perr, ok := err.(common.ProtocolErr); ok {
		kind = perr.Type().String()
	}
	telemetry.FatalErrors.WithLabelValues(kind).Inc()

	n.logger.WithFields(logrus.Fields{
		"kind":  kind,
		"error": err,
	}).Error("Fatal")
}

//Shutdown closes the transport and the store
func (n *Node) Shutdown() {
	if n.getState() == Shutdown {
		return
	}
	n.logger.Debug("Shutdown")

	n.setState(Shutdown)

	if err := n.trans.Close(); err != nil {
		n.logger.WithError(err).Error("Closing transport")
	}

	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	if err := n.store.Close(); err != nil {
		n.logger.WithError(err).Error("Closing store")
	}
}

//GetState returns the state of the node
func (n *Node) GetState() State {
	return n.getState()
}

//GetStats returns stats
func (n *Node) GetStats() map[string]string {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	id := "nil"
	if self, ok := n.core.Self(); ok {
		id = self.String()
	}

	timeElapsed := time.Since(n.start)

	var repliesPerSecond float64
	if timeElapsed > 0 {
		repliesPerSecond = float64(n.sent) / timeElapsed.Seconds()
	}

	s := map[string]string{
		"id":                 id,
		"state":              n.getState().String(),
		"num_peers":          strconv.Itoa(len(n.core.Peers())),
		"next_msg_id":        strconv.FormatUint(n.core.NextMsgID(), 10),
		"last_journaled":     strconv.FormatUint(n.store.LastMessage(), 10),
		"received":           strconv.Itoa(n.received),
		"sent":               strconv.Itoa(n.sent),
		"ids_issued":         strconv.Itoa(n.store.IDCount()),
		"replies_per_second": strconv.FormatFloat(repliesPerSecond, 'f', 2, 64),
	}
	return s
}

//GetPeers returns the cluster membership received with init
func (n *Node) GetPeers() []message.Identifier {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	return n.core.Peers()
}

//GetMessages returns the journaled replies with a msg_id greater than skip
func (n *Node) GetMessages(skip uint64) ([]message.Envelope, error) {
	n.coreLock.Lock()
	defer n.coreLock.Unlock()

	return n.store.GetMessages(skip)
}
