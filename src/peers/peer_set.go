package peers

import "github.com/mosaicnetworks/glomers/src/message"

//PeerSet is an ordered set of node Identifiers forming a cluster
type PeerSet struct {
	Peers []message.Identifier
	ByID  map[message.Identifier]int
}

//NewPeerSet creates a new PeerSet from a list of Identifiers. The list is kept
//as given, duplicates included; ByID maps an Identifier to its first position.
func NewPeerSet(ids []message.Identifier) *PeerSet {
	peerSet := &PeerSet{
		Peers: make([]message.Identifier, 0, len(ids)),
		ByID:  make(map[message.Identifier]int, len(ids)),
	}

	for _, id := range ids {
		if _, ok := peerSet.ByID[id]; !ok {
			peerSet.ByID[id] = len(peerSet.Peers)
		}
		peerSet.Peers = append(peerSet.Peers, id)
	}

	return peerSet
}

//Len returns the number of Peers in the PeerSet, duplicates included
func (peerSet *PeerSet) Len() int {
	return len(peerSet.Peers)
}

//Distinct returns the number of different Identifiers in the PeerSet
func (peerSet *PeerSet) Distinct() int {
	return len(peerSet.ByID)
}

//Contains ...
func (peerSet *PeerSet) Contains(id message.Identifier) bool {
	_, ok := peerSet.ByID[id]
	return ok
}

//IDs returns a copy of the PeerSet's Identifiers, in order
func (peerSet *PeerSet) IDs() []message.Identifier {
	res := make([]message.Identifier, len(peerSet.Peers))
	copy(res, peerSet.Peers)
	return res
}

//Strings returns the text form of the PeerSet's Identifiers, in order
func (peerSet *PeerSet) Strings() []string {
	res := make([]string, 0, len(peerSet.Peers))
	for _, id := range peerSet.Peers {
		res = append(res, id.String())
	}
	return res
}

// ExcludePeer is used to exclude a single peer from a list of peers. It
// returns the position of the excluded peer, or -1, and the other peers.
func (peerSet *PeerSet) ExcludePeer(peer message.Identifier) (int, []message.Identifier) {
	index := -1
	otherPeers := make([]message.Identifier, 0, len(peerSet.Peers))
	for i, p := range peerSet.Peers {
		if p != peer {
			otherPeers = append(otherPeers, p)
		} else {
			index = i
		}
	}
	return index, otherPeers
}
