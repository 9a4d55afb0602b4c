package message

// Body wraps a Payload with the correlation fields. MsgID and InReplyTo are nil
// when absent.
type Body struct {
	MsgID     *uint64
	InReplyTo *uint64
	Payload   Payload
}

// Envelope is the unit exchanged between participants.
type Envelope struct {
	Src  Identifier
	Dest Identifier
	Body Body
}

// NewEnvelope ...
func NewEnvelope(src, dest Identifier, msgID *uint64, payload Payload) Envelope {
	return Envelope{
		Src:  src,
		Dest: dest,
		Body: Body{
			MsgID:   msgID,
			Payload: payload,
		},
	}
}

// Reply returns the Envelope answering e with payload, numbered msgID. The
// sender and recipient are swapped and in_reply_to is set to e's msg_id, or
// left absent when e has none. e is not modified and shares nothing with the
// result.
func (e Envelope) Reply(msgID uint64, payload Payload) Envelope {
	return Envelope{
		Src:  e.Dest,
		Dest: e.Src,
		Body: Body{
			MsgID:     Uint(msgID),
			InReplyTo: copyUint(e.Body.MsgID),
			Payload:   payload,
		},
	}
}

// Uint returns a pointer to v, for filling optional fields.
func Uint(v uint64) *uint64 {
	return &v
}

func copyUint(p *uint64) *uint64 {
	if p == nil {
		return nil
	}
	return Uint(*p)
}
