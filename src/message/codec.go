package message

import (
	"bytes"
	"fmt"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/ugorji/go/codec"
)

// jsonHandle is shared by all encoders and decoders; a handle must not be
// modified once in use.
var jsonHandle = new(codec.JsonHandle)

// wireEnvelope and wireBody receive a decoded line. Leaf values are left
// untyped so that a value of the wrong JSON type is reported instead of being
// converted; nil means the key is absent or null.
type wireEnvelope struct {
	Src  interface{} `codec:"src"`
	Dest interface{} `codec:"dest"`
	Body *wireBody   `codec:"body"`
}

type wireBody struct {
	Type      interface{} `codec:"type"`
	MsgID     interface{} `codec:"msg_id"`
	InReplyTo interface{} `codec:"in_reply_to"`
	NodeID    interface{} `codec:"node_id"`
	NodeIDs   interface{} `codec:"node_ids"`
	Echo      interface{} `codec:"echo"`
	ID        interface{} `codec:"id"`
}

// fields is a JSON object written in slice order: key, value, key, value...
type fields []interface{}

// MapBySlice implements codec.MapBySlice.
func (fields) MapBySlice() {}

// Decode parses one JSON-encoded Envelope. Keys that the message type does not
// use are ignored; missing required keys, values of the wrong type, unknown
// types, malformed identifiers and anything after the object are Decode
// errors.
func Decode(data []byte) (Envelope, error) {
	var w wireEnvelope

	dec := codec.NewDecoderBytes(data, jsonHandle)
	if err := dec.Decode(&w); err != nil {
		return Envelope{}, decodeErr("invalid JSON", err)
	}
	if n := dec.NumBytesRead(); n > len(data) || len(bytes.TrimSpace(data[n:])) > 0 {
		return Envelope{}, decodeErr("trailing data after envelope", nil)
	}

	if w.Src == nil {
		return Envelope{}, decodeErr("missing src", nil)
	}
	src, err := identifierValue("src", w.Src)
	if err != nil {
		return Envelope{}, err
	}

	if w.Dest == nil {
		return Envelope{}, decodeErr("missing dest", nil)
	}
	dest, err := identifierValue("dest", w.Dest)
	if err != nil {
		return Envelope{}, err
	}

	if w.Body == nil {
		return Envelope{}, decodeErr("missing body", nil)
	}
	msgID, err := optionalUint("msg_id", w.Body.MsgID)
	if err != nil {
		return Envelope{}, err
	}
	inReplyTo, err := optionalUint("in_reply_to", w.Body.InReplyTo)
	if err != nil {
		return Envelope{}, err
	}
	payload, err := w.Body.payload()
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Src:  src,
		Dest: dest,
		Body: Body{
			MsgID:     msgID,
			InReplyTo: inReplyTo,
			Payload:   payload,
		},
	}, nil
}

func (w *wireBody) payload() (Payload, error) {
	if w.Type == nil {
		return nil, decodeErr("missing body type", nil)
	}
	msgType, ok := w.Type.(string)
	if !ok {
		return nil, decodeErr(fmt.Sprintf("type: expected a string, got %T", w.Type), nil)
	}

	switch msgType {
	case InitType:
		if w.NodeID == nil {
			return nil, missingField(msgType, "node_id")
		}
		if w.NodeIDs == nil {
			return nil, missingField(msgType, "node_ids")
		}
		nodeID, err := identifierValue("node_id", w.NodeID)
		if err != nil {
			return nil, err
		}
		list, ok := w.NodeIDs.([]interface{})
		if !ok {
			return nil, decodeErr(fmt.Sprintf("node_ids: expected an array, got %T", w.NodeIDs), nil)
		}
		nodeIDs := make([]Identifier, 0, len(list))
		for _, v := range list {
			id, err := identifierValue("node_ids", v)
			if err != nil {
				return nil, err
			}
			nodeIDs = append(nodeIDs, id)
		}
		return Init{NodeID: nodeID, NodeIDs: nodeIDs}, nil
	case InitOkType:
		return InitOk{}, nil
	case EchoType, EchoOkType:
		if w.Echo == nil {
			return nil, missingField(msgType, "echo")
		}
		echo, ok := w.Echo.(string)
		if !ok {
			return nil, decodeErr(fmt.Sprintf("echo: expected a string, got %T", w.Echo), nil)
		}
		if msgType == EchoType {
			return Echo{Echo: echo}, nil
		}
		return EchoOk{Echo: echo}, nil
	case GenerateType:
		return Generate{}, nil
	case GenerateOkType:
		if w.ID == nil {
			return nil, missingField(msgType, "id")
		}
		id, err := optionalUint("id", w.ID)
		if err != nil {
			return nil, err
		}
		return GenerateOk{ID: *id}, nil
	case "":
		return nil, decodeErr("missing body type", nil)
	default:
		return nil, decodeErr(fmt.Sprintf("unknown body type %q", msgType), nil)
	}
}

func identifierValue(field string, v interface{}) (Identifier, error) {
	s, ok := v.(string)
	if !ok {
		return Identifier{}, decodeErr(fmt.Sprintf("%s: expected a string, got %T", field, v), nil)
	}
	id, err := ParseIdentifier(s)
	if err != nil {
		return Identifier{}, decodeErr(field, err)
	}
	return id, nil
}

// optionalUint returns nil for an absent value. Only JSON integers are
// accepted; quoted numbers, fractions and negatives are not.
func optionalUint(field string, v interface{}) (*uint64, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case uint64:
		return Uint(n), nil
	case int64:
		if n >= 0 {
			return Uint(uint64(n)), nil
		}
		return nil, decodeErr(fmt.Sprintf("%s: negative value %d", field, n), nil)
	default:
		return nil, decodeErr(fmt.Sprintf("%s: expected an unsigned integer, got %T", field, v), nil)
	}
}

// Encode returns the JSON form of e, without a trailing newline. Keys are
// written in a fixed order: src, dest, body; and inside the body type,
// msg_id, in_reply_to, then the payload fields.
func Encode(e Envelope) ([]byte, error) {
	if e.Body.Payload == nil {
		return nil, fmt.Errorf("cannot encode envelope without payload")
	}

	body := fields{"type", e.Body.Payload.Type()}
	if e.Body.MsgID != nil {
		body = append(body, "msg_id", *e.Body.MsgID)
	}
	if e.Body.InReplyTo != nil {
		body = append(body, "in_reply_to", *e.Body.InReplyTo)
	}

	switch p := e.Body.Payload.(type) {
	case Init:
		nodeIDs := make([]string, 0, len(p.NodeIDs))
		for _, id := range p.NodeIDs {
			nodeIDs = append(nodeIDs, id.String())
		}
		body = append(body, "node_id", p.NodeID.String(), "node_ids", nodeIDs)
	case InitOk, Generate:
	case Echo:
		body = append(body, "echo", p.Echo)
	case EchoOk:
		body = append(body, "echo", p.Echo)
	case GenerateOk:
		body = append(body, "id", p.ID)
	default:
		return nil, fmt.Errorf("cannot encode payload %T", e.Body.Payload)
	}

	w := fields{
		"src", e.Src.String(),
		"dest", e.Dest.String(),
		"body", body,
	}

	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, jsonHandle)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func decodeErr(detail string, cause error) error {
	return common.NewProtocolErr(common.Decode, detail, cause)
}

func missingField(msgType, field string) error {
	return decodeErr(fmt.Sprintf("%s: missing field %q", msgType, field), nil)
}
