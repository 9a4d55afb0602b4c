package message

// Type tags, as written in the "type" field of a Body.
const (
	InitType       = "init"
	InitOkType     = "init_ok"
	EchoType       = "echo"
	EchoOkType     = "echo_ok"
	GenerateType   = "generate"
	GenerateOkType = "generate_ok"
)

// Payload is the type-specific content of a Body. The set of implementations
// is closed: only the types of this package satisfy it.
type Payload interface {
	// Type returns the wire tag.
	Type() string

	payload()
}

// Init bootstraps a node. It is the first message a node receives.
type Init struct {
	NodeID  Identifier
	NodeIDs []Identifier
}

// InitOk acknowledges an Init.
type InitOk struct{}

// Echo asks the recipient to send the string back.
type Echo struct {
	Echo string
}

// EchoOk carries the string of an Echo.
type EchoOk struct {
	Echo string
}

// Generate asks for a fresh unique identifier.
type Generate struct{}

// GenerateOk carries a generated identifier.
type GenerateOk struct {
	ID uint64
}

func (Init) Type() string       { return InitType }
func (InitOk) Type() string     { return InitOkType }
func (Echo) Type() string       { return EchoType }
func (EchoOk) Type() string     { return EchoOkType }
func (Generate) Type() string   { return GenerateType }
func (GenerateOk) Type() string { return GenerateOkType }

func (Init) payload()       {}
func (InitOk) payload()     {}
func (Echo) payload()       {}
func (EchoOk) payload()     {}
func (Generate) payload()   {}
func (GenerateOk) payload() {}
