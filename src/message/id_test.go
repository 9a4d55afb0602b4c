package message

import (
	"math"
	"sort"
	"testing"
)

func TestIdentifierRoundTrip(t *testing.T) {
	ids := []Identifier{
		ClientID(0),
		ClientID(1),
		ClientID(42),
		NodeID(0),
		NodeID(7),
		NodeID(12345),
		NodeID(math.MaxUint64),
	}

	for _, id := range ids {
		parsed, err := ParseIdentifier(id.String())
		if err != nil {
			t.Fatalf("ParseIdentifier(%q) err: %v", id.String(), err)
		}
		if parsed != id {
			t.Fatalf("ParseIdentifier(%q) should be %v, not %v", id.String(), id, parsed)
		}
	}
}

func TestIdentifierString(t *testing.T) {
	for _, c := range []struct {
		id  Identifier
		out string
	}{
		{ClientID(1), "c1"},
		{NodeID(0), "n0"},
		{NodeID(25), "n25"},
	} {
		if got := c.id.String(); got != c.out {
			t.Errorf("String() => %s != %s", got, c.out)
		}
	}
}

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier("n3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if id.Kind() != Node || id.Index() != 3 {
		t.Fatalf("n3 parsed as %v %d", id.Kind(), id.Index())
	}

	// leading zeros are accepted
	id, err = ParseIdentifier("c007")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if id != ClientID(7) {
		t.Fatalf("c007 should parse as c7, not %v", id)
	}
}

func TestParseIdentifierRejects(t *testing.T) {
	for _, c := range []struct {
		in      string
		errType ParseErrType
	}{
		{"", TooShort},
		{"c", TooShort},
		{"n", TooShort},
		{"x1", UnknownPrefix},
		{"C1", UnknownPrefix},
		{"11", UnknownPrefix},
		{"c-1", InvalidIndex},
		{"c+1", InvalidIndex},
		{"n1a", InvalidIndex},
		{"n 1", InvalidIndex},
		{"n18446744073709551616", InvalidIndex},
	} {
		_, err := ParseIdentifier(c.in)
		if err == nil {
			t.Fatalf("ParseIdentifier(%q) should fail", c.in)
		}
		if !IsParse(err, c.errType) {
			t.Fatalf("ParseIdentifier(%q) returned %v, want type %d", c.in, err, c.errType)
		}
	}
}

func TestIdentifierCompare(t *testing.T) {
	ids := []Identifier{NodeID(2), ClientID(10), NodeID(0), ClientID(1), NodeID(10)}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	expected := []Identifier{ClientID(1), ClientID(10), NodeID(0), NodeID(2), NodeID(10)}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Fatalf("sorted[%d] should be %v, not %v", i, expected[i], ids[i])
		}
	}

	if NodeID(4).Compare(NodeID(4)) != 0 {
		t.Fatalf("equal identifiers should compare to 0")
	}

	// usable as map keys
	m := map[Identifier]bool{NodeID(1): true}
	if !m[NodeID(1)] || m[ClientID(1)] {
		t.Fatalf("map lookup by Identifier failed")
	}
}
