package node

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/mosaicnetworks/glomers/src/store"
)

func generateIDs(t *testing.T, core *Core, self uint64, count int) []uint64 {
	t.Helper()

	if _, err := core.Handle(initRequest(1, self, 1, 2, 3)); err != nil {
		t.Fatal(err)
	}

	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		reply, err := core.Handle(generateRequest(uint64(i+2), self))
		if err != nil {
			t.Fatal(err)
		}
		ok, isGenerateOk := reply.Body.Payload.(message.GenerateOk)
		if !isGenerateOk {
			t.Fatalf("reply should be generate_ok, not %s", reply.Body.Payload.Type())
		}
		ids = append(ids, ok.ID)
	}
	return ids
}

func TestComposeID(t *testing.T) {
	id := ComposeID(time.Unix(0x12345678, 0), 6, 0xffffffff)

	if id>>32 != 0x12345678 {
		t.Fatalf("top 32 bits should be the epoch seconds, got %x", id>>32)
	}
	if (id>>30)&3 != 2 {
		t.Fatalf("bits 31-30 should be the node index mod 4, got %d", (id>>30)&3)
	}
	if id&(1<<30-1) != 1<<30-1 {
		t.Fatalf("low 30 bits should hold the random value, got %x", id&(1<<30-1))
	}

	secs, node, random := SplitID(id)
	if secs != 0x12345678 || node != 2 || random != 1<<30-1 {
		t.Fatalf("SplitID returned %x %d %x", secs, node, random)
	}
}

func TestComposeIDTruncatesTime(t *testing.T) {
	id := ComposeID(time.Unix(1<<33+5, 0), 1, 0)
	if id>>32 != 5 {
		t.Fatalf("epoch seconds should be truncated to 32 bits, got %d", id>>32)
	}
}

func TestGenerateLayout(t *testing.T) {
	core := initCore(t)
	ids := generateIDs(t, core, 1, 20)

	for _, id := range ids {
		secs, node, _ := SplitID(id)
		if int64(secs) != fixedTime.Unix() {
			t.Fatalf("id %d should carry the clock's seconds", id)
		}
		if node != 1 {
			t.Fatalf("id %d should carry node bits 1, not %d", id, node)
		}
	}
}

func TestGenerateNodeBits(t *testing.T) {
	ids1 := generateIDs(t, initCore(t), 1, 10)
	ids2 := generateIDs(t, initCore(t), 2, 10)

	seen := make(map[uint64]bool)
	for _, id := range ids1 {
		seen[id] = true
	}
	for _, id := range ids2 {
		if seen[id] {
			t.Fatalf("n1 and n2 issued the same id %d", id)
		}
		if _, node, _ := SplitID(id); node != 2 {
			t.Fatalf("n2 ids should carry node bits 2, not %d", node)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	ids1 := generateIDs(t, initCore(t), 3, 25)
	ids2 := generateIDs(t, initCore(t), 3, 25)

	for i := range ids1 {
		if ids1[i] != ids2[i] {
			t.Fatalf("same seed and clock should give the same ids, differ at %d", i)
		}
	}

	//the random field follows the seeded source
	rng := rand.New(rand.NewSource(3))
	for i, id := range ids1 {
		want := ComposeID(fixedTime, 3, rng.Uint32())
		if id != want {
			t.Fatalf("id %d should be %d, not %d", i, want, id)
		}
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := generateIDs(t, initCore(t), 1, 1000)

	seen := make(map[uint64]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = true
	}
}

func TestGenerateRedrawsIssuedIDs(t *testing.T) {
	s := store.NewInmemStore(100)

	//the first two draws of the seeded source are already in the ledger
	rng := rand.New(rand.NewSource(1))
	first := ComposeID(fixedTime, 1, rng.Uint32())
	second := ComposeID(fixedTime, 1, rng.Uint32())
	third := ComposeID(fixedTime, 1, rng.Uint32())
	s.AddID(first)
	s.AddID(second)

	core := NewCore(s, fixedClock, common.NewTestEntry(t, "core"))
	ids := generateIDs(t, core, 1, 1)

	if ids[0] != third {
		t.Fatalf("generate should skip issued ids and return %d, not %d", third, ids[0])
	}
	if s.IDCount() != 3 {
		t.Fatalf("ledger should hold 3 ids, not %d", s.IDCount())
	}
}
