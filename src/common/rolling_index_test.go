package common

import (
	"fmt"
	"testing"
)

func TestRollingIndex(t *testing.T) {
	size := 10
	testSize := 3 * size
	rollingIndex := NewRollingIndex[string]("test", size)
	items := []string{}
	for i := 0; i < testSize; i++ {
		item := fmt.Sprintf("item%d", i)
		if err := rollingIndex.Set(item, i); err != nil {
			t.Fatalf("Set(%d) err: %v", i, err)
		}
		items = append(items, item)
	}
	cached, lastIndex := rollingIndex.GetLastWindow()

	expectedLastIndex := testSize - 1
	if lastIndex != expectedLastIndex {
		t.Fatalf("lastIndex should be %d, not %d", expectedLastIndex, lastIndex)
	}

	start := (testSize / (2 * size)) * (size)
	count := testSize - start

	for i := 0; i < count; i++ {
		if cached[i] != items[start+i] {
			t.Fatalf("cached[%d] should be %s, not %s", i, items[start+i], cached[i])
		}
	}

	err := rollingIndex.Set("ErrSkippedIndex", expectedLastIndex+2)
	if err == nil || !IsStore(err, SkippedIndex) {
		t.Fatalf("Should return ErrSkippedIndex")
	}

	_, err = rollingIndex.GetItem(9)
	if err == nil || !IsStore(err, TooLate) {
		t.Fatalf("Should return ErrTooLate")
	}

	indexes := []int{10, 17, 29}
	for _, i := range indexes {
		item, err := rollingIndex.GetItem(i)
		if err != nil {
			t.Fatalf("GetItem(%d) err: %v", i, err)
		}
		if item != items[i] {
			t.Fatalf("GetItem(%d) should be %s, not %s", i, items[i], item)
		}
	}

	_, err = rollingIndex.GetItem(lastIndex + 1)
	if err == nil || !IsStore(err, KeyNotFound) {
		t.Fatalf("Should return KeyNotFound")
	}

	//Test updating an item in place
	updateIndex := 26
	updateValue := "Updated Item"

	if err := rollingIndex.Set(updateValue, updateIndex); err != nil {
		t.Fatalf("SetItem(%d) err: %v", updateIndex, err)
	}
	item, err := rollingIndex.GetItem(updateIndex)
	if err != nil {
		t.Fatalf("GetItem(%d) err: %v", updateIndex, err)
	}
	if item != updateValue {
		t.Fatalf("Updated item %d should be %s, not %s", updateIndex, updateValue, item)
	}
}

func TestRollingIndexGet(t *testing.T) {
	rollingIndex := NewRollingIndex[int]("test", 5)

	got, err := rollingIndex.Get(0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty index should return nothing, got %v", got)
	}

	// sequences may start at any index
	for i := 1; i <= 12; i++ {
		if err := rollingIndex.Set(i*100, i); err != nil {
			t.Fatalf("Set(%d) err: %v", i, err)
		}
	}

	got, err = rollingIndex.Get(9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 3 || got[0] != 1000 || got[2] != 1200 {
		t.Fatalf("Get(9) should return [1000 1100 1200], not %v", got)
	}

	if _, err := rollingIndex.Get(1); !IsStore(err, TooLate) {
		t.Fatalf("Get(1) should return TooLate, not %v", err)
	}

	got, _ = rollingIndex.Get(12)
	if len(got) != 0 {
		t.Fatalf("Get(lastIndex) should return nothing, got %v", got)
	}

	// the returned slice must not alias the window
	got, _ = rollingIndex.Get(11)
	got[0] = -1
	if item, _ := rollingIndex.GetItem(12); item != 1200 {
		t.Fatalf("Get should return a copy, item 12 is now %d", item)
	}
}

func TestProtocolErr(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := error(NewProtocolErr(Decode, "bad line", cause))

	if !IsProtocol(err, Decode) {
		t.Fatalf("should be a Decode error")
	}
	if IsProtocol(err, Sequencing) {
		t.Fatalf("should not be a Sequencing error")
	}
	if got := err.Error(); got != "Decode: bad line: boom" {
		t.Fatalf("unexpected message %q", got)
	}
	if u, ok := err.(interface{ Unwrap() error }); !ok || u.Unwrap() != cause {
		t.Fatalf("Unwrap should return the cause")
	}
}
