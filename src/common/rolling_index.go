package common

import "strconv"

// RollingIndex keeps the most recent items of a gap-free sequence of indexes.
// It holds between size and 2*size items; when full, the oldest size items are
// dropped in one go.
type RollingIndex[T any] struct {
	name      string
	size      int
	lastIndex int
	items     []T
}

// NewRollingIndex ...
func NewRollingIndex[T any](name string, size int) *RollingIndex[T] {
	return &RollingIndex[T]{
		name:      name,
		size:      size,
		items:     make([]T, 0, 2*size),
		lastIndex: -1,
	}
}

// GetLastWindow returns the cached items and the index of the last one.
func (r *RollingIndex[T]) GetLastWindow() (lastWindow []T, lastIndex int) {
	return r.items, r.lastIndex
}

// LastIndex returns the index of the last item, or -1 when empty.
func (r *RollingIndex[T]) LastIndex() int {
	return r.lastIndex
}

// Get returns the items with an index greater than skipIndex.
func (r *RollingIndex[T]) Get(skipIndex int) ([]T, error) {
	res := make([]T, 0)

	if skipIndex >= r.lastIndex {
		return res, nil
	}

	cachedItems := len(r.items)
	//assume there are no gaps between indexes
	oldestCachedIndex := r.lastIndex - cachedItems + 1
	if skipIndex+1 < oldestCachedIndex {
		return res, NewStoreErr(r.name, TooLate, strconv.Itoa(skipIndex))
	}

	//index of 'skipped' in RollingIndex
	start := skipIndex - oldestCachedIndex + 1

	return append(res, r.items[start:]...), nil
}

// GetItem ...
func (r *RollingIndex[T]) GetItem(index int) (T, error) {
	var zero T
	items := len(r.items)
	oldestCached := r.lastIndex - items + 1
	if index < oldestCached {
		return zero, NewStoreErr(r.name, TooLate, strconv.Itoa(index))
	}
	findex := index - oldestCached
	if findex >= items {
		return zero, NewStoreErr(r.name, KeyNotFound, strconv.Itoa(index))
	}
	return r.items[findex], nil
}

// Set appends an item at lastIndex+1 or replaces a cached one. The first item
// may carry any index.
func (r *RollingIndex[T]) Set(item T, index int) error {
	if 0 <= r.lastIndex && index > r.lastIndex+1 {
		return NewStoreErr(r.name, SkippedIndex, strconv.Itoa(index))
	}

	//adding a new item
	if r.lastIndex < 0 || (index == r.lastIndex+1) {
		if len(r.items) >= 2*r.size {
			r.Roll()
		}
		r.items = append(r.items, item)
		r.lastIndex = index
		return nil
	}

	cachedItems := len(r.items)
	oldestCachedIndex := r.lastIndex - cachedItems + 1

	if index < oldestCachedIndex {
		return NewStoreErr(r.name, TooLate, strconv.Itoa(index))
	}

	//replacing existing item
	position := index - oldestCachedIndex
	r.items[position] = item

	return nil
}

// Roll drops the oldest size items.
func (r *RollingIndex[T]) Roll() {
	newList := make([]T, 0, 2*r.size)
	newList = append(newList, r.items[r.size:]...)
	r.items = newList
}
