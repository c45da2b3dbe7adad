package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2, "c": 3}

	got := maps.Collect(Concat2(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, got)

	// Early stop.
	count := 0
	for range Concat2(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestSorted(t *testing.T) {
	assert := assert.New(t)

	m := map[uint32]int32{0x10: 3, 0x04: 1, 0x08: 2}

	var keys []uint32
	var values []int32
	for k, v := range Sorted(m) {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal([]uint32{0x04, 0x08, 0x10}, keys)
	assert.Equal([]int32{1, 2, 3}, values)
}
