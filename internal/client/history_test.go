package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryKeepsMostRecentUpToLimit(t *testing.T) {
	h := newHistory(3)

	h.add("one")
	h.add("two")
	assert.Equal(t, []string{"one", "two"}, h.snapshot())

	h.add("three")
	h.add("four")
	assert.Equal(t, []string{"two", "three", "four"}, h.snapshot())
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := newHistory(5)
	h.add("keep")

	snap := h.snapshot()
	snap[0] = "mutated"
	assert.Equal(t, []string{"keep"}, h.snapshot())
}

func TestHistoryConcurrentAdds(t *testing.T) {
	h := newHistory(10)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(n int) {
			for j := 0; j < 50; j++ {
				h.add(fmt.Sprintf("w%d-%d", n, j))
			}
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Len(t, h.snapshot(), 10)
}
