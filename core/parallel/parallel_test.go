package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryItem(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100} {
		seen := make([]int32, items)
		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, n := range seen {
			assert.Equal(t, int32(1), n, "item %d of %d", i, items)
		}
	}
}

func TestParallelizeWithThresholdRunsSequentially(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}

func TestForEach(t *testing.T) {
	var total int64
	err := ForEach(50, 4, func(i int) error {
		atomic.AddInt64(&total, int64(i))
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(49*50/2), total)
}

func TestForEachReturnsLowestIndexError(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	for _, workers := range []int{1, 3} {
		err := ForEach(10, workers, func(i int) error {
			switch i {
			case 3:
				return errA
			case 7:
				return errB
			}
			return nil
		})
		assert.Equal(t, errA, err, "workers=%d", workers)
	}
}

func TestForEachSequentialOrder(t *testing.T) {
	var order []int
	_ = ForEach(5, 1, func(i int) error {
		order = append(order, i)
		return nil
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
