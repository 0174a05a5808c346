package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketNumberSetDigits(t *testing.T) {
	t.Parallel()

	set := TicketNumberSet{4: {"1234"}, 2: {"34", "56"}, 3: {"234"}}
	assert.Equal(t, []int{2, 3, 4}, set.Digits())

	assert.Empty(t, TicketNumberSet{}.Digits())
}

func TestTicketNumberSetRemoveAt(t *testing.T) {
	t.Parallel()

	t.Run("removes entry keeping bucket order", func(t *testing.T) {
		t.Parallel()
		set := TicketNumberSet{2: {"11", "22", "33"}}
		require.True(t, set.RemoveAt(2, 1))
		assert.Equal(t, []string{"11", "33"}, set.Bucket(2))
	})

	t.Run("deletes bucket key when emptied", func(t *testing.T) {
		t.Parallel()
		set := TicketNumberSet{2: {"11"}, 3: {"123"}}
		require.True(t, set.RemoveAt(2, 0))
		assert.Equal(t, []int{3}, set.Digits())
		_, ok := set[2]
		assert.False(t, ok)
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		t.Parallel()
		set := TicketNumberSet{2: {"11"}}
		assert.False(t, set.RemoveAt(2, 5))
		assert.False(t, set.RemoveAt(2, -1))
		assert.False(t, set.RemoveAt(9, 0))
		assert.Equal(t, 1, set.TotalCount())
	})
}

func TestTicketNumberSetFlatten(t *testing.T) {
	t.Parallel()

	set := TicketNumberSet{3: {"234"}, 2: {"34", "56"}, 4: {"1234"}}
	assert.Equal(t, []string{"34", "56", "234", "1234"}, set.Flatten())
	assert.Equal(t, 4, set.TotalCount())
}

func TestTicketNumberSetIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, TicketNumberSet{}.IsEmpty())
	assert.False(t, TicketNumberSet{2: {"12"}}.IsEmpty())
}
