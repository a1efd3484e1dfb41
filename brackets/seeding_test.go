package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-engine/models"
)

func TestNextPowerOfTwo(t *testing.T) {
	testCases := []struct {
		n        int
		expected int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 16},
		{17, 32},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			assert.Equal(t, tc.expected, NextPowerOfTwo(tc.n))
		})
	}
}

func TestGenerateSeedOrder(t *testing.T) {
	testCases := []struct {
		size     int
		expected []int
	}{
		{2, []int{1, 2}},
		{4, []int{1, 4, 2, 3}},
		{8, []int{1, 8, 4, 5, 2, 7, 3, 6}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("size=%d", tc.size), func(t *testing.T) {
			assert.Equal(t, tc.expected, GenerateSeedOrder(tc.size))
		})
	}
}

// Seeds 1 and 2 must land in opposite halves of the bracket so they can
// only meet in the final; seeds 1-4 must land in distinct quarters.
func TestSeedOrderSeparation(t *testing.T) {
	for _, size := range []int{4, 8, 16, 32, 64} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			order := GenerateSeedOrder(size)
			require.Len(t, order, size)

			pos := make(map[int]int, size)
			for i, seed := range order {
				pos[seed] = i
			}

			half := size / 2
			assert.NotEqual(t, pos[1]/half, pos[2]/half, "seeds 1 and 2 share a half")

			if size >= 8 {
				quarter := size / 4
				quarters := map[int]bool{}
				for seed := 1; seed <= 4; seed++ {
					q := pos[seed] / quarter
					assert.False(t, quarters[q], "seed %d shares a quarter", seed)
					quarters[q] = true
				}
			}
		})
	}
}

func TestPlaceInSlots(t *testing.T) {
	participants := seededParticipants(5)
	slots := placeInSlots(participants, 8)

	// Order for 8 is [1 8 4 5 2 7 3 6]; seeds 6-8 do not exist.
	require.Len(t, slots, 8)
	assert.Equal(t, "p1", slots[0].ID)
	assert.Nil(t, slots[1])
	assert.Equal(t, "p4", slots[2].ID)
	assert.Equal(t, "p5", slots[3].ID)
	assert.Equal(t, "p2", slots[4].ID)
	assert.Nil(t, slots[5])
	assert.Equal(t, "p3", slots[6].ID)
	assert.Nil(t, slots[7])
}

func TestSortBySeedUnseededLast(t *testing.T) {
	participants := []*models.Participant{
		{ID: "x", Name: "X"},
		{ID: "a", Name: "A", Seed: 2},
		{ID: "y", Name: "Y"},
		{ID: "b", Name: "B", Seed: 1},
	}
	sorted := sortBySeed(participants)

	ids := make([]string, len(sorted))
	for i, p := range sorted {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"b", "a", "x", "y"}, ids)
}

// seededParticipants builds n participants with seeds 1..n and ids
// p1..pn.
func seededParticipants(n int) []*models.Participant {
	participants := make([]*models.Participant, n)
	for i := range participants {
		participants[i] = &models.Participant{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: fmt.Sprintf("Player %d", i+1),
			Seed: i + 1,
		}
	}
	return participants
}

// unseededParticipants builds n participants without seeds.
func unseededParticipants(n int) []*models.Participant {
	participants := make([]*models.Participant, n)
	for i := range participants {
		participants[i] = &models.Participant{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: fmt.Sprintf("Player %d", i+1),
		}
	}
	return participants
}
