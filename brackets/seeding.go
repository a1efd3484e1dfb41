package brackets

import (
	"sort"
	"strconv"

	"bracket-engine/models"
)

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// GenerateSeedOrder produces the canonical placement order for a
// power-of-two bracket by recursive doubling: the order for size 2 is
// [1 2]; doubling pairs every seed s with its complement 2k+1-s. The
// construction guarantees seeds 1 and 2 can only meet in the final,
// seeds 1-4 are pairwise separated until the semifinals, and so on.
func GenerateSeedOrder(bracketSize int) []int {
	order := []int{1, 2}
	for len(order) < bracketSize {
		doubled := make([]int, 0, len(order)*2)
		complement := len(order)*2 + 1
		for _, s := range order {
			doubled = append(doubled, s, complement-s)
		}
		order = doubled
	}
	if bracketSize == 1 {
		return []int{1}
	}
	return order
}

// sortBySeed orders participants for placement: seeded entries first in
// ascending seed order, unseeded entries after them in their original
// order.
func sortBySeed(participants []*models.Participant) []*models.Participant {
	sorted := make([]*models.Participant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Seed, sorted[j].Seed
		if si > 0 && sj > 0 {
			return si < sj
		}
		return si > 0 && sj == 0
	})
	return sorted
}

// placeInSlots assigns participants to bracket slots following the seed
// order. Slots whose seed number exceeds the participant count stay nil
// and turn into round-one byes.
func placeInSlots(participants []*models.Participant, bracketSize int) []*models.Participant {
	sorted := sortBySeed(participants)
	slots := make([]*models.Participant, bracketSize)
	for pos, seed := range GenerateSeedOrder(bracketSize) {
		if seed <= len(sorted) {
			slots[pos] = sorted[seed-1]
		}
	}
	return slots
}

// eliminationRoundName labels a winners-side round by its distance from
// the final.
func eliminationRoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	default:
		return "Round " + strconv.Itoa(round)
	}
}
