package games

import "fmt"

const (
	MinesGridSize = 25
	MinesMinCount = 1
	MinesMaxCount = 20
)

// GenerateMines places count distinct mines on the 5x5 grid.
func GenerateMines(count int, rng Rand) ([]int, error) {
	if count < MinesMinCount || count > MinesMaxCount {
		return nil, fmt.Errorf("mine count must be between %d and %d, got %d", MinesMinCount, MinesMaxCount, count)
	}

	used := make(map[int]bool, count)
	positions := make([]int, 0, count)
	for len(positions) < count {
		pos := rng.Intn(MinesGridSize)
		if used[pos] {
			continue
		}
		used[pos] = true
		positions = append(positions, pos)
	}
	return positions, nil
}

// MinesMultiplier grows linearly with each safe reveal:
// 1 + revealed/totalSafe * 2, reaching 3x when every safe tile is open.
func MinesMultiplier(revealed, mineCount int) float64 {
	safe := MinesGridSize - mineCount
	return 1 + float64(revealed)/float64(safe)*2
}

// MinesOutcome settles a cashed-out round at the locked multiplier. A
// revealed mine settles at 0 regardless of progress.
func MinesOutcome(revealed, mineCount int, hitMine bool) Outcome {
	if hitMine {
		return Outcome{Multiplier: 0, IsWin: false, Display: []string{"mine"}}
	}
	multiplier := MinesMultiplier(revealed, mineCount)
	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{fmt.Sprintf("%.2fx", multiplier)},
	}
}
