package services

import (
	"math"
)

// LevelBand maps a contiguous point range to one level. Bands are ordered,
// gap-free and cover [0, +inf); the last band is unbounded above.
type LevelBand struct {
	Level     int
	Name      string
	MinPoints int
	MaxPoints int
}

var levelBands = []LevelBand{
	{Level: 1, Name: "Iniciante", MinPoints: 0, MaxPoints: 99},
	{Level: 2, Name: "Aprendiz", MinPoints: 100, MaxPoints: 299},
	{Level: 3, Name: "Colaborador", MinPoints: 300, MaxPoints: 599},
	{Level: 4, Name: "Especialista", MinPoints: 600, MaxPoints: 999},
	{Level: 5, Name: "Mestre", MinPoints: 1000, MaxPoints: 1999},
	{Level: 6, Name: "Lenda", MinPoints: 2000, MaxPoints: math.MaxInt},
}

// LevelBands returns a copy of the static level table.
func LevelBands() []LevelBand {
	out := make([]LevelBand, len(levelBands))
	copy(out, levelBands)
	return out
}

// LevelForPoints finds the band containing totalPoints. Six fixed bands, so
// a linear scan is fine. Negative input is treated as zero.
func LevelForPoints(totalPoints int) LevelBand {
	if totalPoints < 0 {
		totalPoints = 0
	}
	for _, band := range levelBands {
		if totalPoints >= band.MinPoints && totalPoints <= band.MaxPoints {
			return band
		}
	}
	// Unreachable: the last band has no upper bound.
	return levelBands[len(levelBands)-1]
}

// NextLevelBand returns the band after the given level, or the same band at
// the level cap.
func NextLevelBand(level int) LevelBand {
	for i, band := range levelBands {
		if band.Level == level && i+1 < len(levelBands) {
			return levelBands[i+1]
		}
	}
	return levelBands[len(levelBands)-1]
}

// LevelName resolves a level number to its display name.
func LevelName(level int) string {
	for _, band := range levelBands {
		if band.Level == level {
			return band.Name
		}
	}
	return "Desconhecido"
}
