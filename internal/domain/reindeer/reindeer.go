// Package reindeer solves the day 4 puzzles: summing herd strength and
// picking the winners of the reindeer contest.
package reindeer

import (
	"fmt"

	"github.com/okian/codehunt/internal/domain/types"
)

// Reindeer is a herd member as submitted to the strength endpoint.
type Reindeer struct {
	Name     string
	Strength int32
}

// Contestant is a reindeer with the extra attributes judged in the contest.
type Contestant struct {
	Reindeer
	Speed                 float32
	Height                int32
	AntlerWidth           int32
	SnowMagicPower        int32
	FavoriteFood          string
	CandiesEatenYesterday int32
}

// Result sentence templates.
const (
	fastestFormat  = "Speeding past the finish line with a strength of %d is %s"
	tallestFormat  = "%s is standing tall with his %d cm wide antlers"
	magicianFormat = "%s could blast you away with a snow magic power of %d"
	consumerFormat = "%s ate lots of candies, but also some %s"
)

// Strength sums the strength of every reindeer in the herd.
func Strength(herd []Reindeer) int32 {
	var total int32
	for _, r := range herd {
		total += r.Strength
	}
	return total
}

// Contest picks the fastest, tallest, most magical and hungriest contestants.
// Each category is judged on its own, so one reindeer may win several.
// On a tie the earliest contestant wins.
func Contest(herd []Contestant) (types.ContestResult, error) {
	if len(herd) == 0 {
		return types.ContestResult{}, ErrEmptyHerd
	}

	fastest := maxBy(herd, func(a, b Contestant) bool { return a.Speed > b.Speed })
	tallest := maxBy(herd, func(a, b Contestant) bool { return a.Height > b.Height })
	magician := maxBy(herd, func(a, b Contestant) bool { return a.SnowMagicPower > b.SnowMagicPower })
	consumer := maxBy(herd, func(a, b Contestant) bool { return a.CandiesEatenYesterday > b.CandiesEatenYesterday })

	return types.ContestResult{
		Fastest:  fmt.Sprintf(fastestFormat, fastest.Strength, fastest.Name),
		Tallest:  fmt.Sprintf(tallestFormat, tallest.Name, tallest.AntlerWidth),
		Magician: fmt.Sprintf(magicianFormat, magician.Name, magician.SnowMagicPower),
		Consumer: fmt.Sprintf(consumerFormat, consumer.Name, consumer.FavoriteFood),
	}, nil
}

// maxBy returns the first element for which no later element beats it.
// herd must not be empty.
func maxBy(herd []Contestant, beats func(a, b Contestant) bool) Contestant {
	best := herd[0]
	for _, c := range herd[1:] {
		if beats(c, best) {
			best = c
		}
	}
	return best
}
