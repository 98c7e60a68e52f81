package huntcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/codehunt/internal/domain/cubebits"
	"github.com/okian/codehunt/internal/domain/elves"
	"github.com/okian/codehunt/internal/domain/reindeer"
	"github.com/okian/codehunt/internal/domain/warmup"
	"github.com/okian/codehunt/pkg/logger"
)

// pcgStream is the fixed second PCG word; the seed supplies the first.
const pcgStream = 0x9e3779b97f4a7c15

// Generation ranges.
const (
	maxPacketValue   = 1 << 12
	maxStrength      = 1 << 10
	maxSpeedTenths   = 600
	maxHeight        = 300
	maxAntlerWidth   = 200
	maxMagicPower    = 1 << 14
	maxCandies       = 1 << 8
	speedDenominator = 10
)

// caseKinds is the rotation every run cycles through.
var caseKinds = []string{
	PuzzleHello,
	PuzzleCubeBits,
	PuzzleStrength,
	PuzzleContest,
	PuzzleElves,
	PuzzleBadPacket,
}

var reindeerNames = []string{
	"Dasher", "Dancer", "Prancer", "Vixen", "Comet",
	"Cupid", "Donner", "Blitzen", "Rudolph", "Olive",
}

var foods = []string{"hay", "carrots", "lichen", "cookies", "pizza", "grass"}

// textWords mixes the three patterns with near misses such as "self".
var textWords = []string{
	"elf", "elves", "shelf", "elf on a shelf", "on", "a", "the",
	"self", "Belfast", "tree", "shelf on an elf", "bookshelf",
}

// reindeerPayload and contestantPayload are the request shapes of day 4.
type reindeerPayload struct {
	Name     string `json:"name"`
	Strength int32  `json:"strength"`
}

type contestantPayload struct {
	reindeerPayload
	Speed                 float32 `json:"speed"`
	Height                int32   `json:"height"`
	AntlerWidth           int32   `json:"antler_width"`
	SnowMagicPower        int32   `json:"snow_magic_power"`
	FavoriteFood          string  `json:"favorite_food"`
	CandiesEatenYesterday int32   `json:"cAnD13s_3ATeN-yesT3rdAy"`
}

// generator builds cases from a seeded source so runs are reproducible.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, pcgStream))}
}

// generateCases creates config.Cases cases, rotating through every puzzle.
func generateCases(ctx context.Context, config *Config, stats *Stats) ([]Case, error) {
	logger.Get().Info(ctx, "generating cases",
		logger.Int("cases", config.Cases),
		logger.Any("seed", config.Seed))

	g := newGenerator(config.Seed)
	cases := make([]Case, config.Cases)
	for i := range cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during case generation: %w", err)
		}
		c, err := g.next(caseKinds[i%len(caseKinds)])
		if err != nil {
			return nil, fmt.Errorf("failed to generate case %d: %w", i, err)
		}
		cases[i] = c
	}

	stats.CasesGenerated = len(cases)
	logger.Get().Info(ctx, "generated cases successfully", logger.Int("count", len(cases)))
	return cases, nil
}

// next builds one case of the given puzzle.
func (g *generator) next(puzzle string) (Case, error) {
	var (
		c   Case
		err error
	)
	switch puzzle {
	case PuzzleHello:
		c = Case{Method: http.MethodGet, Path: "/", WantStatus: http.StatusOK, Want: warmup.HelloWorld()}
	case PuzzleCubeBits:
		c = g.cubeBits()
	case PuzzleBadPacket:
		c = g.badPacket()
	case PuzzleStrength:
		c, err = g.strength()
	case PuzzleContest:
		c, err = g.contest()
	case PuzzleElves:
		c, err = g.elfText()
	default:
		return Case{}, fmt.Errorf("%w: unknown puzzle %q", ErrInvalidConfig, puzzle)
	}
	if err != nil {
		return Case{}, err
	}
	c.ID = uuid.NewString()
	c.Puzzle = puzzle
	return c, nil
}

func (g *generator) cubeBits() Case {
	n := cubebits.MinSegments + g.rng.IntN(cubebits.MaxSegments)
	nums := make([]int32, n)
	segs := make([]string, n)
	for i := range nums {
		nums[i] = g.rng.Int32N(maxPacketValue*2) - maxPacketValue
		segs[i] = strconv.FormatInt(int64(nums[i]), 10)
	}
	return Case{
		Method:     http.MethodGet,
		Path:       "/1/" + strings.Join(segs, "/"),
		WantStatus: http.StatusOK,
		Want:       strconv.FormatInt(int64(cubebits.CubeBits(nums)), 10),
	}
}

// badPacket is either a non-integer segment or one segment too many.
func (g *generator) badPacket() Case {
	var path string
	if g.rng.IntN(2) == 0 {
		path = "/1/4/elf/8"
	} else {
		path = "/1" + strings.Repeat("/1", cubebits.MaxSegments+1)
	}
	return Case{Method: http.MethodGet, Path: path, WantStatus: http.StatusBadRequest}
}

func (g *generator) strength() (Case, error) {
	n := g.rng.IntN(maxHerdSize + 1)
	payload := make([]reindeerPayload, n)
	herd := make([]reindeer.Reindeer, n)
	for i := range payload {
		payload[i] = g.herdMember(i)
		herd[i] = reindeer.Reindeer{Name: payload[i].Name, Strength: payload[i].Strength}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Case{}, fmt.Errorf("failed to marshal herd: %w", err)
	}
	return Case{
		Method:      http.MethodPost,
		Path:        "/4/strength",
		ContentType: contentTypeJSON,
		Body:        body,
		WantStatus:  http.StatusOK,
		Want:        strconv.FormatInt(int64(reindeer.Strength(herd)), 10),
	}, nil
}

func (g *generator) contest() (Case, error) {
	n := 1 + g.rng.IntN(maxHerdSize)
	payload := make([]contestantPayload, n)
	herd := make([]reindeer.Contestant, n)
	for i := range payload {
		p := contestantPayload{
			reindeerPayload:       g.herdMember(i),
			Speed:                 float32(g.rng.IntN(maxSpeedTenths)) / speedDenominator,
			Height:                g.rng.Int32N(maxHeight),
			AntlerWidth:           g.rng.Int32N(maxAntlerWidth),
			SnowMagicPower:        g.rng.Int32N(maxMagicPower),
			FavoriteFood:          foods[g.rng.IntN(len(foods))],
			CandiesEatenYesterday: g.rng.Int32N(maxCandies),
		}
		payload[i] = p
		herd[i] = reindeer.Contestant{
			Reindeer:              reindeer.Reindeer{Name: p.Name, Strength: p.Strength},
			Speed:                 p.Speed,
			Height:                p.Height,
			AntlerWidth:           p.AntlerWidth,
			SnowMagicPower:        p.SnowMagicPower,
			FavoriteFood:          p.FavoriteFood,
			CandiesEatenYesterday: p.CandiesEatenYesterday,
		}
	}

	result, err := reindeer.Contest(herd)
	if err != nil {
		return Case{}, fmt.Errorf("failed to solve contest: %w", err)
	}
	return jsonCase("/4/contest", contentTypeJSON, payload, result)
}

func (g *generator) elfText() (Case, error) {
	n := g.rng.IntN(maxTextWords + 1)
	words := make([]string, n)
	for i := range words {
		words[i] = textWords[g.rng.IntN(len(textWords))]
	}
	text := strings.Join(words, " ")

	c, err := jsonCase("/6", contentTypeText, nil, elves.Count(text))
	if err != nil {
		return Case{}, err
	}
	c.Body = []byte(text)
	return c, nil
}

// herdMember names are suffixed with their index so herds stay readable.
func (g *generator) herdMember(i int) reindeerPayload {
	return reindeerPayload{
		Name:     reindeerNames[g.rng.IntN(len(reindeerNames))] + strconv.Itoa(i),
		Strength: g.rng.Int32N(maxStrength),
	}
}

// jsonCase builds a POST case whose body is payload and whose answer is the
// canonical JSON of want. A nil payload leaves the body for the caller.
func jsonCase(path, contentType string, payload, want any) (Case, error) {
	c := Case{
		Method:      http.MethodPost,
		Path:        path,
		ContentType: contentType,
		WantStatus:  http.StatusOK,
		WantJSON:    true,
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return Case{}, fmt.Errorf("failed to marshal payload: %w", err)
		}
		c.Body = body
	}
	expected, err := json.Marshal(want)
	if err != nil {
		return Case{}, fmt.Errorf("failed to marshal answer: %w", err)
	}
	c.Want = string(expected)
	return c, nil
}
