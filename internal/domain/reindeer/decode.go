package reindeer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// External JSON keys. Matching is exact; encoding/json struct tags would
// also accept case-folded spellings.
const (
	nameField           = "name"
	strengthField       = "strength"
	speedField          = "speed"
	heightField         = "height"
	antlerWidthField    = "antler_width"
	snowMagicPowerField = "snow_magic_power"
	favoriteFoodField   = "favorite_food"

	// CandiesField is the external key carrying candies_eaten_yesterday.
	CandiesField = "cAnD13s_3ATeN-yesT3rdAy"
)

var jsonNull = []byte("null")

// element is one herd member as sent, keyed by the exact field names.
type element map[string]json.RawMessage

// field decodes the value under key into dst. An absent key or an explicit
// null is a missing field.
func (e element) field(key string, dst any) error {
	raw, ok := e[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, key, err)
	}
	return nil
}

func (e element) reindeer() (Reindeer, error) {
	var r Reindeer
	if err := e.field(nameField, &r.Name); err != nil {
		return Reindeer{}, err
	}
	if err := e.field(strengthField, &r.Strength); err != nil {
		return Reindeer{}, err
	}
	return r, nil
}

func (e element) contestant() (Contestant, error) {
	r, err := e.reindeer()
	if err != nil {
		return Contestant{}, err
	}
	c := Contestant{Reindeer: r}
	for _, f := range []struct {
		key string
		dst any
	}{
		{speedField, &c.Speed},
		{heightField, &c.Height},
		{antlerWidthField, &c.AntlerWidth},
		{snowMagicPowerField, &c.SnowMagicPower},
		{favoriteFoodField, &c.FavoriteFood},
		{CandiesField, &c.CandiesEatenYesterday},
	} {
		if err := e.field(f.key, f.dst); err != nil {
			return Contestant{}, err
		}
	}
	return c, nil
}

// decodeElements reads exactly one JSON array from r. Trailing data and a
// top-level null are rejected.
func decodeElements(r io.Reader) ([]element, error) {
	dec := json.NewDecoder(r)
	var wire []element
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: payload must be an array", ErrDecode)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after array")
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return wire, nil
}

// DecodeHerd reads a JSON array of reindeer.
func DecodeHerd(r io.Reader) ([]Reindeer, error) {
	wire, err := decodeElements(r)
	if err != nil {
		return nil, err
	}
	herd := make([]Reindeer, len(wire))
	for i, e := range wire {
		if herd[i], err = e.reindeer(); err != nil {
			return nil, fmt.Errorf("reindeer %d: %w", i, err)
		}
	}
	return herd, nil
}

// DecodeContestants reads a JSON array of contest entries.
func DecodeContestants(r io.Reader) ([]Contestant, error) {
	wire, err := decodeElements(r)
	if err != nil {
		return nil, err
	}
	herd := make([]Contestant, len(wire))
	for i, e := range wire {
		if herd[i], err = e.contestant(); err != nil {
			return nil, fmt.Errorf("contestant %d: %w", i, err)
		}
	}
	return herd, nil
}
