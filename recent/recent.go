// Package recent keeps the stream inputs that were played, ranked by how
// often they were used, and suggests them for completion.
package recent

import (
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/filesystem"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/where"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank     int       `json:"rank"`
	Input    string    `json:"input"`
	PlayedAt time.Time `json:"played_at"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	mu          sync.Mutex
	suggestions = make(map[string][]*record)
)

// Remember records a played input or bumps its rank by weight.
// It does nothing when recent.save is off.
func Remember(input string, weight int) error {
	if !viper.GetBool(key.RecentSave) {
		return nil
	}

	input = sanitize(input)
	if input == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[input]; ok {
		r.Rank += weight
		r.PlayedAt = time.Now()
	} else {
		cached[input] = &record{Rank: weight, Input: input, PlayedAt: time.Now()}
	}

	suggestions = make(map[string][]*record)
	return cacher.Set(cached)
}

// Suggest returns the best match for a partial input.
func Suggest(partial string) mo.Option[string] {
	many := SuggestMany(partial)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns every remembered input that fuzzily matches partial,
// highest rank first and most recent first among equals.
func SuggestMany(partial string) []string {
	partial = sanitize(partial)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestions[partial]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, r := range cached {
			if fuzzy.MatchFold(partial, r.Input) {
				records = append(records, r)
			}
		}

		slices.SortFunc(records, func(a, b *record) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return b.PlayedAt.Compare(a.PlayedAt)
		})

		suggestions[partial] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Input
	})
}

// Clear forgets every remembered input.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()
	suggestions = make(map[string][]*record)
	return cacher.Set(make(map[string]*record))
}

func sanitize(input string) string {
	return strings.TrimSpace(input)
}
