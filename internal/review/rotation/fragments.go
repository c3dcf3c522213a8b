package rotation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

// Bucket names.
const (
	BucketPositive = "positive"
	BucketNeutral  = "neutral"
)

// Fragments is the full set of static text the engine rotates through.
type Fragments struct {
	Openings   map[string][]string `yaml:"openings"`
	Endings    map[string][]string `yaml:"endings"`
	Narratives []string            `yaml:"narratives"`
}

// DefaultFragments returns a fresh copy of the built-in fragment set.
func DefaultFragments() Fragments {
	return Fragments{
		Openings: map[string][]string{
			BucketPositive: {
				"Recently, I had the chance to visit this place",
				"I wasn’t sure what to expect at first",
				"During my recent visit here",
				"I decided to try this place after hearing about it",
				"I had been meaning to visit this place for a while",
			},
			BucketNeutral: {
				"I visited this place recently",
				"I stopped by this place not long ago",
				"I had a visit here recently",
			},
		},
		Endings: map[string][]string{
			"5": {
				"I’ll definitely be coming back.",
				"Overall, it was totally worth it.",
				"Really happy with the experience.",
				"Glad I chose this place.",
			},
			"4": {
				"Overall, it was a good experience.",
				"Happy with how things turned out.",
				"Would consider coming back.",
			},
			"3": {
				"It was okay overall.",
				"Decent experience, nothing major to complain about.",
			},
		},
		Narratives: []string{
			"Feeling → Service → Result",
			"Service → Moment → Feeling",
			"Problem → Relief → Afterthought",
			"Short & casual",
			"Busy customer style",
		},
	}
}

// LoadFragments overlays the YAML file at path on the defaults. Buckets and
// lists present in the file replace their default counterparts; an empty
// path returns the defaults.
func LoadFragments(path string) (Fragments, error) {
	frags := DefaultFragments()
	path = strings.TrimSpace(path)
	if path == "" {
		return frags, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return frags, fmt.Errorf("read fragments file: %w", err)
	}
	return ParseFragments(data)
}

func ParseFragments(data []byte) (Fragments, error) {
	frags := DefaultFragments()
	var override Fragments
	if err := yaml.Unmarshal(data, &override); err != nil {
		return frags, fmt.Errorf("parse fragments: %w", err)
	}
	for name, list := range override.Openings {
		if list = cleanList(list); len(list) > 0 {
			frags.Openings[name] = list
		}
	}
	for name, list := range override.Endings {
		if list = cleanList(list); len(list) > 0 {
			frags.Endings[name] = list
		}
	}
	if list := cleanList(override.Narratives); len(list) > 0 {
		frags.Narratives = list
	}
	return frags, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// OpeningBucket maps a star rating to an opening bucket.
func OpeningBucket(rating int) string {
	if rating >= 4 {
		return BucketPositive
	}
	return BucketNeutral
}

// EndingBucket maps a star rating to an ending bucket; unsupported ratings
// use the 4-star endings.
func EndingBucket(rating int) string {
	switch rating {
	case 3, 4, 5:
		return fmt.Sprint(rating)
	}
	return "4"
}

func (f Fragments) OpeningPool(source FragmentSource) Pool {
	return Pool{
		Name:          review.PoolOpening,
		Cap:           DefaultCap,
		Buckets:       f.Openings,
		DefaultBucket: BucketNeutral,
		Source:        source,
	}
}

func (f Fragments) EndingPool() Pool {
	return Pool{
		Name:          review.PoolEnding,
		Cap:           DefaultCap,
		Buckets:       f.Endings,
		DefaultBucket: "4",
	}
}
