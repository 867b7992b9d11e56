package prompt

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
)

// Inspirer suggests a ready-made create prompt.
type Inspirer interface {
	Random(ctx context.Context, locale string) (string, error)
}

var inspirations = map[string][]string{
	"es": {
		"Un astronauta explorando un bosque alienígena con plantas bioluminiscentes.",
		"Un café acogedor en una calle de París durante una noche lluviosa.",
		"Un antiguo galeón navegando por un mar de nubes al atardecer.",
		"Una ciudad futurista con coches voladores y rascacielos holográficos.",
		"Un retrato de un zorro vestido como un detective del siglo XIX.",
		"Un paisaje montañoso místico envuelto en niebla, con un templo en la cima.",
		"Un robot cuidando un jardín de flores de cristal.",
		"Un mercado submarino lleno de criaturas marinas comerciando con tesoros.",
	},
	"en": {
		"An astronaut exploring an alien forest full of bioluminescent plants.",
		"A cozy café on a Paris street during a rainy night.",
		"An ancient galleon sailing across a sea of clouds at sunset.",
		"A futuristic city with flying cars and holographic skyscrapers.",
		"A portrait of a fox dressed as a 19th-century detective.",
		"A mystical mountain landscape wrapped in fog, with a temple on the summit.",
		"A robot tending a garden of crystal flowers.",
		"An underwater market full of sea creatures trading treasures.",
	},
}

// Inspirations returns the fixed prompt list for locale, defaulting to Spanish.
func Inspirations(locale string) []string {
	list, ok := inspirations[normalizeLocale(locale)]
	if !ok {
		list = inspirations["es"]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// StaticInspirer picks uniformly from the fixed list.
type StaticInspirer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStaticInspirer returns an inspirer drawing from rng. A nil rng uses a
// randomly seeded source.
func NewStaticInspirer(rng *rand.Rand) *StaticInspirer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &StaticInspirer{rng: rng}
}

func (s *StaticInspirer) Random(ctx context.Context, locale string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	list := Inspirations(locale)
	s.mu.Lock()
	idx := s.rng.IntN(len(list))
	s.mu.Unlock()
	return list[idx], nil
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if strings.HasPrefix(locale, "en") {
		return "en"
	}
	return "es"
}

var _ Inspirer = (*StaticInspirer)(nil)
