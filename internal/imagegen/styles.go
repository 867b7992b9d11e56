package imagegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"photosuite/internal/domain"
)

// stylePhrases maps a style key to the descriptive phrase injected into the
// create template. It is never mutated after init.
var stylePhrases = map[string]string{
	"cinematic":   "Cinematic lighting, dramatic, highly detailed, 8k render, film look.",
	"fantasia":    "Epic fantasy look, magical elements, vibrant colors, dreamlike atmosphere.",
	"vintage":     "Old photograph look, sepia, film grain, desaturated colors, retro feel.",
	"neon":        "Cyberpunk style, bright neon lights, dark futuristic ambience, intense reflections.",
	"acuarela":    "Watercolor painting, soft brush strokes, diluted colors, fluid artistic look.",
	"minimalista": "Simple composition, generous negative space, clean colors, focus on a single subject.",
	"3d":          "3D render, computer animation look, detailed textures, realistic lighting.",
	"anime":       "Japanese animation (anime) style, vivid colors, defined line art, cel-shaded look.",
}

// styleOrder is the display order of the style buttons.
var styleOrder = []string{"cinematic", "fantasia", "vintage", "neon", "acuarela", "minimalista", "3d", "anime"}

// Styles returns the style keys in display order.
func Styles() []string {
	out := make([]string, len(styleOrder))
	copy(out, styleOrder)
	return out
}

// KnownStyle reports whether key has an entry in the style table.
func KnownStyle(key string) bool {
	_, ok := stylePhrases[key]
	return ok
}

// StylePhrase returns the phrase for key. Unknown keys fall back to the
// cinematic entry rather than failing.
func StylePhrase(key string) string {
	if phrase, ok := stylePhrases[strings.TrimSpace(key)]; ok {
		return phrase
	}
	return stylePhrases[domain.DefaultStyle]
}

// StyleLabel title-cases a style key for display ("acuarela" -> "Acuarela").
func StyleLabel(key string, tag language.Tag) string {
	return cases.Title(tag).String(key)
}
