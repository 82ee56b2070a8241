package page

import "git.home.luguber.info/inful/sitedesc/internal/foundation/normalization"

// Layout selects how the renderer lays out the page.
type Layout string

const (
	LayoutHome Layout = "home"
	LayoutDoc  Layout = "doc"
	LayoutPage Layout = "page"
)

var layoutNormalizer = normalization.NewNormalizer("layout", map[string]Layout{
	"home": LayoutHome,
	"doc":  LayoutDoc,
	"page": LayoutPage,
}, LayoutHome)

// ActionTheme is the visual style of a hero action button.
type ActionTheme string

const (
	ThemeBrand ActionTheme = "brand"
	ThemeAlt   ActionTheme = "alt"
)

var themeNormalizer = normalization.NewNormalizer("action theme", map[string]ActionTheme{
	"brand": ThemeBrand,
	"alt":   ThemeAlt,
}, ThemeBrand)

// HeroImage is the optional image shown next to the hero text.
type HeroImage struct {
	Src string `json:"src" yaml:"src"`
	Alt string `json:"alt" yaml:"alt"`
}

// HeroAction is a call-to-action button in the hero section.
type HeroAction struct {
	Theme ActionTheme `json:"theme" yaml:"theme"`
	Text  string      `json:"text" yaml:"text"`
	Link  string      `json:"link" yaml:"link"`
}

// HeroConfig is the banner at the top of the home page.
type HeroConfig struct {
	Name    string       `json:"name" yaml:"name"`
	Text    string       `json:"text" yaml:"text"`
	Tagline string       `json:"tagline" yaml:"tagline"`
	Image   *HeroImage   `json:"image,omitempty" yaml:"image,omitempty"`
	Actions []HeroAction `json:"actions" yaml:"actions"`
}

// FeatureItem is one tile of the feature grid. Order is display order.
type FeatureItem struct {
	Title   string `json:"title" yaml:"title"`
	Details string `json:"details" yaml:"details"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Descriptor is the resolved front matter of a page.
type Descriptor struct {
	Layout   Layout        `json:"layout" yaml:"layout"`
	Hero     HeroConfig    `json:"hero" yaml:"hero"`
	Features []FeatureItem `json:"features" yaml:"features"`

	// Unknown lists the paths of keys that were present but not understood.
	Unknown []string `json:"-" yaml:"-"`
}

// Options controls resolution.
type Options struct {
	// Strict rejects unknown keys instead of reporting them in Descriptor.Unknown.
	Strict bool
}
