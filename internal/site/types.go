package site

import "git.home.luguber.info/inful/sitedesc/internal/foundation/normalization"

// Defaults applied when the configuration leaves a field out.
const (
	DefaultLang = "en-US"
	DefaultBase = "/"
)

// SocialIcon identifies one of the icons the theme ships with.
type SocialIcon string

const (
	IconDiscord   SocialIcon = "discord"
	IconFacebook  SocialIcon = "facebook"
	IconGitHub    SocialIcon = "github"
	IconInstagram SocialIcon = "instagram"
	IconLinkedIn  SocialIcon = "linkedin"
	IconMastodon  SocialIcon = "mastodon"
	IconNPM       SocialIcon = "npm"
	IconSlack     SocialIcon = "slack"
	IconTwitter   SocialIcon = "twitter"
	IconX         SocialIcon = "x"
	IconYouTube   SocialIcon = "youtube"
)

var iconNormalizer = normalization.NewNormalizer("social icon", map[string]SocialIcon{
	"discord":   IconDiscord,
	"facebook":  IconFacebook,
	"github":    IconGitHub,
	"instagram": IconInstagram,
	"linkedin":  IconLinkedIn,
	"mastodon":  IconMastodon,
	"npm":       IconNPM,
	"slack":     IconSlack,
	"twitter":   IconTwitter,
	"x":         IconX,
	"youtube":   IconYouTube,
}, "")

// KnownIcons returns the accepted social icon identifiers, sorted.
func KnownIcons() []string {
	return iconNormalizer.ValidKeys()
}

// NavItem is a top-bar navigation entry.
type NavItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarGroup is a titled block of sidebar links.
type SidebarGroup struct {
	Text      string    `json:"text" yaml:"text"`
	Collapsed bool      `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Items     []NavItem `json:"items" yaml:"items"`
}

// SocialLink is an icon linking to an external profile.
type SocialLink struct {
	Icon SocialIcon `json:"icon" yaml:"icon"`
	Link string     `json:"link" yaml:"link"`
}

// Descriptor is the resolved site-wide configuration.
type Descriptor struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Lang        string         `json:"lang" yaml:"lang"`
	Base        string         `json:"base" yaml:"base"`
	Nav         []NavItem      `json:"nav" yaml:"nav"`
	Sidebar     []SidebarGroup `json:"sidebar" yaml:"sidebar"`
	SocialLinks []SocialLink   `json:"socialLinks" yaml:"socialLinks"`

	// Unknown lists the paths of keys that were present but not understood.
	Unknown []string `json:"-" yaml:"-"`
}

// Options controls resolution.
type Options struct {
	// Strict rejects unknown keys instead of reporting them in Descriptor.Unknown.
	Strict bool
}
