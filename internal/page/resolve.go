// Package page resolves the front matter of the site's home page into a
// validated hero and feature list.
package page

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/sitedesc/internal/fields"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/frontmatter"
	"git.home.luguber.info/inful/sitedesc/internal/linkcheck"
)

// Resolve parses raw front-matter text into a Descriptor.
//
// raw may be a bare YAML block or a whole document opening with a `---` (YAML)
// or `+++` (TOML) fence. Every failure is a ParseError naming the field.
func Resolve(raw []byte, opts Options) (Descriptor, error) {
	fm, _, format, _, err := frontmatter.Split(raw)
	if err != nil {
		return Descriptor{}, errors.WrapError(err, errors.CategoryParse, "front matter is not closed").Fatal().Build()
	}
	if format == frontmatter.FormatNone {
		fm, format = raw, frontmatter.FormatYAML
	}

	doc, err := frontmatter.Parse(fm, format)
	if err != nil {
		return Descriptor{}, errors.WrapError(err, errors.CategoryParse,
			fmt.Sprintf("front matter is not valid %s", format)).
			Fatal().
			WithDetail("format", string(format)).
			Build()
	}

	return ResolveFields(doc, opts)
}

// ResolveFile reads path and resolves its front matter.
func ResolveFile(path string, opts Options) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, errors.WrapError(err, errors.CategoryFileSystem, "cannot read page").
			InFile(path).
			Build()
	}
	d, err := Resolve(data, opts)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return Descriptor{}, ce.InFile(path)
		}
		return Descriptor{}, err
	}
	return d, nil
}

// ResolveFields resolves an already decoded front-matter object.
func ResolveFields(doc map[string]any, opts Options) (Descriptor, error) {
	root := fields.Root(doc)

	d, err := resolveDescriptor(root)
	if err != nil {
		return Descriptor{}, toParseError(err)
	}

	d.Unknown = root.Unknown()
	if opts.Strict && len(d.Unknown) > 0 {
		return Descriptor{}, errors.ParseError("unknown field").WithField(d.Unknown[0]).
			WithDetail("unknown", d.Unknown).
			Build()
	}
	return d, nil
}

func resolveDescriptor(root *fields.Object) (Descriptor, error) {
	var d Descriptor

	layout, err := root.StringOr("layout", "")
	if err != nil {
		return d, err
	}
	if d.Layout, err = layoutNormalizer.NormalizeWithError(layout); err != nil {
		return d, fields.Wrap(root.PathOf("layout"), err)
	}

	heroObj, ok, err := root.Object("hero")
	if err != nil {
		return d, err
	}
	if !ok {
		return d, fields.Wrap(root.PathOf("hero"), fields.ErrMissing)
	}
	if d.Hero, err = resolveHero(heroObj); err != nil {
		return d, err
	}

	d.Features, err = resolveFeatures(root)
	return d, err
}

func resolveHero(obj *fields.Object) (HeroConfig, error) {
	var (
		h   HeroConfig
		err error
	)

	if h.Name, err = obj.RequiredString("name"); err != nil {
		return h, err
	}
	if h.Text, err = obj.RequiredString("text"); err != nil {
		return h, err
	}
	if h.Tagline, err = obj.StringOr("tagline", ""); err != nil {
		return h, err
	}
	if h.Image, err = resolveImage(obj); err != nil {
		return h, err
	}

	actions, err := obj.List("actions")
	if err != nil {
		return h, err
	}
	h.Actions = make([]HeroAction, 0, actions.Len())
	for i := 0; i < actions.Len(); i++ {
		item, err := actions.Object(i)
		if err != nil {
			return h, err
		}
		action, err := resolveAction(item)
		if err != nil {
			return h, err
		}
		h.Actions = append(h.Actions, action)
	}
	return h, nil
}

// resolveImage accepts either {src, alt} or a bare string used as src.
func resolveImage(hero *fields.Object) (*HeroImage, error) {
	raw, ok := hero.Value("image")
	if !ok {
		return nil, nil
	}
	if src, isString := raw.(string); isString {
		if err := checkImage(hero.PathOf("image"), src); err != nil {
			return nil, err
		}
		return &HeroImage{Src: src}, nil
	}

	obj, _, err := hero.Object("image")
	if err != nil {
		return nil, err
	}
	img := &HeroImage{}
	if img.Src, err = obj.RequiredString("src"); err != nil {
		return nil, err
	}
	if err := checkImage(obj.PathOf("src"), img.Src); err != nil {
		return nil, err
	}
	if img.Alt, err = obj.StringOr("alt", ""); err != nil {
		return nil, err
	}
	return img, nil
}

func resolveAction(obj *fields.Object) (HeroAction, error) {
	var (
		a   HeroAction
		err error
	)

	theme, err := obj.StringOr("theme", "")
	if err != nil {
		return a, err
	}
	if a.Theme, err = themeNormalizer.NormalizeWithError(theme); err != nil {
		return a, fields.Wrap(obj.PathOf("theme"), err)
	}
	if a.Text, err = obj.RequiredString("text"); err != nil {
		return a, err
	}
	if a.Link, err = obj.RequiredString("link"); err != nil {
		return a, err
	}
	return a, checkLink(obj.PathOf("link"), a.Link)
}

func resolveFeatures(root *fields.Object) ([]FeatureItem, error) {
	list, err := root.List("features")
	if err != nil {
		return nil, err
	}

	features := make([]FeatureItem, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		obj, err := list.Object(i)
		if err != nil {
			return nil, err
		}

		var f FeatureItem
		if f.Title, err = obj.RequiredString("title"); err != nil {
			return nil, err
		}
		if f.Details, err = obj.StringOr("details", ""); err != nil {
			return nil, err
		}
		if f.Icon, err = obj.StringOr("icon", ""); err != nil {
			return nil, err
		}
		if f.Link, err = obj.StringOr("link", ""); err != nil {
			return nil, err
		}
		if f.Link != "" {
			if err := checkLink(obj.PathOf("link"), f.Link); err != nil {
				return nil, err
			}
		}
		features = append(features, f)
	}
	return features, nil
}

func checkLink(path, link string) error {
	if _, err := linkcheck.Link(link); err != nil {
		return fields.Wrap(path, err)
	}
	return nil
}

// checkImage is checkLink without mailto, which cannot name an image.
func checkImage(path, src string) error {
	kind, err := linkcheck.Link(src)
	if err != nil {
		return fields.Wrap(path, err)
	}
	if kind == linkcheck.KindMail {
		return fields.Errorf(path, "must be a path or http(s) URL, not a mailto link")
	}
	return nil
}

func toParseError(err error) error {
	fe, ok := err.(*fields.FieldError)
	if !ok {
		return errors.WrapError(err, errors.CategoryParse, "invalid front matter").Fatal().Build()
	}
	return errors.ParseError(fe.Message()).WithField(fe.Path).Build()
}
