// Package site resolves the site-wide configuration (title, navigation,
// sidebar, social links) into a validated Descriptor.
package site

import (
	"git.home.luguber.info/inful/sitedesc/internal/fields"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/linkcheck"
)

// Resolve validates a raw configuration object. Every failure is a ConfigError
// naming the offending field.
func Resolve(raw map[string]any, opts Options) (Descriptor, error) {
	root := fields.Root(raw)
	// JSON configs commonly point editors at a schema.
	root.Value("$schema")

	d, err := resolveDescriptor(root)
	if err != nil {
		return Descriptor{}, toConfigError(err)
	}

	d.Unknown = root.Unknown()
	if opts.Strict && len(d.Unknown) > 0 {
		return Descriptor{}, errors.ConfigError("unknown field").WithField(d.Unknown[0]).
			WithDetail("unknown", d.Unknown).
			Build()
	}
	return d, nil
}

func resolveDescriptor(root *fields.Object) (Descriptor, error) {
	var (
		d   Descriptor
		err error
	)

	if d.Title, err = root.RequiredString("title"); err != nil {
		return d, err
	}
	if d.Description, err = root.StringOr("description", ""); err != nil {
		return d, err
	}
	if d.Lang, err = root.StringOr("lang", DefaultLang); err != nil {
		return d, err
	}
	if d.Base, err = root.StringOr("base", DefaultBase); err != nil {
		return d, err
	}
	if err := linkcheck.BasePath(d.Base); err != nil {
		return d, fields.Wrap(root.PathOf("base"), err)
	}

	if d.Nav, err = resolveNavItems(root, "nav"); err != nil {
		return d, err
	}
	if d.Sidebar, err = resolveSidebar(root); err != nil {
		return d, err
	}
	d.SocialLinks, err = resolveSocialLinks(root)
	return d, err
}

func resolveNavItems(parent *fields.Object, key string) ([]NavItem, error) {
	list, err := parent.List(key)
	if err != nil {
		return nil, err
	}

	items := make([]NavItem, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		obj, err := list.Object(i)
		if err != nil {
			return nil, err
		}

		var item NavItem
		if item.Text, err = obj.RequiredString("text"); err != nil {
			return nil, err
		}
		if item.Link, err = obj.RequiredString("link"); err != nil {
			return nil, err
		}
		if _, err := linkcheck.Link(item.Link); err != nil {
			return nil, fields.Wrap(obj.PathOf("link"), err)
		}
		items = append(items, item)
	}
	return items, nil
}

func resolveSidebar(root *fields.Object) ([]SidebarGroup, error) {
	list, err := root.List("sidebar")
	if err != nil {
		return nil, err
	}

	groups := make([]SidebarGroup, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		obj, err := list.Object(i)
		if err != nil {
			return nil, err
		}

		var g SidebarGroup
		if g.Text, err = obj.RequiredString("text"); err != nil {
			return nil, err
		}
		if g.Collapsed, _, err = obj.Bool("collapsed"); err != nil {
			return nil, err
		}
		if g.Items, err = resolveNavItems(obj, "items"); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func resolveSocialLinks(root *fields.Object) ([]SocialLink, error) {
	list, err := root.List("socialLinks")
	if err != nil {
		return nil, err
	}

	links := make([]SocialLink, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		obj, err := list.Object(i)
		if err != nil {
			return nil, err
		}

		icon, err := obj.RequiredString("icon")
		if err != nil {
			return nil, err
		}
		known, ok := iconNormalizer.Lookup(icon)
		if !ok {
			return nil, fields.Errorf(obj.PathOf("icon"), "unknown social icon %q", icon)
		}

		link, err := obj.RequiredString("link")
		if err != nil {
			return nil, err
		}
		if err := linkcheck.AbsoluteURL(link); err != nil {
			return nil, fields.Wrap(obj.PathOf("link"), err)
		}
		links = append(links, SocialLink{Icon: known, Link: link})
	}
	return links, nil
}

func toConfigError(err error) error {
	fe, ok := err.(*fields.FieldError)
	if !ok {
		return errors.WrapError(err, errors.CategoryConfig, "invalid site configuration").Fatal().Build()
	}
	return errors.ConfigError(fe.Message()).WithField(fe.Path).Build()
}
