// Package linkcheck validates the syntax of link targets in site descriptors.
//
// Only syntax is checked; nothing here resolves a path against the content tree
// or dials a URL.
package linkcheck

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
)

var (
	ErrEmpty             = errors.New("link is empty")
	ErrWhitespace        = errors.New("link contains whitespace or control characters")
	ErrUnsupportedScheme = errors.New("link scheme is not supported")
	ErrMissingHost       = errors.New("URL has no host")
	ErrNotAbsolute       = errors.New("URL must be absolute (http or https)")
)

// Kind classifies a syntactically valid link.
type Kind string

const (
	KindPath Kind = "path"
	KindURL  Kind = "url"
	KindMail Kind = "mailto"
)

// Link validates s as either a site path or an absolute URL and reports which it is.
func Link(s string) (Kind, error) {
	if err := checkChars(s); err != nil {
		return "", err
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("link is malformed: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "":
		return KindPath, checkPath(u)
	case "http", "https":
		return KindURL, checkHost(u)
	case "mailto":
		if u.Opaque == "" {
			return "", fmt.Errorf("mailto link has no address")
		}
		return KindMail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// Path validates s as a site path: absolute ("/guide/"), relative ("./intro",
// "guide/intro") or fragment-only ("#setup").
func Path(s string) error {
	kind, err := Link(s)
	if err != nil {
		return err
	}
	if kind != KindPath {
		return fmt.Errorf("expected a site path, got a %s", kind)
	}
	return nil
}

// AbsoluteURL validates s as an absolute http(s) URL with a valid host.
func AbsoluteURL(s string) error {
	kind, err := Link(s)
	if err != nil {
		return err
	}
	if kind != KindURL {
		return ErrNotAbsolute
	}
	return nil
}

// BasePath validates a site base path, which must start and end with "/".
func BasePath(s string) error {
	if err := Path(s); err != nil {
		return err
	}
	if !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return fmt.Errorf("base path %q must start and end with /", s)
	}
	return nil
}

func checkChars(s string) error {
	if s == "" {
		return ErrEmpty
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrWhitespace
		}
	}
	return nil
}

func checkPath(u *url.URL) error {
	// "//host/x" parses as a scheme-relative URL, not a path.
	if u.Host != "" {
		return fmt.Errorf("scheme-relative URL %q is not a site path", u.String())
	}
	if u.Path == "" && u.Fragment == "" && u.RawQuery == "" {
		return ErrEmpty
	}
	return nil
}

func checkHost(u *url.URL) error {
	host := u.Hostname()
	if host == "" {
		return ErrMissingHost
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("URL host %q is invalid: %w", host, err)
	}
	return nil
}
