package linkcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	tests := []struct {
		in      string
		kind    Kind
		wantErr bool
	}{
		{in: "/", kind: KindPath},
		{in: "/guide/getting-started", kind: KindPath},
		{in: "./intro.md", kind: KindPath},
		{in: "../api/", kind: KindPath},
		{in: "guide/intro", kind: KindPath},
		{in: "#features", kind: KindPath},
		{in: "/search?q=x#top", kind: KindPath},
		{in: "https://github.com/vuejs/vitepress", kind: KindURL},
		{in: "http://localhost:5173/", kind: KindURL},
		{in: "https://bücher.example/", kind: KindURL},
		{in: "http://[::1]:8080/", kind: KindURL},
		{in: "mailto:docs@example.com", kind: KindMail},
		{in: "", wantErr: true},
		{in: "/has space", wantErr: true},
		{in: "/tab\there", wantErr: true},
		{in: "//cdn.example.com/x", wantErr: true},
		{in: "ftp://example.com/file", wantErr: true},
		{in: "javascript:alert(1)", wantErr: true},
		{in: "https:///nohost", wantErr: true},
		{in: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, err := Link(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.kind, kind)
		})
	}
}

func TestPath(t *testing.T) {
	require.NoError(t, Path("/logo.svg"))
	require.Error(t, Path("https://example.com/logo.svg"))
	require.ErrorIs(t, Path(""), ErrEmpty)
}

func TestAbsoluteURL(t *testing.T) {
	require.NoError(t, AbsoluteURL("https://twitter.com/vite_js"))
	require.ErrorIs(t, AbsoluteURL("/github"), ErrNotAbsolute)
	require.ErrorIs(t, AbsoluteURL("https://"), ErrMissingHost)
}

func TestBasePath(t *testing.T) {
	require.NoError(t, BasePath("/"))
	require.NoError(t, BasePath("/docs/"))
	require.Error(t, BasePath("/docs"))
	require.Error(t, BasePath("docs/"))
}
