package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

func TestRewrite_ReferenceScenarios(t *testing.T) {
	cases := []struct{ in, want string }{
		{`a href="text.html"`, `a href="docs/text.html"`},
		{`a href="../updir"`, `a href="../updir"`},
		{`a href="https://example.com"`, `a href="https://example.com"`},
		{`<img srcset="img/crap.gif"`, `<img srcset="docs/img/crap.gif"`},
		{"[text](image.png)", "[text](docs/image.png)"},
		{"[text](/abs/path.png)", "[text](/abs/path.png)"},
	}
	for i, c := range cases {
		require.Equal(t, c.want, Rewrite(c.in), "case %d: %q", i, c.in)
	}
}

func TestRewrite_HTMLAttributes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`<a href="guide.html">`, `<a href="docs/guide.html">`},
		{`<img src="logo.png" alt="x">`, `<img src="docs/logo.png" alt="x">`},
		{`<img src="/logo.png">`, `<img src="/logo.png">`},
		{`<img src="./logo.png">`, `<img src="./logo.png">`},
		{`<a href="http://example.com">`, `<a href="http://example.com">`},
		// Literal prefix test: anything starting with "http" is left alone.
		{`<a href="httpfoo.html">`, `<a href="httpfoo.html">`},
		{`<a href="mailto:me@example.com">`, `<a href="docs/mailto:me@example.com">`},
		{`<a href="#anchor">`, `<a href="docs/#anchor">`},
		// Empty values do not match.
		{`<a href="">`, `<a href="">`},
		// Single quotes are not part of the pattern.
		{`<a href='guide.html'>`, `<a href='guide.html'>`},
		// No word boundary before the attribute name.
		{`<img data-src="lazy.png">`, `<img data-src="docs/lazy.png">`},
		// Unterminated value runs to the end of the text.
		{`<a href="dangling`, `<a href="docs/dangling`},
		// The value may span lines.
		{"<a href=\"multi\nline\">", "<a href=\"docs/multi\nline\">"},
	}
	for i, c := range cases {
		require.Equal(t, c.want, Rewrite(c.in), "case %d: %q", i, c.in)
	}
}

func TestRewrite_SrcsetIsTreatedAsOneValue(t *testing.T) {
	in := `<img srcset="img/crap.gif 1x, img/big.gif 2x">`
	require.Equal(t, `<img srcset="docs/img/crap.gif 1x, img/big.gif 2x">`, Rewrite(in))

	in = `<img srcset="/img/crap.gif 1x, img/big.gif 2x">`
	require.Equal(t, in, Rewrite(in))
}

func TestRewrite_MarkdownLinks(t *testing.T) {
	cases := []struct{ in, want string }{
		{"See [Doc](guide.md) for details", "See [Doc](docs/guide.md) for details"},
		{"![Alt](img/diagram.png)", "![Alt](docs/img/diagram.png)"},
		{"[Anchor](guide.md#setup)", "[Anchor](docs/guide.md#setup)"},
		{"[Up](../other.md)", "[Up](../other.md)"},
		{"[Here](./local.md)", "[Here](./local.md)"},
		{"[Ext](https://example.com/x.md)", "[Ext](https://example.com/x.md)"},
		{"[Empty]()", "[Empty]()"},
		// Nested parentheses end the destination at the first ')'.
		{"[Wiki](Foo_(bar))", "[Wiki](docs/Foo_(bar))"},
		// Titles are part of the captured run.
		{`[T](file.md "Title")`, `[T](docs/file.md "Title")`},
	}
	for i, c := range cases {
		require.Equal(t, c.want, Rewrite(c.in), "case %d: %q", i, c.in)
	}
}

func TestRewrite_EveryOccurrence(t *testing.T) {
	in := "[a](one.md) and [b](two.md) and [c](/three.md)\n" +
		`<a href="x.html"><img src="y.png"><img src="http://z/y.png">`
	want := "[a](docs/one.md) and [b](docs/two.md) and [c](/three.md)\n" +
		`<a href="docs/x.html"><img src="docs/y.png"><img src="http://z/y.png">`
	require.Equal(t, want, Rewrite(in))
}

func TestRewrite_MarkdownPassSeesHTMLPassOutput(t *testing.T) {
	// The HTML pass inserts the prefix first; the Markdown pass then matches the
	// "](" inside the rewritten attribute value and prefixes it again.
	in := `<a href="x](y">`
	require.Equal(t, `<a href="docs/x](docs/y">`, Rewrite(in))
}

func TestRewrite_IdentityWithoutMatchableConstructs(t *testing.T) {
	inputs := []string{
		"",
		"plain text without links",
		"# Title\n\nSome *emphasis* and `code`.\n",
		"[not a link] (spaced) hrefx src srcset",
		"href = \"spaced\" src='single'",
		"unicode: Grüße, 你好, 🚀",
	}
	for _, in := range inputs {
		require.Equal(t, in, Rewrite(in))
	}
}

func TestRewrite_IsNotIdempotent(t *testing.T) {
	once := Rewrite("[x](x.md) <img src=\"x.png\">")
	require.Equal(t, "[x](docs/x.md) <img src=\"docs/x.png\">", once)

	twice := Rewrite(once)
	require.Equal(t, "[x](docs/docs/x.md) <img src=\"docs/docs/x.png\">", twice)
}

func TestRewrite_AbsoluteReferencesUnchangedForEveryAttribute(t *testing.T) {
	values := []string{"http://a", "https://a/b", "/root.png", ".", "./x", "../y", "httpish"}
	for _, attr := range []string{"href", "src", "srcset"} {
		for _, v := range values {
			in := attr + `="` + v + `"`
			require.Equal(t, in, Rewrite(in))
		}
	}
}

func TestRewrite_RelativeReferencesPrefixedForEveryAttribute(t *testing.T) {
	values := []string{"a", "img/b.png", "c d", "#frag", "ftp://host"}
	for _, attr := range []string{"href", "src", "srcset"} {
		for _, v := range values {
			in := attr + `="` + v + `"`
			require.Equal(t, attr+`="docs/`+v+`"`, Rewrite(in))
		}
	}
}

func TestNewRewriter_CustomPrefix(t *testing.T) {
	r, err := NewRewriter(WithTargetPrefix("site/content/"))
	require.NoError(t, err)
	require.Equal(t, "site/content/", r.TargetPrefix())

	got := r.Rewrite(`[a](a.md) <img src="b.png">`)
	require.Equal(t, `[a](site/content/a.md) <img src="site/content/b.png">`, got)
}

func TestNewRewriter_DefaultPrefix(t *testing.T) {
	r, err := NewRewriter()
	require.NoError(t, err)
	require.Equal(t, DefaultTargetPrefix, r.TargetPrefix())
}

func TestNewRewriter_RejectsEmptyPrefix(t *testing.T) {
	r, err := NewRewriter(WithTargetPrefix(""))
	require.Nil(t, r)
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestRewriteWithReport(t *testing.T) {
	r, err := NewRewriter()
	require.NoError(t, err)

	in := `<a href="guide.html">Guide</a> <img srcset="/abs.png"> [Doc](doc.md) [Ext](https://x)`
	out, report := r.RewriteWithReport(in)

	require.Equal(t, `<a href="docs/guide.html">Guide</a> <img srcset="/abs.png"> [Doc](docs/doc.md) [Ext](https://x)`, out)
	require.Equal(t, 4, report.Total())
	require.Len(t, report.Rewritten, 2)
	require.Len(t, report.Kept, 2)

	html := report.Rewritten[0]
	require.Equal(t, LinkKindHTMLAttribute, html.Link.Kind)
	require.Equal(t, "href", html.Link.Attribute)
	require.Equal(t, "guide.html", html.Link.Destination)
	require.Equal(t, "docs/guide.html", html.Rewritten)
	require.Equal(t, `href="guide.html`, in[html.Start:html.End])

	md := report.Rewritten[1]
	require.Equal(t, LinkKindMarkdown, md.Link.Kind)
	require.Empty(t, md.Link.Attribute)
	require.Equal(t, "doc.md", md.Link.Destination)
	require.Equal(t, "docs/doc.md", md.Rewritten)

	require.Equal(t, Link{Kind: LinkKindHTMLAttribute, Attribute: "srcset", Destination: "/abs.png"}, report.Kept[0])
	require.Equal(t, Link{Kind: LinkKindMarkdown, Destination: "https://x"}, report.Kept[1])
}

func TestRewritePasses_Independently(t *testing.T) {
	r, err := NewRewriter()
	require.NoError(t, err)

	in := `<img src="a.png"> ![b](b.png)`

	htmlOnly, htmlReport := r.RewriteHTMLAttributes(in)
	require.Equal(t, `<img src="docs/a.png"> ![b](b.png)`, htmlOnly)
	require.Len(t, htmlReport.Rewritten, 1)

	mdOnly, mdReport := r.RewriteMarkdownLinks(in)
	require.Equal(t, `<img src="a.png"> ![b](docs/b.png)`, mdOnly)
	require.Len(t, mdReport.Rewritten, 1)
}

func TestIsRelativeReference(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"text.html", true},
		{"img/a.png", true},
		{"#frag", true},
		{"", true},
		{"http://x", false},
		{"https://x", false},
		{"httpfoo", false},
		{"HTTP://x", true}, // case-sensitive
		{"/abs", false},
		{".hidden", false},
		{"../up", false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, IsRelativeReference(c.in), "input %q", c.in)
	}
}

func TestRewrite_LargeDocument(t *testing.T) {
	var in, want strings.Builder
	for i := 0; i < 1000; i++ {
		in.WriteString("- [item](page.md) <img src=\"/static/x.png\">\n")
		want.WriteString("- [item](docs/page.md) <img src=\"/static/x.png\">\n")
	}
	require.Equal(t, want.String(), Rewrite(in.String()))
}
