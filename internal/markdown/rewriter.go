package markdown

import (
	"regexp"
	"strings"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

// DefaultTargetPrefix is the directory segment prepended to relative references.
const DefaultTargetPrefix = "docs/"

var (
	// htmlAttrRe captures the attribute name and the value up to the next double quote.
	// The closing quote is not part of the match.
	htmlAttrRe = regexp.MustCompile(`(href|src|srcset)="([^"]+)`)
	// markdownLinkRe captures a link or image destination up to the next closing paren.
	markdownLinkRe = regexp.MustCompile(`\]\(([^)]+)`)

	// Checked in order; a plain string prefix test, not a URL parser.
	nonRelativePrefixes = []string{"http", "/", "."}

	defaultRewriter = &Rewriter{prefix: DefaultTargetPrefix}
)

// IsRelativeReference reports whether value is a bare relative reference, i.e. it does not
// start with http, / or a dot.
//
// The check is literal: "httpfoo" counts as starting with http.
func IsRelativeReference(value string) bool {
	for _, p := range nonRelativePrefixes {
		if strings.HasPrefix(value, p) {
			return false
		}
	}
	return true
}

// Rewriter prefixes relative references with a target directory segment.
// A Rewriter is immutable and safe for concurrent use.
type Rewriter struct {
	prefix string
}

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithTargetPrefix sets the segment prepended to relative references. It is inserted
// verbatim, so include the trailing slash.
func WithTargetPrefix(prefix string) RewriterOption {
	return func(r *Rewriter) {
		r.prefix = prefix
	}
}

// NewRewriter returns a Rewriter using DefaultTargetPrefix unless overridden.
func NewRewriter(opts ...RewriterOption) (*Rewriter, error) {
	r := &Rewriter{prefix: DefaultTargetPrefix}
	for _, opt := range opts {
		opt(r)
	}
	if r.prefix == "" {
		return nil, foundationerrors.ValidationError("target prefix must not be empty").
			ForField("target_prefix").
			Build()
	}
	return r, nil
}

// TargetPrefix returns the configured prefix.
func (r *Rewriter) TargetPrefix() string {
	return r.prefix
}

// Rewrite is a convenience wrapper using DefaultTargetPrefix.
func Rewrite(text string) string {
	return defaultRewriter.Rewrite(text)
}

// Rewrite returns text with every relative HTML attribute value and Markdown destination
// prefixed. The HTML pass runs first and the Markdown pass runs over its output.
//
// Rewrite is not idempotent: a second application prefixes already rewritten references
// again.
func (r *Rewriter) Rewrite(text string) string {
	out, _ := r.RewriteWithReport(text)
	return out
}

// RewriteWithReport is Rewrite that also reports each matched reference.
// Offsets of Markdown changes refer to the output of the HTML pass.
func (r *Rewriter) RewriteWithReport(text string) (string, Report) {
	var report Report

	text, htmlReport := r.RewriteHTMLAttributes(text)
	report.Merge(htmlReport)

	text, mdReport := r.RewriteMarkdownLinks(text)
	report.Merge(mdReport)

	return text, report
}

// RewriteHTMLAttributes runs only the href/src/srcset pass.
//
// A srcset value is tested and prefixed as a whole; individual candidates after the first
// comma are not inspected.
func (r *Rewriter) RewriteHTMLAttributes(text string) (string, Report) {
	return r.substitute(text, htmlAttrRe, func(m []string) (Link, string) {
		link := Link{Kind: LinkKindHTMLAttribute, Attribute: m[1], Destination: m[2]}
		return link, m[1] + `="` + r.prefix + m[2]
	})
}

// RewriteMarkdownLinks runs only the ](destination) pass.
func (r *Rewriter) RewriteMarkdownLinks(text string) (string, Report) {
	return r.substitute(text, markdownLinkRe, func(m []string) (Link, string) {
		link := Link{Kind: LinkKindMarkdown, Destination: m[1]}
		return link, "](" + r.prefix + m[1]
	})
}

// substitute applies a single pass: every non-overlapping match of re is turned into an
// edit when its destination is relative. build receives the full match followed by the
// submatches and returns the matched link and its replacement.
func (r *Rewriter) substitute(text string, re *regexp.Regexp, build func(m []string) (Link, string)) (string, Report) {
	var report Report

	indexes := re.FindAllStringSubmatchIndex(text, -1)
	if len(indexes) == 0 {
		return text, report
	}

	edits := make([]Edit, 0, len(indexes))
	for _, loc := range indexes {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = text[loc[2*g]:loc[2*g+1]]
			}
		}

		link, replacement := build(groups)
		if !IsRelativeReference(link.Destination) {
			report.Kept = append(report.Kept, link)
			continue
		}

		edits = append(edits, Edit{Start: loc[0], End: loc[1], Replacement: replacement})
		report.Rewritten = append(report.Rewritten, Change{
			Link:      link,
			Rewritten: r.prefix + link.Destination,
			Start:     loc[0],
			End:       loc[1],
		})
	}

	// Matches from a single FindAll call never overlap, so this cannot fail.
	out, err := ApplyEdits(text, edits)
	if err != nil {
		return text, Report{}
	}
	return out, report
}
