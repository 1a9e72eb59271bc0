// Package markdown rewrites link and resource references inside raw HTML/Markdown text
// without parsing it.
package markdown

// LinkKind identifies which substitution pass matched a reference.
type LinkKind string

const (
	LinkKindHTMLAttribute LinkKind = "html_attribute"
	LinkKindMarkdown      LinkKind = "markdown"
)

// Link is a single reference matched in the document text.
type Link struct {
	Kind LinkKind
	// Attribute is href, src or srcset for HTML matches and empty for Markdown matches.
	Attribute   string
	Destination string
}

// Change records a reference that was rewritten.
//
// Start and End are byte offsets of the replaced match in the text the pass ran over.
type Change struct {
	Link      Link
	Rewritten string
	Start     int
	End       int
}

// Report summarizes what a rewrite did.
type Report struct {
	Rewritten []Change
	Kept      []Link
}

// Merge appends the entries of other to r.
func (r *Report) Merge(other Report) {
	r.Rewritten = append(r.Rewritten, other.Rewritten...)
	r.Kept = append(r.Kept, other.Kept...)
}

// Total returns the number of matched references.
func (r Report) Total() int {
	return len(r.Rewritten) + len(r.Kept)
}
