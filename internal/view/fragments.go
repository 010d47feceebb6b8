// Package view renders the HTML fragments injected into the page shell.
// Text and attribute values are escaped and remote URLs are limited to safe
// schemes. Markdown is the only rich-markup path.
package view

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// TimelineEntry is one education or experience row.
type TimelineEntry struct {
	Title       string
	Duration    string
	Description string
}

// Project is one portfolio item.
type Project struct {
	Category string
	Image    string
	Title    string
	Link     string
}

// Post is one blog post.
type Post struct {
	Title    string
	Image    string
	Category string
	Date     string
	Excerpt  string
	Link     string
}

func TimelineItem(e TimelineEntry) g.Node {
	return h.Li(h.Class("timeline-item"),
		h.H4(h.Class("h4 timeline-item-title"), g.Text(e.Title)),
		h.Span(g.Text(e.Duration)),
		h.P(h.Class("timeline-text"), g.Text(e.Description)),
	)
}

// ProjectItem renders a filterable portfolio entry. Items start active.
func ProjectItem(p Project) g.Node {
	return h.Li(h.Class("project-item active"), g.Attr("data-filter-item"), h.Data("category", p.Category),
		h.A(h.Href(SafeLink(p.Link)),
			h.Figure(h.Class("project-img"),
				h.Div(h.Class("project-item-icon-box"),
					g.El("ion-icon", g.Attr("name", "eye-outline")),
				),
				h.Img(h.Src(SafeSrc(p.Image)), h.Alt(p.Title), g.Attr("loading", "lazy")),
			),
			h.H3(h.Class("project-title"), g.Text(p.Title)),
			h.P(h.Class("project-category"), g.Text(p.Category)),
		),
	)
}

func BlogPostItem(p Post) g.Node {
	return h.Li(h.Class("blog-post-item"),
		h.A(h.Href(SafeLink(p.Link)),
			h.Figure(h.Class("blog-banner-box"),
				h.Img(h.Src(SafeSrc(p.Image)), h.Alt(p.Title), g.Attr("loading", "lazy")),
			),
			h.Div(h.Class("blog-content"),
				h.Div(h.Class("blog-meta"),
					h.P(h.Class("blog-category"), g.Text(p.Category)),
					h.Span(h.Class("dot")),
					h.Time(g.Attr("datetime", p.Date), g.Text(p.Date)),
				),
				h.H3(h.Class("h3 blog-item-title"), g.Text(p.Title)),
				h.P(h.Class("blog-text"), g.Text(p.Excerpt)),
			),
		),
	)
}

// ContactResult is the fragment swapped in after a contact form submission.
func ContactResult(ok bool, message string) g.Node {
	class := "contact-result contact-error"
	if ok {
		class = "contact-result contact-success"
	}
	return h.Div(h.Class(class), h.Role("status"), h.P(g.Text(message)))
}

// Render serialises nodes into a single HTML string.
func Render(nodes ...g.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := n.Render(&b); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
