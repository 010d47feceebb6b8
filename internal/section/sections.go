package section

import (
	"fmt"
	"net/url"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/view"
	g "maragu.dev/gomponents"
)

const linkFallback = "#"

func endpoint(username, name string) string {
	return "/api/V1/" + username + "/" + name
}

// Defaults returns the five sections in bootstrap order.
func Defaults(categoryID string) []Section {
	return []Section{About(), Resume(), Portfolio(categoryID), Blog(), Contact()}
}

// About renders data.applications.value, Markdown or HTML, into the about
// text. A missing, empty or non-object applications leaves it untouched.
func About() Section {
	return Section{
		Name: "about",
		Path: func(u string) string { return endpoint(u, "about") },
		Render: func(r *Renderer, p *page.Controller, data any) error {
			apps, ok := content.Field(data, "applications").(map[string]any)
			if !ok {
				return nil
			}
			html, err := r.Markdown.Render(content.Text(apps, "value"))
			if err != nil {
				return err
			}
			return p.Replace(page.AboutText, html)
		},
	}
}

// Resume fills the education and experience timelines.
func Resume() Section {
	return Section{
		Name: "resume",
		Path: func(u string) string { return endpoint(u, "resume") },
		Render: func(_ *Renderer, p *page.Controller, data any) error {
			if data == nil {
				return nil
			}
			if err := replaceTimeline(p, page.EducationList, data, "education", "institution"); err != nil {
				return err
			}
			return replaceTimeline(p, page.ExperienceList, data, "experience", "company")
		},
	}
}

func replaceTimeline(p *page.Controller, t page.Target, data any, key, titleKey string) error {
	items, _ := content.List(data, key)
	fragments, err := renderEach(items, func(item any) g.Node {
		return view.TimelineItem(view.TimelineEntry{
			Title:       content.Text(item, titleKey),
			Duration:    content.Text(item, "duration"),
			Description: content.Text(item, "description"),
		})
	})
	if err != nil {
		return err
	}
	return p.Replace(t, fragments...)
}

// Portfolio fills the project list, pinned to one category id. The list is
// only replaced when data.portfolios is an array.
func Portfolio(categoryID string) Section {
	return Section{
		Name: "portfolio",
		Path: func(u string) string {
			return endpoint(u, "portfolio") + "?" + url.Values{"category_id": {categoryID}}.Encode()
		},
		Render: func(_ *Renderer, p *page.Controller, data any) error {
			items, ok := content.List(data, "portfolios")
			if !ok {
				return nil
			}
			fragments, err := renderEach(items, func(item any) g.Node {
				return view.ProjectItem(view.Project{
					Category: content.Text(item, "category"),
					Image:    content.Text(item, "image"),
					Title:    content.Text(item, "title"),
					Link:     content.TextOr(item, "link", linkFallback),
				})
			})
			if err != nil {
				return err
			}
			return p.Replace(page.ProjectList, fragments...)
		},
	}
}

// Blog empties the post list before the response is inspected.
func Blog() Section {
	return Section{
		Name:       "blog",
		Path:       func(u string) string { return endpoint(u, "blog") },
		ClearFirst: []page.Target{page.BlogList},
		Render: func(_ *Renderer, p *page.Controller, data any) error {
			items, ok := content.List(data, "blogs")
			if !ok {
				return nil
			}
			fragments, err := renderEach(items, func(item any) g.Node {
				return view.BlogPostItem(view.Post{
					Title:    content.Text(item, "title"),
					Image:    content.Text(item, "image"),
					Category: content.Text(item, "category"),
					Date:     content.Text(item, "date"),
					Excerpt:  content.Text(item, "excerpt"),
					Link:     content.TextOr(item, "link", linkFallback),
				})
			})
			if err != nil {
				return err
			}
			return p.Replace(page.BlogList, fragments...)
		},
	}
}

// Contact writes the scalar contact fields into whichever targets exist.
func Contact() Section {
	return Section{
		Name: "contact",
		Path: func(u string) string { return endpoint(u, "contact") },
		Render: func(_ *Renderer, p *page.Controller, data any) error {
			if data == nil {
				return nil
			}
			p.SetText(page.ContactEmail, content.Text(data, "email"))
			p.SetText(page.ContactPhone, content.Text(data, "phone"))
			p.SetText(page.ContactBirth, content.Text(data, "birthday"))
			p.SetText(page.ContactAddress, content.Text(data, "location"))
			return nil
		},
	}
}

func renderEach(items []any, fn func(item any) g.Node) ([]string, error) {
	fragments := make([]string, 0, len(items))
	for i, item := range items {
		html, err := view.Render(fn(item))
		if err != nil {
			return nil, fmt.Errorf("rendering item %d: %w", i, err)
		}
		fragments = append(fragments, html)
	}
	return fragments, nil
}
