package section

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/Zachkp/folio/internal/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher serves canned JSON bodies by endpoint. Unknown endpoints and
// the literal "fail" behave like a failed fetch.
type stubFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func (f *stubFetcher) Fetch(_ context.Context, endpoint string) any {
	f.mu.Lock()
	f.calls = append(f.calls, endpoint)
	raw, ok := f.bodies[endpoint]
	f.mu.Unlock()

	if !ok || raw == "fail" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}
	return v
}

func newLoader(bodies map[string]string) (*Loader, *stubFetcher) {
	f := &stubFetcher{bodies: bodies}
	return NewLoader(f, zap.NewNop(), "jagadesh", Defaults("1")), f
}

func render(t *testing.T, p *page.Controller) *goquery.Document {
	t.Helper()
	html, err := p.HTML()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newPage(t *testing.T) *page.Controller {
	t.Helper()
	p, err := page.Default()
	require.NoError(t, err)
	return p
}

func TestBootstrap_BlogScenario(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/blog": `{"data":{"blogs":[{"title":"A","image":"a.jpg","category":"Tech","date":"2024-01-01","excerpt":"x","link":"/a"}]}}`,
	})
	p := newPage(t)

	loader.Bootstrap(context.Background(), p, "alice")

	items := render(t, p).Find(".blog-posts-list li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, "A", items.Find(".blog-item-title").Text())
	assert.Equal(t, "a.jpg", items.Find("img").AttrOr("src", ""))
	assert.Equal(t, "Tech", items.Find(".blog-category").Text())
	assert.Equal(t, "2024-01-01", items.Find("time").Text())
	assert.Equal(t, "2024-01-01", items.Find("time").AttrOr("datetime", ""))
	assert.Equal(t, "x", items.Find(".blog-text").Text())
	assert.Equal(t, "/a", items.Find("a").AttrOr("href", ""))
}

func TestBootstrap_RequestsEveryEndpointOnce(t *testing.T) {
	loader, f := newLoader(nil)

	loader.Bootstrap(context.Background(), newPage(t), "")

	assert.ElementsMatch(t, []string{
		"/api/V1/jagadesh/about",
		"/api/V1/jagadesh/resume",
		"/api/V1/jagadesh/portfolio?category_id=1",
		"/api/V1/jagadesh/blog",
		"/api/V1/jagadesh/contact",
	}, f.calls)
}

func TestLoad_EscapesUsername(t *testing.T) {
	loader, f := newLoader(nil)
	s, ok := loader.Lookup("about")
	require.True(t, ok)

	loader.Load(context.Background(), newPage(t), s, "a/b c")

	assert.Equal(t, []string{"/api/V1/a%2Fb%20c/about"}, f.calls)
}

func TestPortfolio(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/portfolio?category_id=1": `{"data":{"portfolios":[
			{"title":"Finance","image":"f.jpg","category":"web design","link":"https://f.example"},
			{"title":"Orizon","image":"o.png","category":"applications"},
			{"title":"<b>Fundo</b>","image":"u.png","category":"web development","link":""}
		]}}`,
	})
	p := newPage(t)
	s, _ := loader.Lookup("portfolio")

	loader.Load(context.Background(), p, s, "alice")

	items := render(t, p).Find(".project-list > li")
	require.Equal(t, 3, items.Length())

	want := []struct{ category, image, title, link string }{
		{"web design", "f.jpg", "Finance", "https://f.example"},
		{"applications", "o.png", "Orizon", "#"},
		{"web development", "u.png", "<b>Fundo</b>", "#"},
	}
	items.Each(func(i int, li *goquery.Selection) {
		assert.Equal(t, want[i].category, li.AttrOr("data-category", ""))
		assert.True(t, li.HasClass("active"))
		assert.Equal(t, want[i].image, li.Find("img").AttrOr("src", ""))
		assert.Equal(t, want[i].title, li.Find("img").AttrOr("alt", ""))
		assert.Equal(t, want[i].title, li.Find(".project-title").Text())
		assert.Equal(t, want[i].link, li.Find("a").AttrOr("href", ""))
		assert.Equal(t, 0, li.Find("b").Length(), "remote markup is escaped")
	})

	// Freshly loaded items take part in filtering.
	assert.Equal(t, 1, p.Filter("applications"))
}

func TestShapeMismatch(t *testing.T) {
	seed := func(t *testing.T, p *page.Controller) {
		require.NoError(t, p.Replace(page.AboutText, "<p>placeholder about</p>"))
		require.NoError(t, p.Replace(page.EducationList, "<li>old education</li>"))
		require.NoError(t, p.Replace(page.ProjectList, "<li>old project</li>"))
		require.NoError(t, p.Replace(page.BlogList, "<li>old post</li>"))
		p.SetText(page.ContactEmail, "old@example.com")
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "fetch failed", body: "fail"},
		{name: "no data key", body: `{}`},
		{name: "null data", body: `{"data":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := map[string]string{}
			for _, ep := range []string{"about", "resume", "portfolio?category_id=1", "blog", "contact"} {
				bodies["/api/V1/alice/"+ep] = tt.body
			}
			loader, _ := newLoader(bodies)
			p := newPage(t)
			seed(t, p)

			loader.Bootstrap(context.Background(), p, "alice")

			doc := render(t, p)
			assert.Equal(t, "placeholder about", doc.Find(".about-text").Text())
			assert.Equal(t, "old education", doc.Find(".timeline-list").First().Text())
			assert.Equal(t, "old project", doc.Find(".project-list").Text())
			assert.Equal(t, "old@example.com", doc.Find(".contacts-list a[href^='mailto']").Text())
			assert.Equal(t, 0, doc.Find(".blog-posts-list").Children().Length(), "blog clears unconditionally")
		})
	}
}

func TestResume(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/resume": `{"data":{
			"education":[{"institution":"WGU","duration":"2019 - 2023","description":"CS"}],
			"experience":"not a list"
		}}`,
	})
	p := newPage(t)
	require.NoError(t, p.Replace(page.ExperienceList, "<li>old job</li>"))
	s, _ := loader.Lookup("resume")

	loader.Load(context.Background(), p, s, "alice")

	lists := render(t, p).Find(".timeline .timeline-list")
	edu := lists.Eq(0).Find("li")
	require.Equal(t, 1, edu.Length())
	assert.Equal(t, "WGU", edu.Find(".timeline-item-title").Text())
	assert.Equal(t, "2019 - 2023", edu.Find("span").Text())
	assert.Equal(t, "CS", edu.Find(".timeline-text").Text())
	assert.Equal(t, 0, lists.Eq(1).Children().Length(), "non-array experience clears the list")
}

func TestAbout(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/about": `{"data":{"applications":{"value":"Hi, I build **things**.<script>alert(1)</script>"}}}`,
	})
	p := newPage(t)
	s, _ := loader.Lookup("about")

	loader.Load(context.Background(), p, s, "alice")

	about := render(t, p).Find(".about-text")
	assert.Equal(t, "things", about.Find("strong").Text())
	assert.Equal(t, 0, about.Find("script").Length())
}

func TestAbout_HTMLValue(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/about": `{"data":{"applications":{"value":"<p>I build <b>web apps</b>.</p><p onclick=\"x()\">Hire me.</p><script>alert(1)</script>"}}}`,
	})
	p := newPage(t)
	s, _ := loader.Lookup("about")

	loader.Load(context.Background(), p, s, "alice")

	about := render(t, p).Find(".about-text")
	paragraphs := about.Find("p")
	require.Equal(t, 2, paragraphs.Length())
	assert.Equal(t, "I build web apps.", paragraphs.Eq(0).Text())
	assert.Equal(t, "web apps", paragraphs.Eq(0).Find("b").Text())
	assert.Equal(t, "Hire me.", paragraphs.Eq(1).Text())
	_, hasHandler := paragraphs.Eq(1).Attr("onclick")
	assert.False(t, hasHandler)
	assert.Equal(t, 0, about.Find("script").Length())
}

func TestAbout_FalsyApplications(t *testing.T) {
	for _, apps := range []string{`""`, `false`, `0`, `null`, `"text"`, `[]`} {
		t.Run(apps, func(t *testing.T) {
			loader, _ := newLoader(map[string]string{
				"/api/V1/alice/about": `{"data":{"applications":` + apps + `}}`,
			})
			p := newPage(t)
			s, _ := loader.Lookup("about")

			loader.Load(context.Background(), p, s, "alice")

			assert.Equal(t, "Loading...", strings.TrimSpace(render(t, p).Find(".about-text").Text()))
		})
	}
}

func TestContact(t *testing.T) {
	loader, _ := newLoader(map[string]string{
		"/api/V1/alice/contact": `{"data":{"email":"alice@example.com","phone":"+1 555","birthday":"June 23","location":"Sacramento"}}`,
		"/api/V1/alice/blog":    `{"data":{"blogs":[{"title":"A","date":"2024-01-01"}]}}`,
	})
	p := newPage(t)

	loader.Bootstrap(context.Background(), p, "alice")

	contacts := render(t, p).Find(".contacts-list")
	assert.Equal(t, "alice@example.com", contacts.Find("a[href^='mailto']").Text())
	assert.Equal(t, "+1 555", contacts.Find("a[href^='tel']").Text())
	assert.Equal(t, "June 23", contacts.Find("time").Text())
	assert.Equal(t, "Sacramento", contacts.Find("address").Text())
	assert.Equal(t, "2024-01-01", render(t, p).Find(".blog-posts-list time").Text(), "blog dates are not contact fields")
}

func TestUsername(t *testing.T) {
	loader, _ := newLoader(nil)
	assert.Equal(t, "jagadesh", loader.Username(""))
	assert.Equal(t, "alice", loader.Username("alice"))
}
