package page

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

// parse re-reads the serialised page so assertions see exactly what is served.
func parse(t *testing.T, c *Controller) *goquery.Document {
	t.Helper()
	html, err := c.HTML()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestReplace(t *testing.T) {
	c := newController(t)

	require.NoError(t, c.Replace(EducationList, "<li>one</li>", "<li>two</li>"))
	require.NoError(t, c.Replace(ExperienceList, "<li>three</li>"))

	doc := parse(t, c)
	lists := doc.Find(".timeline .timeline-list")
	require.Equal(t, 2, lists.Length())
	assert.Equal(t, 2, lists.Eq(0).Find("li").Length())
	assert.Equal(t, 1, lists.Eq(1).Find("li").Length())
	assert.Equal(t, "three", lists.Eq(1).Find("li").Text())
}

func TestClear(t *testing.T) {
	c := newController(t)

	require.NoError(t, c.Clear(AboutText))
	assert.Equal(t, 0, parse(t, c).Find(".about-text").Children().Length())
}

func TestReplace_MissingTarget(t *testing.T) {
	c := newController(t)

	err := c.Replace(Target{Selector: ".nowhere"}, "<p>x</p>")
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestSetText(t *testing.T) {
	c := newController(t)

	assert.True(t, c.SetText(ContactEmail, "<alice@example.com>"))
	assert.True(t, c.SetText(ContactBirth, "June 23"))
	assert.False(t, c.SetText(Target{Selector: ".nowhere"}, "x"))

	doc := parse(t, c)
	assert.Equal(t, "<alice@example.com>", doc.Find(".contacts-list .contact-link[href^='mailto']").Text())
	assert.Equal(t, "June 23", doc.Find(".contacts-list time[datetime]").Text())
}

func TestFragment(t *testing.T) {
	c := newController(t)

	html, err := c.Fragment(SidebarRegion)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, `<aside class="sidebar"`))

	_, err = c.Fragment("#missing")
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestReadShell(t *testing.T) {
	fs := afero.NewMemMapFs()
	custom := []byte(`<html><body><section class="about-text"></section></body></html>`)
	require.NoError(t, afero.WriteFile(fs, "/shell.html", custom, 0o644))

	shell, err := ReadShell(fs, "")
	require.NoError(t, err)
	assert.Equal(t, defaultShell, shell)

	shell, err = ReadShell(fs, "/shell.html")
	require.NoError(t, err)
	assert.Equal(t, custom, shell)

	_, err = ReadShell(fs, "/missing.html")
	assert.Error(t, err)
}

func TestNew_SparseShell(t *testing.T) {
	c, err := New([]byte(`<html><body><p>bare</p></body></html>`))
	require.NoError(t, err)

	// Behaviors on absent hooks are no-ops rather than failures.
	assert.False(t, c.ToggleSidebar())
	assert.Equal(t, 0, c.Filter("all"))
	assert.True(t, c.FormInput(map[string]string{"email": "x"}))
	c.Wire("alice")
}
