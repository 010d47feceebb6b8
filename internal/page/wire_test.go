package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	c := newController(t)
	c.Wire("alice smith")

	doc := parse(t, c)

	btn := doc.Find("[data-sidebar-btn]")
	assert.Equal(t, "/fragments/sidebar?open=false", btn.AttrOr("hx-get", ""))
	assert.Equal(t, SidebarRegion, btn.AttrOr("hx-target", ""))

	assert.Equal(t, "/fragments/testimonials/1", doc.Find("[data-testimonials-item]").Eq(1).AttrOr("hx-get", ""))
	assert.Equal(t, RouteTestimonialClose, doc.Find("[data-overlay]").AttrOr("hx-get", ""))
	assert.Equal(t, RouteTestimonialClose, doc.Find("[data-modal-close-btn]").AttrOr("hx-get", ""))

	assert.Equal(t, "/fragments/filter/3?name=alice+smith", doc.Find("[data-filter-btn]").Eq(3).AttrOr("hx-get", ""))
	assert.Equal(t, "/fragments/select/0?name=alice+smith", doc.Find("[data-select-item]").Eq(0).AttrOr("hx-get", ""))

	field := doc.Find("[data-form-input]").First()
	assert.Equal(t, RouteContactValidate, field.AttrOr("hx-post", ""))
	assert.Equal(t, "input changed", field.AttrOr("hx-trigger", ""))
	assert.Equal(t, RouteContact, doc.Find("[data-form]").AttrOr("hx-post", ""))

	link := doc.Find("[data-nav-link]").Eq(1)
	assert.Equal(t, "/fragments/pages/resume?name=alice+smith", link.AttrOr("hx-get", ""))
	assert.Contains(t, link.AttrOr("hx-swap", ""), "show:window:top")
}

func TestWire_ReflectsState(t *testing.T) {
	c := newController(t)
	require.True(t, c.ToggleSidebar())
	require.True(t, c.ToggleSelect())

	c.Wire("")

	doc := parse(t, c)
	assert.Equal(t, "/fragments/sidebar?open=true", doc.Find("[data-sidebar-btn]").AttrOr("hx-get", ""))
	assert.Equal(t, "/fragments/select?open=true", doc.Find("[data-select]").AttrOr("hx-get", ""))
	assert.Equal(t, "/fragments/filter/0", doc.Find("[data-filter-btn]").First().AttrOr("hx-get", ""))
}
