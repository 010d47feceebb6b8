package page

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fragment endpoints the shell's hooks are bound to.
const (
	RouteSidebar          = "/fragments/sidebar"
	RouteTestimonials     = "/fragments/testimonials/"
	RouteTestimonialClose = "/fragments/modal/close"
	RouteSelect           = "/fragments/select"
	RouteFilter           = "/fragments/filter/"
	RouteContactValidate  = "/fragments/contact/validate"
	RouteContact          = "/contact"
	RoutePages            = "/fragments/pages/"
)

func bind(sel *goquery.Selection, method, href, target, swap string) {
	sel.SetAttr("hx-"+method, href)
	sel.SetAttr("hx-target", target)
	sel.SetAttr("hx-swap", swap)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Wire binds every interactive hook to its htmx fragment endpoint. URLs carry
// the current UI state and the profile name, so Wire is called last, right
// before the page or a fragment of it is serialised.
func (c *Controller) Wire(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	profile := url.Values{}
	if username != "" {
		profile.Set("name", username)
	}

	bind(c.sidebarBtn, "get",
		withQuery(RouteSidebar, url.Values{"open": {strconv.FormatBool(c.sidebar.HasClass(classActive))}}),
		SidebarRegion, "outerHTML")

	c.testimonials.Each(func(i int, item *goquery.Selection) {
		bind(item, "get", RouteTestimonials+strconv.Itoa(i), ModalRegion, "outerHTML")
	})
	bind(c.modalClose, "get", RouteTestimonialClose, ModalRegion, "outerHTML")
	bind(c.overlay, "get", RouteTestimonialClose, ModalRegion, "outerHTML")

	bind(c.selectBtn, "get",
		withQuery(RouteSelect, url.Values{"open": {strconv.FormatBool(c.selectBtn.HasClass(classActive))}}),
		SelectRegion, "outerHTML")
	c.selectItems.Each(func(i int, item *goquery.Selection) {
		bind(item, "get", withQuery(RouteSelect+"/"+strconv.Itoa(i), profile), ProjectsRegion, "outerHTML")
	})
	c.filterBtns.Each(func(i int, btn *goquery.Selection) {
		bind(btn, "get", withQuery(RouteFilter+strconv.Itoa(i), profile), ProjectsRegion, "outerHTML")
	})

	bind(c.form, "post", RouteContact, "this", "outerHTML")
	c.formInputs.Each(func(_ int, field *goquery.Selection) {
		bind(field, "post", RouteContactValidate, FormButtonRegion, "outerHTML")
		field.SetAttr("hx-trigger", "input changed")
		field.SetAttr("hx-include", "closest form")
	})

	c.navLinks.Each(func(_ int, link *goquery.Selection) {
		name := url.PathEscape(strings.ToLower(strings.TrimSpace(link.Text())))
		bind(link, "get", withQuery(RoutePages+name, profile), MainRegion, "outerHTML show:window:top")
	})
}
