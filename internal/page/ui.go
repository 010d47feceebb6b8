package page

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Regions returned as fragments by the UI endpoints.
const (
	SidebarRegion    = hookSidebar
	ModalRegion      = hookModal
	SelectRegion     = hookSelectBox
	ProjectsRegion   = hookProjects
	MainRegion       = hookMainContent
	FormButtonRegion = hookFormBtn
)

func toggle(sel *goquery.Selection) {
	sel.ToggleClass(classActive)
}

// ToggleSidebar flips the sidebar's active class and reports the new state.
func (c *Controller) ToggleSidebar() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	toggle(c.sidebar)
	return c.sidebar.HasClass(classActive)
}

// ToggleModal flips the testimonial modal and its overlay together.
func (c *Controller) ToggleModal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggleModal()
}

func (c *Controller) toggleModal() bool {
	toggle(c.modal)
	toggle(c.overlay)
	return c.modal.HasClass(classActive)
}

// OpenTestimonial copies the i-th testimonial's avatar, title and text into
// the modal, then toggles the modal.
func (c *Controller) OpenTestimonial(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= c.testimonials.Length() {
		return fmt.Errorf("%w: testimonial %d", ErrIndexOutOfRange, i)
	}
	item := c.testimonials.Eq(i)

	avatar := item.Find(hookAvatar)
	c.modalImg.SetAttr("src", avatar.AttrOr("src", ""))
	c.modalImg.SetAttr("alt", avatar.AttrOr("alt", ""))

	title, err := item.Find(hookTitle).Html()
	if err != nil {
		return fmt.Errorf("reading testimonial title: %w", err)
	}
	text, err := item.Find(hookText).Html()
	if err != nil {
		return fmt.Errorf("reading testimonial text: %w", err)
	}
	c.modalTitle.SetHtml(title)
	c.modalText.SetHtml(text)

	c.toggleModal()
	return nil
}

// TestimonialCount is the number of testimonial items in the shell.
func (c *Controller) TestimonialCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testimonials.Length()
}

// ToggleSelect opens or closes the category dropdown.
func (c *Controller) ToggleSelect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	toggle(c.selectBtn)
	return c.selectBtn.HasClass(classActive)
}

// ChooseSelectItem shows the i-th dropdown label, closes the dropdown and
// filters by that label. It returns the filter value used.
func (c *Controller) ChooseSelectItem(i int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= c.selectItems.Length() {
		return "", fmt.Errorf("%w: select item %d", ErrIndexOutOfRange, i)
	}
	label := strings.TrimSpace(c.selectItems.Eq(i).Text())
	c.selectValue.SetText(label)
	c.selectBtn.RemoveClass("active")

	value := strings.ToLower(label)
	c.filter(value)
	return value, nil
}

// Filter marks every filterable item active when value is "all" or equals
// the item's data-category, and clears it otherwise. It returns the number
// of active items.
func (c *Controller) Filter(value string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter(value)
}

func (c *Controller) filter(value string) int {
	active := 0
	// Items are looked up on every call so freshly loaded projects take part.
	c.doc.Find(hookFilterItem).Each(func(_ int, item *goquery.Selection) {
		if value == filterValueAll || value == item.AttrOr(attrCategory, "") {
			item.AddClass(classActive)
			active++
			return
		}
		item.RemoveClass(classActive)
	})
	return active
}

// ClickFilterButton filters by the i-th button's label and moves the active
// highlight from the previously clicked button to it.
func (c *Controller) ClickFilterButton(i int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= c.filterBtns.Length() {
		return "", fmt.Errorf("%w: filter button %d", ErrIndexOutOfRange, i)
	}
	btn := c.filterBtns.Eq(i)
	label := strings.TrimSpace(btn.Text())
	c.selectValue.SetText(label)

	value := strings.ToLower(label)
	c.filter(value)

	c.filterBtns.Eq(c.lastClicked).RemoveClass(classActive)
	btn.AddClass(classActive)
	c.lastClicked = i
	return value, nil
}

// NavLinkIndex finds the navigation link whose label matches name, ignoring case.
func (c *Controller) NavLinkIndex(name string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	want := strings.ToLower(strings.TrimSpace(name))
	idx := -1
	c.navLinks.EachWithBreak(func(i int, link *goquery.Selection) bool {
		if strings.ToLower(strings.TrimSpace(link.Text())) == want {
			idx = i
			return false
		}
		return true
	})
	return idx, idx >= 0
}

// Navigate activates the page whose data-page equals the i-th link's label
// (case-insensitive) and deactivates the rest. The result reports whether a
// page matched, in which case the view should scroll to the top.
func (c *Controller) Navigate(i int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= c.navLinks.Length() {
		return false, fmt.Errorf("%w: nav link %d", ErrIndexOutOfRange, i)
	}
	label := strings.ToLower(strings.TrimSpace(c.navLinks.Eq(i).Text()))

	matched := false
	c.pages.Each(func(_ int, p *goquery.Selection) {
		if p.AttrOr(attrPage, "") == label {
			p.AddClass(classActive)
			matched = true
			return
		}
		p.RemoveClass(classActive)
	})

	c.navLinks.Each(func(j int, link *goquery.Selection) {
		if j == i && matched {
			link.AddClass(classActive)
			return
		}
		link.RemoveClass(classActive)
	})
	return matched, nil
}
