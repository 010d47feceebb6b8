// Package page holds the page controller: a parsed copy of the page shell
// plus the element hooks that section loaders and UI behaviors act on.
package page

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

//go:embed shell.html
var defaultShell []byte

var (
	ErrNoElement       = errors.New("page: element not found")
	ErrIndexOutOfRange = errors.New("page: index out of range")
)

// DOM hooks owned by the shell markup.
const (
	hookSidebar      = "[data-sidebar]"
	hookSidebarBtn   = "[data-sidebar-btn]"
	hookTestimonial  = "[data-testimonials-item]"
	hookAvatar       = "[data-testimonials-avatar]"
	hookTitle        = "[data-testimonials-title]"
	hookText         = "[data-testimonials-text]"
	hookModal        = "[data-modal-container]"
	hookModalClose   = "[data-modal-close-btn]"
	hookOverlay      = "[data-overlay]"
	hookModalImg     = "[data-modal-img]"
	hookModalTitle   = "[data-modal-title]"
	hookModalText    = "[data-modal-text]"
	hookSelect       = "[data-select]"
	hookSelectItem   = "[data-select-item]"
	hookSelectValue  = "[data-selecct-value]"
	hookFilterBtn    = "[data-filter-btn]"
	hookFilterItem   = "[data-filter-item]"
	hookForm         = "[data-form]"
	hookFormInput    = "[data-form-input]"
	hookFormBtn      = "[data-form-btn]"
	hookNavLink      = "[data-nav-link]"
	hookPage         = "[data-page]"
	hookSelectBox    = ".filter-select-box"
	hookProjects     = "#projects"
	hookMainContent  = ".main-content"
	classActive      = "active"
	attrCategory     = "data-category"
	attrPage         = "data-page"
	attrDisabled     = "disabled"
	filterValueAll   = "all"
	defaultFilterBtn = 0
)

// Target addresses the index-th element matching Selector.
type Target struct {
	Selector string
	Index    int
}

// Regions filled by the section loaders.
var (
	AboutText      = Target{Selector: ".about-text"}
	EducationList  = Target{Selector: ".timeline .timeline-list", Index: 0}
	ExperienceList = Target{Selector: ".timeline .timeline-list", Index: 1}
	ProjectList    = Target{Selector: ".project-list"}
	BlogList       = Target{Selector: ".blog-posts-list"}
	ContactEmail   = Target{Selector: ".contacts-list .contact-link[href^='mailto']"}
	ContactPhone   = Target{Selector: ".contacts-list .contact-link[href^='tel']"}
	ContactBirth   = Target{Selector: ".contacts-list time[datetime]"}
	ContactAddress = Target{Selector: ".contacts-list address"}
)

// Controller owns one page load. All methods are safe for concurrent use.
type Controller struct {
	mu  sync.Mutex
	doc *goquery.Document

	sidebar    *goquery.Selection
	sidebarBtn *goquery.Selection

	testimonials *goquery.Selection
	modal        *goquery.Selection
	modalClose   *goquery.Selection
	overlay      *goquery.Selection
	modalImg     *goquery.Selection
	modalTitle   *goquery.Selection
	modalText    *goquery.Selection

	selectBtn   *goquery.Selection
	selectItems *goquery.Selection
	selectValue *goquery.Selection
	filterBtns  *goquery.Selection
	lastClicked int

	form       *goquery.Selection
	formInputs *goquery.Selection
	formBtn    *goquery.Selection

	navLinks *goquery.Selection
	pages    *goquery.Selection

	validate *validator.Validate
}

// New parses shell and resolves the element hooks once.
func New(shell []byte) (*Controller, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("parsing page shell: %w", err)
	}

	c := &Controller{
		doc:          doc,
		sidebar:      doc.Find(hookSidebar),
		sidebarBtn:   doc.Find(hookSidebarBtn),
		testimonials: doc.Find(hookTestimonial),
		modal:        doc.Find(hookModal),
		modalClose:   doc.Find(hookModalClose),
		overlay:      doc.Find(hookOverlay),
		modalImg:     doc.Find(hookModalImg),
		modalTitle:   doc.Find(hookModalTitle),
		modalText:    doc.Find(hookModalText),
		selectBtn:    doc.Find(hookSelect),
		selectItems:  doc.Find(hookSelectItem),
		selectValue:  doc.Find(hookSelectValue),
		filterBtns:   doc.Find(hookFilterBtn),
		lastClicked:  defaultFilterBtn,
		form:         doc.Find(hookForm),
		formInputs:   doc.Find(hookFormInput),
		formBtn:      doc.Find(hookFormBtn),
		navLinks:     doc.Find(hookNavLink),
		pages:        doc.Find(hookPage),
		validate:     validator.New(),
	}
	return c, nil
}

// Default builds a controller over the embedded shell.
func Default() (*Controller, error) {
	return New(defaultShell)
}

// ReadShell returns the shell at path, or the embedded shell when path is empty.
func ReadShell(fs afero.Fs, path string) ([]byte, error) {
	if path == "" {
		return defaultShell, nil
	}
	shell, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading page shell %s: %w", path, err)
	}
	return shell, nil
}

func (c *Controller) find(t Target) (*goquery.Selection, error) {
	sel := c.doc.Find(t.Selector).Eq(t.Index)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s[%d]", ErrNoElement, t.Selector, t.Index)
	}
	return sel, nil
}

// Replace clears the target and appends fragments in order.
func (c *Controller) Replace(t Target, fragments ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel, err := c.find(t)
	if err != nil {
		return err
	}
	sel.Empty()
	for _, f := range fragments {
		sel.AppendHtml(f)
	}
	return nil
}

// Clear removes every child of the target.
func (c *Controller) Clear(t Target) error {
	return c.Replace(t)
}

// SetText writes text into the target when it exists. It reports whether it did.
func (c *Controller) SetText(t Target, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel, err := c.find(t)
	if err != nil {
		return false
	}
	sel.SetText(text)
	return true
}

// HTML serialises the whole document.
func (c *Controller) HTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Html()
}

// Fragment serialises the first element matching selector, including itself.
func (c *Controller) Fragment(selector string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel := c.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return goquery.OuterHtml(sel)
}
