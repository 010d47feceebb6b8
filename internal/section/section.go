// Package section loads the remote profile sections into a page.
package section

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/view"
	"go.uber.org/zap"
)

// RenderFunc writes a section's envelope data into the page. data is the
// envelope's "data" member and may be nil.
type RenderFunc func(r *Renderer, p *page.Controller, data any) error

// Section describes one content section as data: where it comes from, what
// it clears up front and how its payload maps onto the page.
type Section struct {
	Name string
	// Path builds the endpoint for an already escaped username.
	Path func(username string) string
	// ClearFirst lists targets emptied before the response is inspected.
	ClearFirst []page.Target
	Render     RenderFunc
}

// Renderer carries what render callbacks need besides the page.
type Renderer struct {
	Markdown *view.Markdown
}

// Loader runs sections against a page.
type Loader struct {
	fetcher         content.Fetcher
	logger          *zap.Logger
	defaultUsername string
	sections        []Section
	renderer        *Renderer
}

// NewLoader creates a Loader for the given sections.
func NewLoader(fetcher content.Fetcher, logger *zap.Logger, defaultUsername string, sections []Section) *Loader {
	return &Loader{
		fetcher:         fetcher,
		logger:          logger,
		defaultUsername: defaultUsername,
		sections:        sections,
		renderer:        &Renderer{Markdown: view.NewMarkdown()},
	}
}

// Username resolves the profile name for a request; empty falls back to the default.
func (l *Loader) Username(name string) string {
	if name == "" {
		return l.defaultUsername
	}
	return name
}

// Sections returns the configured sections in bootstrap order.
func (l *Loader) Sections() []Section {
	return l.sections
}

// Lookup finds a configured section by name.
func (l *Loader) Lookup(name string) (Section, bool) {
	for _, s := range l.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Load fetches one section for name and renders it into p. Fetch failures
// and shape mismatches leave the page as it was, apart from ClearFirst targets.
func (l *Loader) Load(ctx context.Context, p *page.Controller, s Section, name string) {
	logger := logging.FromContext(ctx, l.logger).With(zap.String("section", s.Name))

	for _, t := range s.ClearFirst {
		if err := p.Clear(t); err != nil {
			logger.Debug("clear target", zap.Error(err))
		}
	}

	envelope := l.fetcher.Fetch(ctx, s.Path(url.PathEscape(l.Username(name))))
	if envelope == nil {
		return
	}

	if err := s.Render(l.renderer, p, content.Data(envelope)); err != nil {
		if errors.Is(err, page.ErrNoElement) {
			logger.Debug("render target missing", zap.Error(err))
			return
		}
		logger.Warn("render section", zap.Error(err))
	}
}

// Bootstrap runs every configured section once, concurrently, and returns
// when all of them have finished. Sections race to fill disjoint regions.
func (l *Loader) Bootstrap(ctx context.Context, p *page.Controller, name string) {
	var wg sync.WaitGroup
	for _, s := range l.sections {
		wg.Add(1)
		go func(s Section) {
			defer wg.Done()
			l.Load(ctx, p, s, name)
		}(s)
	}
	wg.Wait()
}
