// Package site assembles full portfolio pages from the shell and the remote sections.
package site

import (
	"context"
	"fmt"

	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/section"
)

// Site builds one fresh page controller per page load.
type Site struct {
	shell  []byte
	loader *section.Loader
}

func New(shell []byte, loader *section.Loader) *Site {
	return &Site{shell: shell, loader: loader}
}

// Loader exposes the section loader for fragment handlers.
func (s *Site) Loader() *section.Loader {
	return s.loader
}

// NewPage parses a fresh copy of the shell.
func (s *Site) NewPage() (*page.Controller, error) {
	return page.New(s.shell)
}

// Build returns a page with every section loaded for name.
func (s *Site) Build(ctx context.Context, name string) (*page.Controller, error) {
	p, err := s.NewPage()
	if err != nil {
		return nil, err
	}
	s.loader.Bootstrap(ctx, p, name)
	return p, nil
}

// BuildSection returns a page with only the named section loaded.
func (s *Site) BuildSection(ctx context.Context, sectionName, name string) (*page.Controller, error) {
	sec, ok := s.loader.Lookup(sectionName)
	if !ok {
		return nil, fmt.Errorf("unknown section %q", sectionName)
	}
	p, err := s.NewPage()
	if err != nil {
		return nil, err
	}
	s.loader.Load(ctx, p, sec, name)
	return p, nil
}

// Render builds, wires and serialises the full page for name.
func (s *Site) Render(ctx context.Context, name string) (string, error) {
	p, err := s.Build(ctx, name)
	if err != nil {
		return "", err
	}
	p.Wire(name)
	return p.HTML()
}
