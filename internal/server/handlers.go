package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Zachkp/folio/internal/mail"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	htmlContentType = "text/html; charset=utf-8"

	contactSuccess = "Thank you for your message! I'll get back to you soon."
	contactFailure = "Sorry, there was an error sending your message. Please try again later."
	contactInvalid = "Please fill in your name, a valid email address and a message of at least 10 characters."
)

type contactRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Message  string `form:"message" binding:"required,min=10,max=2000"`
}

func (s *Server) home(c *gin.Context) {
	html, err := s.site.Render(c.Request.Context(), c.Query("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

func (s *Server) sidebar(c *gin.Context) {
	p, err := s.site.NewPage()
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("open") == "true" {
		p.ToggleSidebar()
	}
	p.ToggleSidebar()
	s.fragment(c, p, page.SidebarRegion, "")
}

func (s *Server) openTestimonial(c *gin.Context) {
	idx, ok := s.index(c)
	if !ok {
		return
	}
	p, err := s.site.NewPage()
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := p.OpenTestimonial(idx); err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, p, page.ModalRegion, "")
}

// closeModal returns the modal after reversing an open one.
func (s *Server) closeModal(c *gin.Context) {
	p, err := s.site.NewPage()
	if err != nil {
		s.fail(c, err)
		return
	}
	p.ToggleModal()
	p.ToggleModal()
	s.fragment(c, p, page.ModalRegion, "")
}

func (s *Server) toggleSelect(c *gin.Context) {
	p, err := s.site.NewPage()
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("open") == "true" {
		p.ToggleSelect()
	}
	p.ToggleSelect()
	s.fragment(c, p, page.SelectRegion, "")
}

func (s *Server) chooseSelectItem(c *gin.Context) {
	idx, ok := s.index(c)
	if !ok {
		return
	}
	name := c.Query("name")
	p, err := s.site.BuildSection(c.Request.Context(), "portfolio", name)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := p.ChooseSelectItem(idx); err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, p, page.ProjectsRegion, name)
}

func (s *Server) clickFilterButton(c *gin.Context) {
	idx, ok := s.index(c)
	if !ok {
		return
	}
	name := c.Query("name")
	p, err := s.site.BuildSection(c.Request.Context(), "portfolio", name)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := p.ClickFilterButton(idx); err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, p, page.ProjectsRegion, name)
}

func (s *Server) portfolio(c *gin.Context) {
	name := c.Query("name")
	p, err := s.site.BuildSection(c.Request.Context(), "portfolio", name)
	if err != nil {
		s.fail(c, err)
		return
	}
	p.Filter(strings.ToLower(c.DefaultQuery("filter", "all")))
	s.fragment(c, p, page.ProjectsRegion, name)
}

func (s *Server) validateContact(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	values := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	p, err := s.site.NewPage()
	if err != nil {
		s.fail(c, err)
		return
	}
	p.FormInput(values)
	s.fragment(c, p, page.FormButtonRegion, "")
}

func (s *Server) navigate(c *gin.Context) {
	name := c.Query("name")
	p, err := s.site.Build(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	idx, ok := p.NavLinkIndex(c.Param("page"))
	if !ok {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	if _, err := p.Navigate(idx); err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, p, page.MainRegion, name)
}

// Handle contact form submission with HTMX
func (s *Server) contact(c *gin.Context) {
	logger := loggerFrom(c, s.logger)

	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		s.contactResult(c, http.StatusBadRequest, false, contactInvalid)
		return
	}

	err := s.mail.Send(c.Request.Context(), mail.Message{Name: req.FullName, Email: req.Email, Body: req.Message})
	if err != nil {
		logger.Error("sending contact message", zap.Error(err))
		s.contactResult(c, http.StatusOK, false, contactFailure)
		return
	}
	s.contactResult(c, http.StatusOK, true, contactSuccess)
}

func (s *Server) contactResult(c *gin.Context, status int, ok bool, message string) {
	html, err := view.Render(view.ContactResult(ok, message))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(status, htmlContentType, []byte(html))
}

// fragment wires the page for name and returns one region of it.
func (s *Server) fragment(c *gin.Context, p *page.Controller, region, name string) {
	p.Wire(name)
	html, err := p.Fragment(region)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

func (s *Server) index(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid index")
		return 0, false
	}
	return idx, true
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, page.ErrIndexOutOfRange):
		c.String(http.StatusNotFound, "not found")
	default:
		loggerFrom(c, s.logger).Error("request failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
	}
}
