package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/poster"
)

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// employees fetches and normalizes records from the configured source.
func (s *Server) employees(c *gin.Context) {
	cfg, _ := s.snapshot()
	src, err := cfg.DataSource.EmployeeSource(cfg.FieldMapping, s.HTTPClient)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	emps, err := src.Employees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(emps), "employees": emps})
}

type posterRequest struct {
	Category string `json:"category" binding:"required"`
	Date     string `json:"date"` // YYYY-MM-DD, defaults to today
	Employee struct {
		Name          string `json:"name"`
		Designation   string `json:"designation"`
		Vertical      string `json:"vertical"`
		Department    string `json:"department"`
		Location      string `json:"location"`
		DateOfBirth   string `json:"dob"`
		DateOfJoining string `json:"doj"`
		PhotoURL      string `json:"photo_url"`
	} `json:"employee" binding:"required"`
}

// generatePoster composes one poster and returns it as PNG.
func (s *Server) generatePoster(c *gin.Context) {
	var req posterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	requestID := uuid.NewString()
	cat := poster.Category(req.Category)

	cfg, fonts := s.snapshot()
	catCfg, err := cfg.Category(cat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, err := config.LoadTemplate(catCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	emp := employee.Employee{
		Name:        req.Employee.Name,
		Designation: req.Employee.Designation,
		Vertical:    req.Employee.Vertical,
		Department:  req.Employee.Department,
		Location:    req.Employee.Location,
		PhotoURL:    req.Employee.PhotoURL,
	}
	if t, err := employee.ParseDate(req.Employee.DateOfBirth); err == nil {
		emp.DateOfBirth = t
	}
	if t, err := employee.ParseDate(req.Employee.DateOfJoining); err == nil {
		emp.DateOfJoining = t
	}

	comp := s.compositor(fonts)
	if req.Date != "" {
		on, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		comp.Now = func() time.Time { return on }
	}

	png, err := comp.Compose(c.Request.Context(), emp, tmpl, catCfg.Layout, cat)
	if err != nil {
		s.Logger.Error().Str("request_id", requestID).Str("employee", emp.Name).Err(err).Msg("api: poster generation failed")
		status := http.StatusInternalServerError
		var layoutErr *poster.LayoutError
		var photoErr *poster.PhotoUnavailableError
		switch {
		case errors.As(err, &layoutErr):
			status = http.StatusUnprocessableEntity
		case errors.As(err, &photoErr):
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error(), "request_id": requestID})
		return
	}

	c.Header("X-Request-Id", requestID)
	c.Data(http.StatusOK, "image/png", png)
}

type validateRequest struct {
	Category string        `json:"category" binding:"required"`
	Layout   poster.Layout `json:"layout" binding:"required"`
}

// validateLayout checks a candidate layout against the category's
// template dimensions without composing anything.
func (s *Server) validateLayout(c *gin.Context) {
	var req validateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, _ := s.snapshot()
	catCfg, err := cfg.Category(poster.Category(req.Category))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, err := config.LoadTemplate(catCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b := tmpl.Bounds()
	if err := req.Layout.Validate(poster.Category(req.Category), b.Dx(), b.Dy()); err != nil {
		var layoutErr *poster.LayoutError
		if errors.As(err, &layoutErr) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "violations": layoutErr.Violations})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (s *Server) getConfig(c *gin.Context) {
	cfg, _ := s.snapshot()
	c.JSON(http.StatusOK, cfg)
}

// putConfig replaces the stored configuration. Fonts are re-parsed so a
// bad font path is rejected here rather than at render time.
func (s *Server) putConfig(c *gin.Context) {
	var cfg config.Config
	if err := c.BindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fonts, err := cfg.LoadFonts()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := cfg.Save(s.ConfigPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.replace(&cfg, fonts)
	c.JSON(http.StatusOK, gin.H{"saved": true})
}
