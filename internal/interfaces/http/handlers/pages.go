// internal/interfaces/http/handlers/pages.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/domain/catalog"
)

// Founder is a team member shown on the founders page
type Founder struct {
	Name  string
	Role  string
	Bio   string
	Image string
}

var founders = []Founder{
	{
		Name:  "Zach",
		Role:  "Useless Fellow",
		Bio:   "Zach is the useless guy who didn't give me a role to put in the website.",
		Image: "https://placehold.co/320x240/png",
	},
	{
		Name:  "Emma",
		Role:  "Betrayed Fellow",
		Bio:   "Emma is the poor victim of Zach's lazyness when I asked for a role.",
		Image: "https://placehold.co/320x240/png",
	},
	{
		Name:  "Vishesh",
		Role:  "Web Developer",
		Bio:   "Vishesh is the web developer who created this website.",
		Image: "https://placehold.co/320x240/png",
	},
}

// PageHandler renders the informational pages and accepts the contact and
// newsletter forms
type PageHandler struct {
	config *config.Config
	log    *logrus.Logger
}

// NewPageHandler creates a page handler
func NewPageHandler(cfg *config.Config, log *logrus.Logger) *PageHandler {
	return &PageHandler{
		config: cfg,
		log:    log,
	}
}

func (h *PageHandler) base(title string) gin.H {
	return gin.H{
		"Title":    title,
		"AppName":  h.config.App.Name,
		"Founders": founders,
		"Menu":     catalog.Menu,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.base("Home"))
}

// How handles GET /how
func (h *PageHandler) How(c *gin.Context) {
	c.HTML(http.StatusOK, "how.html", h.base("How It Works"))
}

// Menu handles GET /menu
func (h *PageHandler) Menu(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.html", h.base("Menu"))
}

// Founders handles GET /founders
func (h *PageHandler) Founders(c *gin.Context) {
	c.HTML(http.StatusOK, "founders.html", h.base("Founders"))
}

// Contact handles GET /contact
func (h *PageHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", h.base("Contact"))
}

// Reviews handles GET /reviews
func (h *PageHandler) Reviews(c *gin.Context) {
	c.HTML(http.StatusOK, "reviews.html", h.base("Reviews"))
}

// Newsletter handles GET /newsletter
func (h *PageHandler) Newsletter(c *gin.Context) {
	c.HTML(http.StatusOK, "newsletter.html", h.base("Newsletter"))
}

// FAQ handles GET /faq
func (h *PageHandler) FAQ(c *gin.Context) {
	c.HTML(http.StatusOK, "faq.html", h.base("FAQ"))
}

// Allergens handles GET /allergens
func (h *PageHandler) Allergens(c *gin.Context) {
	c.HTML(http.StatusOK, "allergens.html", h.base("Allergens"))
}

// SubmitContact handles POST /contact; submissions are logged, nothing is
// persisted
func (h *PageHandler) SubmitContact(c *gin.Context) {
	if err := c.Request.ParseForm(); err == nil {
		h.log.WithField("form", c.Request.PostForm).Info("Contact submission")
	}
	c.Redirect(http.StatusFound, "/contact")
}

// SubmitNewsletter handles POST /newsletter
func (h *PageHandler) SubmitNewsletter(c *gin.Context) {
	if err := c.Request.ParseForm(); err == nil {
		h.log.WithField("form", c.Request.PostForm).Info("Newsletter signup")
	}
	c.Redirect(http.StatusFound, "/newsletter")
}
