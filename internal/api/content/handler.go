package content

import (
	"net/http"

	"membership-app/database"
	"membership-app/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type PageDTO struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

// GetPage serves one gated content page by its site path. Tier enforcement
// happened already in the page guard; this handler only fetches.
func GetPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var page content.Page
		if err := database.DB.
			Where("path = ?", c.Request.URL.Path).
			First(&page).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}

		c.JSON(http.StatusOK, PageDTO{
			Path:    page.Path,
			Title:   page.Title,
			Summary: page.Summary,
			Body:    page.Body,
		})
	}
}

// ListSection lists the pages under a path prefix, for section indexes like
// /tools/.
func ListSection(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pages []content.Page
		if err := database.DB.
			Where("path LIKE ?", prefix+"%").
			Order("path").
			Find(&pages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
			return
		}

		out := make([]PageDTO, 0, len(pages))
		for _, p := range pages {
			out = append(out, PageDTO{Path: p.Path, Title: p.Title, Summary: p.Summary})
		}
		c.JSON(http.StatusOK, gin.H{"pages": out})
	}
}
