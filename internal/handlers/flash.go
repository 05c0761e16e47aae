package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/knagata/taskflow/internal/constants"
)

var flashCategories = []string{
	constants.FlashSuccess,
	constants.FlashError,
	constants.FlashInfo,
}

// addFlash queues a one-shot message for the next rendered page.
func addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	_ = session.Save()
}

// takeFlashes drains all pending flash messages, keyed by category.
func takeFlashes(c *gin.Context) map[string][]string {
	session := sessions.Default(c)
	flashes := make(map[string][]string, len(flashCategories))

	for _, category := range flashCategories {
		for _, value := range session.Flashes(category) {
			if message, ok := value.(string); ok {
				flashes[category] = append(flashes[category], message)
			}
		}
	}
	_ = session.Save()

	return flashes
}
