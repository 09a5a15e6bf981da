package api

import "github.com/gin-gonic/gin"

// Markup and styling live with the clients; these routes serve the view
// state the pages render from.

func GetOnboarding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), gin.H{
			"title":       "Welcome to GlycoSight AI",
			"tagline":     "Unlock insights into your health.",
			"description": "Your AI for preliminary Type-2 Diabetes risk assessment using medical files.",
			"cta":         "/auth",
		}, nil)
	}
}

func GetAuthView(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), gin.H{
			"modes":           []string{"sign_up", "log_in"},
			"oauth_providers": []string{"google"},
		}, nil)
	}
}

func Healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "GlycoSight AI portal is running"})
}
