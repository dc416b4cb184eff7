package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/Alx74909/Projet-ATLAS/config"
	"github.com/Alx74909/Projet-ATLAS/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// NewRouter wires the form, the JSON API, health and metrics.
func NewRouter(cfg config.CORSConfig, h *PredictionHandler, modelVersion string) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "UP",
			"message":       "Delivery delay predictor is running",
			"model_version": modelVersion,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.ShowForm)
	router.POST("/predict", h.SubmitForm)

	api := router.Group("/api/v1", middleware.SetupCORS(cfg))
	api.POST("/predictions", h.Predict)
	api.OPTIONS("/predictions", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return router, nil
}
