package api

import (
	"net/http"

	_ "runner-dashboard/docs"
	"runner-dashboard/internal/api/handler"
	"runner-dashboard/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires every endpoint onto r
func RegisterRoutes(r *router.Router, h *handler.UploadHandler) {
	r.GET("/healthz", handler.Health)

	r.POST("/api/v1/uploads", h.CreateUpload)
	r.GET("/api/v1/uploads", h.ListUploads)
	// More specific routes first
	r.GET("/api/v1/uploads/*/dashboard", h.GetDashboard)
	r.GET("/api/v1/uploads/*/records", h.GetRecords)
	r.GET("/api/v1/uploads/*/errors", h.GetErrors)
	r.GET("/api/v1/uploads/*/runners/*", h.GetRunner)
	// Generic upload routes last
	r.GET("/api/v1/uploads/*", h.GetUpload)
	r.DELETE("/api/v1/uploads/*", h.DeleteUpload)

	r.GET("/api/v1/downloads/*/*", h.DownloadFile)

	swagger := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		swagger.ServeHTTP(w, req)
	})
}
