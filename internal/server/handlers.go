package server

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"pulseboard/internal/charts"
	"pulseboard/internal/config"
	"pulseboard/internal/models"
	"pulseboard/internal/reports"
	"pulseboard/internal/storage"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// HandleIndex serves the landing page with both query forms
func (s *Server) HandleIndex(c *gin.Context) {
	page, err := s.Generator.IndexPage()
	if err != nil {
		s.log.Error("Failed to render index", err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"storage": s.Exporter.Backend(),
			"config":  "ok",
		},
	})
}

// HandleCryptoDashboard fetches prices and renders the crypto dashboard.
// Fetch failures render as a banner with status 200.
func (s *Server) HandleCryptoDashboard(c *gin.Context) {
	q, err := s.cryptoQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()
	res := s.Fetcher.FetchPrices(ctx, q)

	d, err := s.Generator.CryptoDashboard(ctx, res)
	if err != nil {
		s.log.Error("Failed to render crypto dashboard", err, map[string]interface{}{"fetch_id": res.ID})
		c.String(http.StatusInternalServerError, "Failed to render dashboard")
		return
	}
	s.serveDashboard(c, d)
}

// HandleSeismicDashboard fetches earthquakes, then the significant feed.
// Only one upstream request is in flight at a time.
func (s *Server) HandleSeismicDashboard(c *gin.Context) {
	q, err := s.seismicQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	res := s.Fetcher.FetchQuakes(ctx, q)
	// failures are logged by the fetcher; the panel is simply omitted
	feed, _ := s.Fetcher.FetchSignificant(ctx, s.Config.SignificantFeedURL, s.Presets.Seismic.FeedLimit)

	d, err := s.Generator.SeismicDashboard(ctx, res, feed)
	if err != nil {
		s.log.Error("Failed to render seismic dashboard", err, map[string]interface{}{"fetch_id": res.ID})
		c.String(http.StatusInternalServerError, "Failed to render dashboard")
		return
	}
	s.serveDashboard(c, d)
}

func (s *Server) serveDashboard(c *gin.Context, d *reports.Dashboard) {
	if wantsExport(c) {
		index, err := s.Exporter.Export(c.Request.Context(), d)
		if err != nil {
			c.Header("X-Export-Error", err.Error())
		} else {
			c.Header("X-Export-Path", "/files/"+index)
		}
	}
	c.Data(http.StatusOK, htmlContentType, d.HTML)
}

// HandleCryptoAPI returns the crypto pipeline result as JSON
func (s *Server) HandleCryptoAPI(c *gin.Context) {
	q, err := s.cryptoQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.Fetcher.FetchPrices(c.Request.Context(), q)
	c.JSON(apiStatus(res.Err), res)
}

// HandleSeismicAPI returns the seismic pipeline result as JSON
func (s *Server) HandleSeismicAPI(c *gin.Context) {
	q, err := s.seismicQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.Fetcher.FetchQuakes(c.Request.Context(), q)
	c.JSON(apiStatus(res.Err), res)
}

// apiStatus maps a pipeline error to an HTTP status. Empty results are not
// upstream failures and keep 200.
func apiStatus(fe *models.FetchError) int {
	if fe == nil || fe.IsEmpty() {
		return http.StatusOK
	}
	return http.StatusBadGateway
}

// HandleCryptoPNG renders the static mean price chart
func (s *Server) HandleCryptoPNG(c *gin.Context) {
	q, err := s.cryptoQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	res := s.Fetcher.FetchPrices(c.Request.Context(), q)
	if !res.OK() {
		c.String(apiNotFound(res.Err), reports.CryptoErrorMessage)
		return
	}
	var buf bytes.Buffer
	if err := s.Generator.Charts().RenderMeanPricePNG(&buf, res.Table); errors.Is(err, charts.ErrNoData) {
		c.String(http.StatusNotFound, "No prices to chart")
		return
	} else if err != nil {
		s.log.Error("Failed to render PNG", err)
		c.String(http.StatusInternalServerError, "Failed to render chart")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// HandleSeismicPNG renders the static epicentre chart
func (s *Server) HandleSeismicPNG(c *gin.Context) {
	q, err := s.seismicQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	res := s.Fetcher.FetchQuakes(c.Request.Context(), q)
	if !res.OK() {
		c.String(apiNotFound(res.Err), reports.SeismicBanner(res).Text)
		return
	}
	var buf bytes.Buffer
	if err := s.Generator.Charts().RenderEpicentresPNG(&buf, res.Table); err != nil {
		s.log.Error("Failed to render PNG", err)
		c.String(http.StatusInternalServerError, "Failed to render chart")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func apiNotFound(fe *models.FetchError) int {
	if fe.IsEmpty() {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// HandleListReports lists recent exports as HTML or JSON
func (s *Server) HandleListReports(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	exports, err := s.Exporter.List(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list exports", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exports: " + err.Error()})
		return
	}

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, gin.H{
			"reports":   exports,
			"count":     len(exports),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	default:
		page, err := s.Generator.ExportsPage(exports)
		if err != nil {
			s.log.Error("Failed to render exports page", err)
			c.String(http.StatusInternalServerError, "Failed to render page")
			return
		}
		c.Data(http.StatusOK, htmlContentType, page)
	}
}

// HandleFileProxy serves exported files from local storage or GCS
func (s *Server) HandleFileProxy(c *gin.Context) {
	filePath := strings.TrimPrefix(c.Param("path"), "/")
	if filePath == "" {
		c.String(http.StatusBadRequest, "File path required")
		return
	}

	data, err := s.Exporter.Open(c.Request.Context(), filePath)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		c.String(http.StatusBadRequest, "Invalid file path")
		return
	case errors.Is(err, fs.ErrNotExist):
		c.String(http.StatusNotFound, "File not found")
		return
	case err != nil:
		s.log.Error("Failed to get file from storage", err, map[string]interface{}{"path": filePath})
		c.String(http.StatusInternalServerError, "Failed to read file")
		return
	}

	c.Data(http.StatusOK, storage.GetContentType(filePath), data)
}
