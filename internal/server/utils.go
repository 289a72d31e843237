package server

import (
	"fmt"
	"strconv"

	"pulseboard/internal/models"
	"pulseboard/internal/presets"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// parseLimit reads ?limit=, defaulting to 10 and capping at 100
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// queryOr returns the query value when the parameter is present, even if blank
func queryOr(c *gin.Context, key, fallback string) string {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return fallback
}

func wantsExport(c *gin.Context) bool {
	switch c.Query("export") {
	case "1", "true", "yes":
		return true
	}
	return false
}

func statusCode(status int) string {
	return strconv.Itoa(status)
}

// cryptoQuery resolves ?ids=&vs= against the defaults, then applies ?preset=
func (s *Server) cryptoQuery(c *gin.Context) (models.CryptoQuery, error) {
	def := s.Presets.Crypto.Default
	typed := presets.CryptoSelection{
		Assets:     queryOr(c, "ids", def.Assets),
		Currencies: queryOr(c, "vs", def.Currencies),
	}
	return s.Presets.Crypto.Resolve(c.Query("preset"), typed)
}

// seismicQuery resolves ?start=&end=&minmag= against the presets
func (s *Server) seismicQuery(c *gin.Context) (models.SeismicQuery, error) {
	def := s.Presets.Seismic
	minMag := def.MinMagnitude
	if raw, ok := c.GetQuery("minmag"); ok && raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.SeismicQuery{}, fmt.Errorf("invalid minmag %q", raw)
		}
		minMag = v
	}
	return models.NewSeismicQuery(queryOr(c, "start", def.Start), queryOr(c, "end", def.End), minMag)
}
