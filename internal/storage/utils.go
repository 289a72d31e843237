package storage

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ErrInvalidPath is returned for object paths that escape the export root
var ErrInvalidPath = errors.New("invalid object path")

// IndexFile is the entry page of every export folder
const IndexFile = "index.html"

// GenerateExportFolderPath returns YYYY/MM/DD/<kind>-YYYY-MM-DD-HH-MM-SS-<suffix>
func GenerateExportFolderPath(kind string, timestamp time.Time, suffix string) string {
	ts := timestamp.UTC()
	folder := fmt.Sprintf("%04d/%02d/%02d/%s-%04d-%02d-%02d-%02d-%02d-%02d",
		ts.Year(), ts.Month(), ts.Day(), kind,
		ts.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second())
	if suffix != "" {
		folder += "-" + suffix
	}
	return folder
}

// CleanObjectPath normalizes a slash path and rejects traversal
func CleanObjectPath(p string) (string, error) {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return path.Clean(p), nil
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// exportSortKey drops the kind prefix so folders order by timestamp
func exportSortKey(p string) string {
	base := path.Base(path.Dir(p))
	if i := strings.Index(base, "-"); i >= 0 {
		return base[i+1:]
	}
	return base
}

// newestFirst sorts export paths by timestamp descending and applies limit
func newestFirst(paths []string, limit int) []string {
	sort.SliceStable(paths, func(i, j int) bool {
		return exportSortKey(paths[i]) > exportSortKey(paths[j])
	})
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}
