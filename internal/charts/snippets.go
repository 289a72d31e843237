package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrNoData is returned when a chart has nothing to plot
var ErrNoData = errors.New("no data to chart")

// ChartSnippet is a rendered go-echarts chart. HTML is a standalone page that
// loads the echarts assets, suitable for an iframe srcdoc.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

type renderer interface {
	Render(w io.Writer) error
}

func renderSnippet(id, title string, r renderer) (ChartSnippet, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("render %s: %w", id, err)
	}
	return ChartSnippet{ID: id, Title: title, HTML: buf.String()}, nil
}
