package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Renderer is implemented by every output backend.
type Renderer interface {
	// Render serializes a drawable frame.
	Render(f Frame) ([]byte, error)

	// Name returns the name of the renderer.
	Name() string
}

// GetRenderer returns the renderer for a format string.
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// SVGRenderer outputs scalable vector graphics.
type SVGRenderer struct{}

// Name returns the name of the renderer.
func (r *SVGRenderer) Name() string { return "SVG Renderer" }

// Render creates an SVG representation of the frame. Links draw first so
// nodes sit on top; custom connections get a dash pattern.
func (r *SVGRenderer) Render(f Frame) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%f" height="%f" viewBox="0 0 %f %f" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, f.Width, f.Height, f.Width, f.Height, f.Background))

	for _, l := range f.Links {
		dash := ""
		if l.Dashed {
			dash = ` stroke-dasharray="5,3"`
		}
		buf.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="%f"%s />
`, l.X1, l.Y1, l.X2, l.Y2, l.Color, l.Width, dash))
	}

	for _, n := range f.Nodes {
		stroke := "rgba(0,0,0,0.3)"
		strokeWidth := 0.5
		if n.Ring {
			stroke = "#FBBC05"
			strokeWidth = 3
		} else if n.Highlight {
			stroke = "#111111"
			strokeWidth = 2
		}
		buf.WriteString(fmt.Sprintf(`<circle cx="%f" cy="%f" r="%f" fill="%s" stroke="%s" stroke-width="%f" />
`, n.X, n.Y, n.Radius, n.Color, stroke, strokeWidth))

		if n.ShowLabel && n.Label != "" {
			labelY := n.Y + n.Radius + 13
			buf.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="sans-serif" font-size="11" fill="#333333" text-anchor="middle">%s</text>
`, n.X, labelY, escapeXML(n.Label)))
		}
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// JSONRenderer outputs the frame as JSON for machine consumption.
type JSONRenderer struct{}

// Name returns the name of the renderer.
func (r *JSONRenderer) Name() string { return "JSON Renderer" }

// Render creates a JSON representation of the frame with a metadata block.
func (r *JSONRenderer) Render(f Frame) ([]byte, error) {
	out := struct {
		Frame
		Metadata map[string]any `json:"metadata"`
	}{
		Frame: f,
		Metadata: map[string]any{
			"nodeCount": len(f.Nodes),
			"linkCount": len(f.Links),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	return json.MarshalIndent(out, "", "  ")
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
