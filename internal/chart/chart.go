// Package chart renders the top-videos bar chart sent with a report. It is a
// pure presentation step: any failure here degrades to a text-only report.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/tikscope/tikscope/internal/profile"
)

const (
	chartWidth  = 600
	chartHeight = 400
	marginX     = 40
	marginY     = 30
	barGap      = 30
)

var (
	background = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	axisColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	barColors  = []color.NRGBA{
		{R: 37, G: 244, B: 238, A: 255},
		{R: 254, G: 44, B: 85, A: 255},
		{R: 22, G: 24, B: 35, A: 255},
	}
)

// RenderTopVideos draws one bar per video, scaled against the highest view
// count, and returns the encoded PNG. Bars keep the input order; the caller
// passes videos already sorted by views.
func RenderTopVideos(videos []profile.VideoStat) ([]byte, error) {
	if len(videos) == 0 {
		return nil, fmt.Errorf("no videos to render")
	}

	maxViews := videos[0].Views
	for _, v := range videos {
		if v.Views > maxViews {
			maxViews = v.Views
		}
	}
	if maxViews == 0 {
		return nil, fmt.Errorf("all view counts are zero")
	}

	canvas := imaging.New(chartWidth, chartHeight, background)

	// Baseline axis
	axis := imaging.New(chartWidth-2*marginX, 2, axisColor)
	canvas = imaging.Paste(canvas, axis, image.Pt(marginX, chartHeight-marginY))

	plotWidth := chartWidth - 2*marginX
	plotHeight := chartHeight - 2*marginY
	barWidth := (plotWidth - barGap*(len(videos)+1)) / len(videos)
	if barWidth < 1 {
		return nil, fmt.Errorf("too many videos for chart width: %d", len(videos))
	}

	for i, v := range videos {
		barHeight := v.Views * plotHeight / maxViews
		if barHeight < 2 {
			barHeight = 2
		}
		bar := imaging.New(barWidth, barHeight, barColors[i%len(barColors)])
		x := marginX + barGap + i*(barWidth+barGap)
		y := chartHeight - marginY - barHeight
		canvas = imaging.Paste(canvas, bar, image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
