package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/airborne-labs/aerocoef/internal/aero"
)

const (
	// Border sizes in pixels
	defaultTopBorder    = 30
	defaultLeftBorder   = 70
	defaultBottomBorder = 50
	defaultRightBorder  = 30

	gridLines = 8
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorGrid       = color.RGBA{225, 225, 225, 255}
	colorAxis       = color.RGBA{90, 90, 90, 255}
	colorCL         = color.RGBA{31, 119, 180, 255}
	colorCD         = color.RGBA{214, 39, 40, 255}
)

// RenderConfig holds the chart rendering options.
type RenderConfig struct {
	Width, Height int
	FontFile      string // Optional TTF for annotations
	Annotations   bool
}

// ChartRenderer draws a coefficient series as CL and CD polylines over time.
type ChartRenderer struct {
	config    RenderConfig
	annotator *Annotator
}

// NewChartRenderer creates a renderer. When annotations are enabled the
// annotator loads the configured TTF, or falls back to the built-in bitmap
// face when none is given.
func NewChartRenderer(config RenderConfig) (*ChartRenderer, error) {
	r := &ChartRenderer{config: config}
	if config.Annotations {
		annotator, err := NewAnnotator(config.FontFile)
		if err != nil {
			return nil, fmt.Errorf("creating annotator: %w", err)
		}
		r.annotator = annotator
	}
	return r, nil
}

// plotArea is the chart region inside the borders.
func (r *ChartRenderer) plotArea() image.Rectangle {
	return image.Rect(
		defaultLeftBorder,
		defaultTopBorder,
		r.config.Width-defaultRightBorder,
		r.config.Height-defaultBottomBorder,
	)
}

// Render draws the series onto a fresh RGBA image.
func (r *ChartRenderer) Render(series aero.Series, summary aero.Summary) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)

	area := r.plotArea()
	scale := newChartScale(series, summary, area)

	r.drawGrid(img, area)
	r.drawSeries(img, series, scale, func(c aero.Coefficient) float64 { return c.CL }, colorCL)
	r.drawSeries(img, series, scale, func(c aero.Coefficient) float64 { return c.CD }, colorCD)

	if r.annotator != nil {
		if err := r.annotator.Annotate(img, series, summary, scale, area); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (r *ChartRenderer) drawGrid(img *image.RGBA, area image.Rectangle) {
	for i := 0; i <= gridLines; i++ {
		y := area.Min.Y + i*area.Dy()/gridLines
		for x := area.Min.X; x <= area.Max.X; x++ {
			img.Set(x, y, colorGrid)
		}
	}
	for i := 0; i <= gridLines; i++ {
		x := area.Min.X + i*area.Dx()/gridLines
		for y := area.Min.Y; y <= area.Max.Y; y++ {
			img.Set(x, y, colorGrid)
		}
	}

	// Axis lines on the left and bottom edges
	for y := area.Min.Y; y <= area.Max.Y; y++ {
		img.Set(area.Min.X, y, colorAxis)
	}
	for x := area.Min.X; x <= area.Max.X; x++ {
		img.Set(x, area.Max.Y, colorAxis)
	}
}

func (r *ChartRenderer) drawSeries(img *image.RGBA, series aero.Series, scale chartScale, get func(aero.Coefficient) float64, col color.RGBA) {
	if len(series) < 2 {
		return
	}

	prevX, prevY := scale.point(series[0].Timestamp, get(series[0]))
	for _, c := range series[1:] {
		x, y := scale.point(c.Timestamp, get(c))
		drawLine(img, prevX, prevY, x, y, col)
		prevX, prevY = x, y
	}
}

// chartScale maps (timestamp, value) to pixel coordinates.
type chartScale struct {
	area               image.Rectangle
	timeMin, timeMax   float64
	valueMin, valueMax float64
}

func newChartScale(series aero.Series, summary aero.Summary, area image.Rectangle) chartScale {
	s := chartScale{
		area:     area,
		timeMin:  series[0].Timestamp,
		timeMax:  series[len(series)-1].Timestamp,
		valueMin: math.Min(summary.CL.Min, summary.CD.Min),
		valueMax: math.Max(summary.CL.Max, summary.CD.Max),
	}

	// Pad the value range so extremes do not sit on the border, and avoid a
	// zero-height range for constant series.
	span := s.valueMax - s.valueMin
	if span <= 0 {
		span = math.Max(math.Abs(s.valueMax), 1)
	}
	s.valueMin -= span * 0.05
	s.valueMax += span * 0.05

	if s.timeMax <= s.timeMin {
		s.timeMax = s.timeMin + 1
	}
	return s
}

func (s chartScale) point(ts, value float64) (int, int) {
	x := s.area.Min.X + int(float64(s.area.Dx())*(ts-s.timeMin)/(s.timeMax-s.timeMin))
	y := s.area.Max.Y - int(float64(s.area.Dy())*(value-s.valueMin)/(s.valueMax-s.valueMin))
	return x, y
}

// value returns the data value a plot-area Y pixel corresponds to.
func (s chartScale) value(y int) float64 {
	return s.valueMax - (s.valueMax-s.valueMin)*float64(y-s.area.Min.Y)/float64(s.area.Dy())
}

// time returns the timestamp a plot-area X pixel corresponds to.
func (s chartScale) time(x int) float64 {
	return s.timeMin + (s.timeMax-s.timeMin)*float64(x-s.area.Min.X)/float64(s.area.Dx())
}

// drawLine draws a 1px line using integer Bresenham stepping.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
