package app

import (
	"fmt"
	"image"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/airborne-labs/aerocoef/internal/aero"
)

const (
	dpi      float64 = 72
	fontSize float64 = 12
)

// Annotator draws axis labels, a legend and an info bar on a rendered chart.
// With a TTF file it renders through freetype; otherwise it falls back to the
// built-in fixed-size bitmap face.
type Annotator struct {
	context *freetype.Context
	face    font.Face
}

func NewAnnotator(fontFile string) (*Annotator, error) {
	if fontFile == "" {
		return &Annotator{face: basicfont.Face7x13}, nil
	}

	fontBytes, err := os.ReadFile(fontFile)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	context := freetype.NewContext()
	context.SetDPI(dpi)
	context.SetFont(parsedFont)
	context.SetFontSize(fontSize)
	context.SetSrc(&image.Uniform{colorAxis})
	context.SetHinting(font.HintingFull)

	return &Annotator{context: context}, nil
}

func (a *Annotator) Annotate(img *image.RGBA, series aero.Series, summary aero.Summary, scale chartScale, area image.Rectangle) error {
	if a.context != nil {
		a.context.SetClip(img.Bounds())
		a.context.SetDst(img)
	}

	ops := []struct {
		msg string
		fn  func(*image.RGBA, aero.Series, aero.Summary, chartScale, image.Rectangle) error
	}{
		{"drawing value scale", a.drawValueScale},
		{"drawing time scale", a.drawTimeScale},
		{"drawing info", a.drawInfo},
	}
	for _, op := range ops {
		if err := op.fn(img, series, summary, scale, area); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return nil
}

func (a *Annotator) drawValueScale(img *image.RGBA, _ aero.Series, _ aero.Summary, scale chartScale, area image.Rectangle) error {
	for i := 0; i <= gridLines; i++ {
		y := area.Min.Y + i*area.Dy()/gridLines
		str := fmt.Sprintf("%0.3f", scale.value(y))
		if err := a.drawText(img, str, 5, y+4); err != nil {
			return err
		}
	}
	return nil
}

func (a *Annotator) drawTimeScale(img *image.RGBA, _ aero.Series, _ aero.Summary, scale chartScale, area image.Rectangle) error {
	for i := 0; i <= gridLines; i++ {
		x := area.Min.X + i*area.Dx()/gridLines
		str := fmt.Sprintf("%0.1fs", scale.time(x))
		if err := a.drawText(img, str, x-10, area.Max.Y+18); err != nil {
			return err
		}
	}
	return nil
}

func (a *Annotator) drawInfo(img *image.RGBA, series aero.Series, summary aero.Summary, _ chartScale, area image.Rectangle) error {
	y := area.Max.Y + 36

	// Legend swatches ahead of the stats line
	swatch := image.Rect(area.Min.X, y-8, area.Min.X+10, y+2)
	for px := swatch.Min.X; px < swatch.Max.X; px++ {
		for py := swatch.Min.Y; py < swatch.Max.Y; py++ {
			img.Set(px, py, colorCL)
			img.Set(px+60, py, colorCD)
		}
	}
	if err := a.drawText(img, "CL", area.Min.X+14, y); err != nil {
		return err
	}
	if err := a.drawText(img, "CD", area.Min.X+74, y); err != nil {
		return err
	}

	info := fmt.Sprintf("%s samples  |  CL mean %0.4f sd %0.4f  |  CD mean %0.4f sd %0.4f  |  v mean %0.2f m/s",
		humanize.Comma(int64(len(series))),
		summary.CL.Mean, summary.CL.StdDev,
		summary.CD.Mean, summary.CD.StdDev,
		summary.Velocity.Mean)
	return a.drawText(img, info, area.Min.X+140, y)
}

func (a *Annotator) drawText(img *image.RGBA, str string, x, y int) error {
	if a.context != nil {
		_, err := a.context.DrawString(str, freetype.Pt(x, y))
		return err
	}

	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{colorAxis},
		Face: a.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(str)
	return nil
}
