package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"fourierslice/internal/models"
	"fourierslice/pkg/config"
	"fourierslice/pkg/reconstruction"
)

var (
	overlayColor = color.RGBA{R: 255, A: 255}
	plotColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	background   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	plotWidth  = 384
	plotHeight = 192

	// logFloor keeps log magnitudes finite for empty Fourier bins
	logFloor = 1e-3
)

// Updater produces the frame for an angle. *reconstruction.Reconstructor
// satisfies it.
type Updater interface {
	Update(angle float64) models.Frame
}

// Viewer renders the panels of a Fourier slice frame as images.
type Viewer struct {
	// phantom and spectrum are the immutable inputs shown on every frame
	phantom  *mat.Dense
	spectrum *mat.CDense

	// sinoMin and sinoMax fix the sinogram color scale across frames
	sinoMin float64
	sinoMax float64

	// scale is the integer upscaling applied to image panels
	scale int
}

// NewViewer creates a viewer for frames produced by r
func NewViewer(r *reconstruction.Reconstructor, scale int) *Viewer {
	if scale < 1 {
		scale = 1
	}
	lo, hi := r.SinogramRange()
	return &Viewer{
		phantom:  r.Phantom(),
		spectrum: r.Spectrum(),
		sinoMin:  lo,
		sinoMax:  hi,
		scale:    scale,
	}
}

// RenderPanel draws one named panel of frame
func (v *Viewer) RenderPanel(name string, frame models.Frame) (image.Image, error) {
	switch name {
	case "phantom":
		img := v.grayImage(v.phantom, math.NaN(), math.NaN())
		v.drawLine(img, frame.Overlay)
		return img, nil

	case "spectrum":
		img := v.grayImage(logMagnitude(v.spectrum), math.NaN(), math.NaN())
		for _, p := range frame.SliceLine {
			v.plotPoint(img, p)
		}
		return img, nil

	case "buffer":
		if frame.Buffer == nil {
			return nil, fmt.Errorf("frame has no accumulation buffer")
		}
		return v.grayImage(logMagnitude(frame.Buffer), math.NaN(), math.NaN()), nil

	case "reconstruction":
		if frame.Reconstruction == nil {
			return nil, fmt.Errorf("frame has no reconstruction")
		}
		return v.grayImage(frame.Reconstruction, math.NaN(), math.NaN()), nil

	case "sinogram":
		if frame.Sinogram == nil {
			return nil, fmt.Errorf("frame has no sinogram")
		}
		return v.grayImage(frame.Sinogram, v.sinoMin, v.sinoMax), nil

	case "projection":
		return linePlot(frame.Projection), nil

	case "projection_spectrum":
		magnitudes := make([]float64, len(frame.ProjectionSpectrum))
		for i, c := range frame.ProjectionSpectrum {
			magnitudes[i] = cmplx.Abs(c)
		}
		return linePlot(magnitudes), nil

	default:
		return nil, fmt.Errorf("invalid panel: %s", name)
	}
}

// SavePanel saves a rendered panel as a PNG image
func (v *Viewer) SavePanel(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveFrame renders the requested panels of frame into outputDir, one PNG
// per panel. An empty panel list renders every panel.
func (v *Viewer) SaveFrame(frame models.Frame, outputDir string, panels []string) error {
	if len(panels) == 0 {
		panels = config.Panels
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range panels {
		img, err := v.RenderPanel(name, frame)
		if err != nil {
			return err
		}
		filename := filepath.Join(outputDir, name+".png")
		if err := v.SavePanel(img, filename); err != nil {
			return fmt.Errorf("failed to save panel %s: %w", name, err)
		}
	}

	return nil
}

// SaveSweep renders frames for angles 0, step, 2*step, ... up to
// reconstruction.MaxAngle, each into its own angle_XXX subdirectory
func (v *Viewer) SaveSweep(u Updater, outputDir string, step int, panels []string) error {
	if step < 1 {
		return fmt.Errorf("sweep step must be positive, got %d", step)
	}

	for angle := 0; angle <= reconstruction.MaxAngle; angle += step {
		frame := u.Update(float64(angle))
		dir := filepath.Join(outputDir, fmt.Sprintf("angle_%03d", angle))
		if err := v.SaveFrame(frame, dir, panels); err != nil {
			return fmt.Errorf("angle %d: %w", angle, err)
		}
	}

	return nil
}

// grayImage maps m linearly onto gray levels between lo and hi. NaN bounds
// use the data's own range.
func (v *Viewer) grayImage(m mat.Matrix, lo, hi float64) *image.RGBA {
	rows, cols := m.Dims()
	if math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = mat.Min(m), mat.Max(m)
	}
	span := hi - lo

	img := image.NewRGBA(image.Rect(0, 0, cols*v.scale, rows*v.scale))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			level := 0.0
			if span > 0 {
				level = (m.At(i, j) - lo) / span
			}
			g := uint8(math.Max(0, math.Min(255, level*255)))
			c := color.RGBA{R: g, G: g, B: g, A: 255}
			for dy := 0; dy < v.scale; dy++ {
				for dx := 0; dx < v.scale; dx++ {
					img.SetRGBA(j*v.scale+dx, i*v.scale+dy, c)
				}
			}
		}
	}
	return img
}

// plotPoint marks a point given in cell coordinates (x = column, y = row)
func (v *Viewer) plotPoint(img *image.RGBA, p models.Point) {
	half := float64(v.scale) / 2
	x := int(math.Floor(p.X*float64(v.scale) + half))
	y := int(math.Floor(p.Y*float64(v.scale) + half))
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, overlayColor)
	}
}

func (v *Viewer) drawLine(img *image.RGBA, line models.Line) {
	dx := line.To.X - line.From.X
	dy := line.To.Y - line.From.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))*float64(v.scale))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		v.plotPoint(img, models.Point{X: line.From.X + t*dx, Y: line.From.Y + t*dy})
	}
}

// logMagnitude returns log(|c| + logFloor) element-wise
func logMagnitude(c *mat.CDense) *mat.Dense {
	rows, cols := c.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, math.Log(cmplx.Abs(c.At(i, j))+logFloor))
		}
	}
	return out
}

// linePlot draws values as a polyline on a white canvas
func linePlot(values []float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, plotWidth, plotHeight))
	for y := 0; y < plotHeight; y++ {
		for x := 0; x < plotWidth; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	if len(values) == 0 {
		return img
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	const margin = 8
	usable := float64(plotHeight - 2*margin)

	yOf := func(val float64) float64 {
		if span == 0 {
			return float64(plotHeight) / 2
		}
		return float64(plotHeight-margin) - (val-lo)/span*usable
	}
	xOf := func(i int) float64 {
		if len(values) == 1 {
			return float64(plotWidth) / 2
		}
		return float64(margin) + float64(i)*float64(plotWidth-2*margin)/float64(len(values)-1)
	}

	for i := 0; i+1 < len(values); i++ {
		x0, y0 := xOf(i), yOf(values[i])
		x1, y1 := xOf(i+1), yOf(values[i+1])
		steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			x := int(math.Round(x0 + t*(x1-x0)))
			y := int(math.Round(y0 + t*(y1-y0)))
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, plotColor)
			}
		}
	}
	if len(values) == 1 {
		img.SetRGBA(int(xOf(0)), int(yOf(values[0])), plotColor)
	}

	return img
}
