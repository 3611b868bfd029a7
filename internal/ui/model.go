package ui

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"fourierslice/internal/models"
	"fourierslice/pkg/detector"
	"fourierslice/pkg/reconstruction"
)

const (
	defaultWidth = 80
	labelWidth   = 16
	coarseStep   = 10
)

// Model is the Bubbletea model for the fourierslice TUI. Every angle change
// runs one synchronous reconstruction update.
type Model struct {
	recon   *reconstruction.Reconstructor
	frame   models.Frame
	metrics reconstruction.ValidationMetrics

	angle   int
	shape   int
	profile []float64

	slider   progress.Model
	width    int
	quitting bool
}

// New creates a Model at 0 degrees showing the named detector shape.
func New(r *reconstruction.Reconstructor, shape string) (Model, error) {
	s, err := detector.ShapeByName(shape)
	if err != nil {
		return Model{}, err
	}
	idx := 0
	for i, candidate := range detector.Shapes {
		if candidate.Name() == s.Name() {
			idx = i
		}
	}

	m := Model{
		recon:  r,
		shape:  idx,
		slider: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:  defaultWidth,
	}
	m.slider.Width = defaultWidth - labelWidth
	m.refresh()
	return m, nil
}

// Run starts the interactive program and blocks until the user quits.
func Run(r *reconstruction.Reconstructor, shape string) error {
	m, err := New(r, shape)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}

// Angle returns the current projection angle in degrees.
func (m Model) Angle() int { return m.angle }

// Frame returns the frame for the current angle.
func (m Model) Frame() models.Frame { return m.frame }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("fourierslice")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}
		angle := m.angle
		switch msg.String() {
		case "left", "h":
			angle--
		case "right", "l":
			angle++
		case "pgdown":
			angle -= coarseStep
		case "pgup":
			angle += coarseStep
		case "home":
			angle = 0
		case "end":
			angle = reconstruction.MaxAngle
		case "s":
			m.shape = (m.shape + 1) % len(detector.Shapes)
			m.profile = detector.Normalize(detector.Profile(detector.Shapes[m.shape], float64(m.angle)))
			return m, nil
		default:
			return m, nil
		}
		angle = clampAngle(angle)
		if angle != m.angle {
			m.angle = angle
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.slider.Width = max(10, msg.Width-labelWidth)
	}
	return m, nil
}

// refresh recomputes everything derived from the angle
func (m *Model) refresh() {
	a := float64(m.angle)
	m.frame = m.recon.Update(a)
	m.metrics = m.recon.Metrics(m.frame.Reconstruction)
	m.profile = detector.Normalize(detector.Profile(detector.Shapes[m.shape], a))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := max(10, m.width-labelWidth)
	magnitudes := make([]float64, len(m.frame.ProjectionSpectrum))
	for i, c := range m.frame.ProjectionSpectrum {
		magnitudes[i] = cmplx.Abs(c)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Fourier slice reconstruction"))
	b.WriteString("\n\n")

	row := func(label, content string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(content)
		b.WriteString("\n")
	}

	row(fmt.Sprintf("Angle %3d°", m.angle), m.slider.ViewAs(float64(m.angle)/reconstruction.MaxAngle))
	row("Projection", sparkStyle.Render(sparkline(m.frame.Projection, barWidth)))
	row("|Spectrum|", sparkStyle.Render(sparkline(magnitudes, barWidth)))
	row("Sinogram", coverage(m.angle+1, reconstruction.NumAngles, barWidth))
	row("Detector "+detector.Shapes[m.shape].Name(), sparkStyle.Render(sparkline(m.profile, barWidth)))

	b.WriteString("\n")
	b.WriteString(metricStyle.Render(fmt.Sprintf("spokes %d  NCC %.3f  RMSE %.4f  SSIM %.3f",
		m.angle+1, m.metrics.NCC, m.metrics.RMSE, m.metrics.SSIM)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(helpText()))
	return b.String()
}

func clampAngle(angle int) int {
	if angle < 0 {
		return 0
	}
	if angle > reconstruction.MaxAngle {
		return reconstruction.MaxAngle
	}
	return angle
}
