// Package report renders patient records as printable PDF documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/sfnt"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/pkg/arabic"
)

// ErrFontMissing is returned when a font file cannot be read.
var ErrFontMissing = errors.New("report font missing")

const (
	fontFamily = "Amiri"

	margin         = 72.0  // 1 inch
	photoWidth     = 108.0 // 1.5 inch
	signatureWidth = 54.0  // 0.75 inch

	headerSize  = 22.0
	labelSize   = 14.0
	bodySize    = 12.0
	lineSpacing = 1.5
)

// Options configures a Renderer.
type Options struct {
	RegularFont   string
	BoldFont      string
	SignatureFile string // optional
	ClinicName    string
	// PhotoPath resolves the photo reference stored on a record. When nil the
	// reference is used as a path as is.
	PhotoPath func(ref string) string
}

// Renderer produces the PDF report of a patient.
type Renderer struct {
	opts Options
	log  zerolog.Logger
	now  func() time.Time
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options, log zerolog.Logger) *Renderer {
	if opts.PhotoPath == nil {
		opts.PhotoPath = func(ref string) string { return ref }
	}
	return &Renderer{
		opts: opts,
		log:  log.With().Str("component", "report").Logger(),
		now:  time.Now,
	}
}

// FileName returns the report file name of a patient. Path separators in
// the name are replaced so the file always lands in the output directory.
func FileName(p *models.Patient) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(p.FullName)
	return name + "_report.pdf"
}

// RenderToFile renders the report of p and writes it into dir. Nothing is
// written when rendering fails. An existing report of the same name is
// replaced.
func (r *Renderer) RenderToFile(p *models.Patient, dir string) (string, error) {
	data, err := r.Render(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(p))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// Render builds the whole report in memory and returns the PDF bytes.
func (r *Renderer) Render(p *models.Patient) ([]byte, error) {
	regular, err := readFont(r.opts.RegularFont)
	if err != nil {
		return nil, err
	}
	bold, err := readFont(r.opts.BoldFont)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	pdf.SetTitle(basicPlane(p.FullName), true)
	pdf.AddPage()

	d := &document{pdf: pdf, log: r.log}
	d.header(r.opts.ClinicName)
	d.text("", bodySize, "تاريخ التقرير: "+r.now().Format("2006-01-02"), "R")
	d.space(bodySize)

	if p.Photo != "" {
		d.image(r.opts.PhotoPath(p.Photo), photoWidth, "L")
		d.space(bodySize)
	}

	for _, f := range models.Fields {
		if f.Narrative || f.Key == "photo" {
			continue
		}
		d.text("B", labelSize, f.Label+": "+f.Value(&p.PatientFields), "R")
	}
	for _, f := range models.Fields {
		if !f.Narrative {
			continue
		}
		d.space(bodySize / 2)
		d.text("B", labelSize, f.Label+" :", "R")
		d.text("", bodySize, f.Value(&p.PatientFields), "R")
	}

	d.space(bodySize)
	d.rule()
	d.text("BU", labelSize, "توقيع الطبيب", "R")
	if r.opts.SignatureFile != "" {
		d.image(r.opts.SignatureFile, signatureWidth, "R")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate report for patient %d: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}

// readFont loads a font file and checks that it parses as an SFNT font.
// fpdf only prints font parse failures, so a broken file must be caught here.
func readFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontMissing, path, err)
	}
	if _, err := sfnt.Parse(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontMissing, path, err)
	}
	return data, nil
}

// document places shaped text on an fpdf page.
type document struct {
	pdf *fpdf.Fpdf
	log zerolog.Logger
}

func (d *document) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return w - left - right
}

func (d *document) header(name string) {
	d.pdf.SetFont(fontFamily, "B", headerSize)
	d.pdf.SetTextColor(0x00, 0x66, 0x99)
	d.pdf.SetFillColor(0xE6, 0xF7, 0xF5)
	d.pdf.SetDrawColor(0x00, 0x66, 0x99)
	d.pdf.CellFormat(0, headerSize*2, arabic.Display(arabic.Reshape(basicPlane(name))), "1", 1, "C", true, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetDrawColor(0, 0, 0)
	d.space(headerSize / 2)
}

// text shapes s, wraps it in reading order and places each line in visual
// order.
func (d *document) text(style string, size float64, s, align string) {
	d.pdf.SetFont(fontFamily, style, size)
	height := size * lineSpacing
	width := d.contentWidth()

	lines := layoutLines(s, func(t string) []string { return d.pdf.SplitText(t, width) })
	if len(lines) == 0 {
		d.pdf.Ln(height)
		return
	}
	for _, line := range lines {
		d.pdf.CellFormat(width, height, line, "", 1, align, false, 0, "")
	}
}

// layoutLines shapes s, wraps it with split and returns the lines in visual
// order. The paragraph direction is taken from the whole of s so a wrapped
// line starting with a Latin word keeps the right-to-left layout.
func layoutLines(s string, split func(string) []string) []string {
	s = basicPlane(s)
	rtl := arabic.IsRTL(s)
	lines := split(arabic.Reshape(s))
	for i, line := range lines {
		lines[i] = arabic.DisplayDirection(line, rtl)
	}
	return lines
}

// basicPlane replaces characters outside the Basic Multilingual Plane with
// U+FFFD. fpdf width tables only cover the BMP.
func basicPlane(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

func (d *document) space(h float64) {
	d.pdf.Ln(h)
}

func (d *document) rule() {
	left, _, right, _ := d.pdf.GetMargins()
	w, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.Line(left, y, w-right, y)
	d.space(bodySize / 2)
}

// image places the picture at path with the given width, keeping its aspect
// ratio. Unreadable pictures are skipped with a warning.
func (d *document) image(path string, width float64, align string) {
	img, err := imaging.Open(path)
	if err != nil {
		d.log.Warn().Err(err).Str("path", path).Msg("image skipped")
		return
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		d.log.Warn().Err(err).Str("path", path).Msg("image skipped")
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(path, opts, &buf)
	if d.pdf.Err() {
		d.log.Warn().Err(d.pdf.Error()).Str("path", path).Msg("image skipped")
		d.pdf.ClearError()
		return
	}

	left, _, right, _ := d.pdf.GetMargins()
	x := left
	if align == "R" {
		w, _ := d.pdf.GetPageSize()
		x = w - right - width
	}
	d.pdf.ImageOptions(path, x, -1, width, 0, true, opts, 0, "")
}
