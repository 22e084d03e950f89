package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/pkg/arabic"
)

// testAssets writes stand-in fonts and a signature into a temp asset dir.
func testAssets(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		RegularFont:   filepath.Join(dir, "Amiri-Regular.ttf"),
		BoldFont:      filepath.Join(dir, "Amiri-Bold.ttf"),
		SignatureFile: filepath.Join(dir, "doctor_signature.png"),
		ClinicName:    "عيادة بارود",
		PhotoPath:     func(ref string) string { return filepath.Join(dir, ref) },
	}
	require.NoError(t, os.WriteFile(opts.RegularFont, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(opts.BoldFont, gobold.TTF, 0o644))
	writePNG(t, opts.SignatureFile, 200, 80)
	return opts, dir
}

// writePNG writes an opaque PNG so no soft mask is embedded.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
		img.Set(x, h/2, color.Black)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testPatient() *models.Patient {
	return &models.Patient{
		ID: 12,
		PatientFields: models.PatientFields{
			FullName:    "سليم العربي",
			Age:         "45",
			Sex:         "ذكر",
			Address:     "تلمسان",
			Information: "متزوج وأب لثلاثة أطفال",
			Diagnosis:   "اضطراب القلق العام (GAD)",
			Reporting:   "Follow-up in 2 weeks",
		},
	}
}

func newTestRenderer(opts Options, log zerolog.Logger) *Renderer {
	r := NewRenderer(opts, log)
	r.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return r
}

func countPages(pdf []byte) int {
	return strings.Count(string(pdf), "/Type /Page\n")
}

func countImages(pdf []byte) int {
	return strings.Count(string(pdf), "/Subtype /Image")
}

func TestRenderProducesPDF(t *testing.T) {
	opts, _ := testAssets(t)
	r := newTestRenderer(opts, zerolog.Nop())

	out, err := r.Render(testPatient())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 1, countPages(out))
	assert.Equal(t, 1, countImages(out), "signature only")
}

func TestRenderEmbedsPhoto(t *testing.T) {
	opts, dir := testAssets(t)
	writePNG(t, filepath.Join(dir, "photo.png"), 125, 100)
	r := newTestRenderer(opts, zerolog.Nop())

	p := testPatient()
	p.Photo = "photo.png"
	out, err := r.Render(p)
	require.NoError(t, err)
	assert.Equal(t, 2, countImages(out))
}

func TestRenderSkipsMissingDecorations(t *testing.T) {
	opts, dir := testAssets(t)
	require.NoError(t, os.Remove(opts.SignatureFile))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("garbage"), 0o644))

	var logs bytes.Buffer
	r := newTestRenderer(opts, zerolog.New(&logs))

	p := testPatient()
	p.Photo = "broken.jpg"
	out, err := r.Render(p)
	require.NoError(t, err)
	assert.Equal(t, 0, countImages(out))
	assert.Contains(t, logs.String(), "image skipped")
	assert.Contains(t, logs.String(), "broken.jpg")
	assert.Contains(t, logs.String(), "doctor_signature.png")
}

func TestRenderWithoutSignatureConfigured(t *testing.T) {
	opts, _ := testAssets(t)
	opts.SignatureFile = ""
	r := newTestRenderer(opts, zerolog.Nop())

	out, err := r.Render(testPatient())
	require.NoError(t, err)
	assert.Equal(t, 0, countImages(out))
}

func TestRenderLongNarrativeBreaksPages(t *testing.T) {
	opts, _ := testAssets(t)
	r := newTestRenderer(opts, zerolog.Nop())

	p := testPatient()
	p.HistoryIllness = strings.Repeat("The patient reports recurring insomnia. ", 400)
	out, err := r.Render(p)
	require.NoError(t, err)
	assert.Greater(t, countPages(out), 2)
}

func TestRenderMissingFont(t *testing.T) {
	for _, which := range []string{"regular", "bold"} {
		t.Run(which, func(t *testing.T) {
			opts, _ := testAssets(t)
			if which == "regular" {
				opts.RegularFont += ".missing"
			} else {
				opts.BoldFont += ".missing"
			}
			r := newTestRenderer(opts, zerolog.Nop())

			outDir := t.TempDir()
			_, err := r.RenderToFile(testPatient(), outDir)
			assert.ErrorIs(t, err, ErrFontMissing)

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no partial report")
		})
	}
}

func TestRenderToFile(t *testing.T) {
	opts, _ := testAssets(t)
	r := newTestRenderer(opts, zerolog.Nop())
	outDir := filepath.Join(t.TempDir(), "reports")

	path, err := r.RenderToFile(testPatient(), outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "سليم العربي_report.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	// Same name overwrites.
	again, err := r.RenderToFile(testPatient(), outDir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "a_b_report.pdf", FileName(&models.Patient{PatientFields: models.PatientFields{FullName: "a/b"}}))
	assert.Equal(t, `c_d_report.pdf`, FileName(&models.Patient{PatientFields: models.PatientFields{FullName: `c\d`}}))
	assert.Equal(t, "_report.pdf", FileName(&models.Patient{}))
}

func TestRenderCharactersOutsideBMP(t *testing.T) {
	opts, _ := testAssets(t)
	opts.ClinicName = "عيادة 🌿"
	r := newTestRenderer(opts, zerolog.Nop())

	p := testPatient()
	p.FullName = "سليم 🙂"
	p.Information = "المريض مبتسم 😀"
	assert.NotPanics(t, func() {
		out, err := r.Render(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})
}

func TestRenderCorruptFont(t *testing.T) {
	for _, which := range []string{"regular", "bold"} {
		t.Run(which, func(t *testing.T) {
			opts, _ := testAssets(t)
			path := opts.RegularFont
			if which == "bold" {
				path = opts.BoldFont
			}
			require.NoError(t, os.WriteFile(path, []byte("not a font at all"), 0o644))
			r := newTestRenderer(opts, zerolog.Nop())

			outDir := t.TempDir()
			_, err := r.RenderToFile(testPatient(), outDir)
			assert.ErrorIs(t, err, ErrFontMissing)
			assert.Contains(t, err.Error(), path)

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no report for a broken font")
		})
	}
}

func reversed(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func TestLayoutLinesKeepsParagraphDirection(t *testing.T) {
	// Break before the Latin token so the second line starts with it.
	split := func(s string) []string {
		i := strings.Index(s, "DSM")
		return []string{strings.TrimSpace(s[:i]), s[i:]}
	}

	lines := layoutLines("متابعة يومية DSM-5 مع الطبيب", split)
	require.Len(t, lines, 2)

	rev := func(word string) string { return reversed(arabic.Reshape(word)) }
	assert.Equal(t, rev("يومية")+" "+rev("متابعة"), lines[0])
	assert.Equal(t, rev("الطبيب")+" "+rev("مع")+" DSM-5", lines[1])
}

func TestLayoutLinesReplacesCharactersOutsideBMP(t *testing.T) {
	whole := func(s string) []string { return []string{s} }

	lines := layoutLines("ok 😀", whole)
	require.Len(t, lines, 1)
	assert.Equal(t, "ok �", lines[0])

	assert.Empty(t, layoutLines("", func(string) []string { return nil }))
}
