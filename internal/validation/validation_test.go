package validation

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleConfig_Valid(t *testing.T) {
	assert.NoError(t, StyleConfig(types.DefaultStyleConfig()))

	// Wider than the decoder clamps but inside the API ranges
	cfg := types.DefaultStyleConfig()
	cfg.MarginTopMm = 50
	cfg.BaseFontSizePt = 14
	cfg.LineHeight = 2
	assert.NoError(t, StyleConfig(cfg))
}

func TestStyleConfig_Violations(t *testing.T) {
	cfg := types.DefaultStyleConfig()
	cfg.MarginLeftMm = 51
	cfg.BaseFontSizePt = 7
	cfg.FontFamily = "comic"

	err := StyleConfig(cfg)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 3)
	assert.Equal(t, FieldViolation{Field: "marginLeftMm", Message: "must be at most 50"}, vErr.Violations[0])
	assert.Equal(t, FieldViolation{Field: "baseFontSizePt", Message: "must be at least 8"}, vErr.Violations[1])
	assert.Equal(t, "fontFamily", vErr.Violations[2].Field)
	assert.Contains(t, err.Error(), "marginLeftMm must be at most 50")
}

func TestLatex(t *testing.T) {
	assert.NoError(t, Latex("\\documentclass{article}\n\\begin{document}\nx\n\\end{document}\n"))

	err := Latex("\\begin{document}\\end{document}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing \documentclass`)
}

func samplePDF(t *testing.T, pages int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	images := make([]pdfbin.PageImage, pages)
	for i := range images {
		images[i] = pdfbin.PageImage{JPEG: buf.Bytes(), Width: 4, Height: 4}
	}
	out, err := pdfbin.CreatePDFBinary(images, types.PageLetter)
	require.NoError(t, err)
	return out
}

func TestCountPDFPages(t *testing.T) {
	n, err := CountPDFPages(samplePDF(t, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = CountPDFPages(nil)
	assert.Error(t, err)

	_, err = CountPDFPages([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestCheckPageLimit(t *testing.T) {
	data := samplePDF(t, 2)

	pages, err := CheckPageLimit(data, 1)
	var limitErr *PageLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 2, pages)
	assert.Equal(t, 1, limitErr.Limit)

	pages, err = CheckPageLimit(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}
