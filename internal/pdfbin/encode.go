package pdfbin

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/atsresumie/latex-studio/internal/types"
)

// PageImage is one captured page as baseline JPEG bytes
type PageImage struct {
	JPEG   []byte
	Width  int
	Height int
}

// Page sizes in points
var pagePoints = map[types.PageSize][2]float64{
	types.PageLetter: {612, 792},
	types.PageA4:     {595.28, 841.89},
}

var jpegMagic = []byte{0xFF, 0xD8}

// PagePoints returns the MediaBox width and height for size, defaulting to letter
func PagePoints(size types.PageSize) (float64, float64) {
	pts, ok := pagePoints[size]
	if !ok {
		pts = pagePoints[types.PageLetter]
	}
	return pts[0], pts[1]
}

// CreatePDFBinary builds a PDF with one full-page image per page. Object ids
// are fixed: catalog 1, pages 2, and for page i the page, content and image
// objects at 3+3i, 4+3i and 5+3i. JPEG bytes are embedded without re-encoding.
func CreatePDFBinary(images []PageImage, size types.PageSize) ([]byte, error) {
	if len(images) == 0 {
		return nil, ErrNoPages
	}
	for i, img := range images {
		if err := checkImage(img); err != nil {
			err.Page = i + 1
			return nil, err
		}
	}

	width, height := PagePoints(size)
	w := NewWriter()

	kids := make([]string, len(images))
	for i := range images {
		kids[i] = fmt.Sprintf("%d 0 R", 3+3*i)
	}

	if err := w.Object(1, "<< /Type /Catalog /Pages 2 0 R >>"); err != nil {
		return nil, err
	}
	pages := fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(images))
	if err := w.Object(2, pages); err != nil {
		return nil, err
	}

	for i, img := range images {
		pageID, contentID, imageID := 3+3*i, 4+3*i, 5+3*i

		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /XObject << /Im0 %d 0 R >> >> /Contents %d 0 R >>",
			num(width), num(height), imageID, contentID)
		if err := w.Object(pageID, page); err != nil {
			return nil, err
		}

		content := fmt.Sprintf("q\n%s 0 0 %s 0 0 cm\n/Im0 Do\nQ", num(width), num(height))
		if err := w.Stream(contentID, "", []byte(content)); err != nil {
			return nil, err
		}

		dict := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode",
			img.Width, img.Height)
		if err := w.Stream(imageID, dict, img.JPEG); err != nil {
			return nil, err
		}
	}

	return w.Finish(1)
}

func checkImage(img PageImage) *ImageError {
	switch {
	case len(img.JPEG) < len(jpegMagic) || !bytes.HasPrefix(img.JPEG, jpegMagic):
		return &ImageError{Message: "not JPEG data"}
	case img.Width <= 0 || img.Height <= 0:
		return &ImageError{Message: fmt.Sprintf("bad dimensions %dx%d", img.Width, img.Height)}
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
