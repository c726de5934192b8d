package format

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat is returned for inputs that are neither a
	// supported image nor a PDF
	ErrUnsupportedFormat = errors.New("format: unsupported input format")

	// ErrNoImages is returned for a PDF without any decodable page image
	ErrNoImages = errors.New("format: no decodable images in PDF")
)

// Page is one decoded page image. Number starts at 1.
type Page struct {
	Number int
	Image  image.Image
}

// Decode reads a single raster image, applying the EXIF orientation of
// JPEG photos so the page is upright.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("format: decode image: %w", err)
	}
	return img, nil
}

// DecodeFile reads the page images of a file. The format is taken from the
// file content, falling back to the extension. Raster images yield a
// single page.
func DecodeFile(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := DetectFromReader(f)
	if err != nil {
		return nil, err
	}
	if kind == Unknown {
		kind = Detect(path)
	}
	return DecodeReader(f, kind)
}

// DecodeReader reads the page images of rs, which holds data in the given
// format.
func DecodeReader(rs io.ReadSeeker, kind Format) ([]Page, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	switch {
	case kind == PDF:
		return DecodePDF(rs)
	case kind.IsRaster():
		img, err := Decode(rs)
		if err != nil {
			return nil, err
		}
		return []Page{{Number: 1, Image: img}}, nil
	}
	return nil, ErrUnsupportedFormat
}

// DecodePDF extracts the embedded images of a scanned PDF. Each image is
// returned with the number of the page it appears on, in page order.
// Images in encodings Go cannot decode (JPEG 2000, JBIG2) are skipped.
func DecodePDF(rs io.ReadSeeker) ([]Page, error) {
	var pages []Page
	var skipped []error

	digest := func(img pdfmodel.Image, _ bool, _ int) error {
		data, err := io.ReadAll(img)
		if err != nil {
			return err
		}
		decoded, err := Decode(bytes.NewReader(data))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("page %d image %s (%s): %w", img.PageNr, img.Name, img.FileType, err))
			return nil
		}
		pages = append(pages, Page{Number: img.PageNr, Image: decoded})
		return nil
	}

	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.ExtractImages(rs, nil, digest, conf); err != nil {
		return nil, fmt.Errorf("format: read PDF: %w", err)
	}
	if len(pages) == 0 {
		return nil, errors.Join(append([]error{ErrNoImages}, skipped...)...)
	}
	return pages, nil
}
