package format

import (
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{GIF, "GIF"},
		{BMP, "BMP"},
		{TIFF, "TIFF"},
		{WEBP, "WEBP"},
		{PDF, "PDF"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{TIFF, ".tif"},
		{WEBP, ".webp"},
		{PDF, ".pdf"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsRaster(t *testing.T) {
	if !PNG.IsRaster() || !TIFF.IsRaster() {
		t.Error("image formats should be raster")
	}
	if PDF.IsRaster() || Unknown.IsRaster() {
		t.Error("PDF and Unknown should not be raster")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"scan.png", PNG},
		{"scan.PNG", PNG},
		{"photo.jpg", JPEG},
		{"photo.jpeg", JPEG},
		{"fax.tif", TIFF},
		{"fax.TIFF", TIFF},
		{"page.bmp", BMP},
		{"page.gif", GIF},
		{"page.webp", WEBP},
		{"/path/to/scans.pdf", PDF},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PNG", []byte("\x89PNG\r\n\x1a\n\x00\x00"), PNG},
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"GIF87a", []byte("GIF87a..."), GIF},
		{"GIF89a", []byte("GIF89a..."), GIF},
		{"BMP", []byte("BM\x00\x00"), BMP},
		{"TIFF little endian", []byte("II*\x00\x08"), TIFF},
		{"TIFF big endian", []byte("MM\x00*\x00"), TIFF},
		{"WEBP", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), WEBP},
		{"RIFF not WEBP", []byte("RIFF\x10\x00\x00\x00WAVEfmt "), Unknown},
		{"PDF", []byte("%PDF-1.7\n"), PDF},
		{"text", []byte("hello world"), Unknown},
		{"empty", nil, Unknown},
		{"short", []byte{0xFF}, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	got, err := DetectFromReader(bytes.NewReader([]byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", got)
	}

	got, err = DetectFromReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("DetectFromReader(empty) error = %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader(empty) = %v, want Unknown", got)
	}
}
