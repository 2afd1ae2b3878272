package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcess_RejectsNonImage(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process([]byte("%PDF-1.4 definitely not an image"), ModeCreate)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if p.Current() != nil {
		t.Fatalf("rejected file must not produce an attachment")
	}
}

func TestProcess_RejectsOversizeOnCreate(t *testing.T) {
	p := NewProcessor()
	// keep an accepted attachment around, then feed an oversized file
	if _, err := p.Process(pngBytes(t, 4, 4), ModeCreate); err != nil {
		t.Fatalf("small png: %v", err)
	}
	prior := p.Current()

	big := jpegBytes(t, 8, 8)
	big = append(big, make([]byte, 6<<20)...) // 6MB JPEG
	_, err := p.Process(big, ModeCreate)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected size rejection, got %v", err)
	}
	if !strings.Contains(verr.Msg, "5MB") {
		t.Fatalf("message should name the bound: %q", verr.Msg)
	}
	if p.Current() != prior {
		t.Fatalf("size rejection must leave the prior attachment untouched")
	}
}

func TestProcess_CreateKeepsOriginalEncoding(t *testing.T) {
	p := NewProcessor()
	img, err := p.Process(pngBytes(t, 4, 4), ModeCreate)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.HasPrefix(img.DataURI, "data:image/png;base64,") {
		t.Fatalf("data uri prefix = %.40q", img.DataURI)
	}
	if !strings.HasPrefix(img.PreviewRef, "preview://") || len(img.PreviewRef) < 20 {
		t.Fatalf("preview ref = %q", img.PreviewRef)
	}
	if p.Current() != img {
		t.Fatalf("accepted attachment must be held for submission")
	}
}

func TestProcess_UpdateRecompressesToJPEG(t *testing.T) {
	p := NewProcessor()
	img, err := p.Process(pngBytes(t, 1200, 40), ModeUpdate)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.HasPrefix(img.DataURI, "data:image/jpeg;base64,") {
		t.Fatalf("update must re-encode as jpeg, got %.40q", img.DataURI)
	}
}

func TestProcess_PipelineFailureClearsAttachment(t *testing.T) {
	p := NewProcessor()
	if _, err := p.Process(pngBytes(t, 4, 4), ModeUpdate); err != nil {
		t.Fatalf("seed attachment: %v", err)
	}

	// sniffs as jpeg but cannot be decoded, so update-mode recompression fails
	corrupt := jpegBytes(t, 8, 8)[:40]
	_, err := p.Process(corrupt, ModeUpdate)
	if err == nil {
		t.Fatalf("expected pipeline failure")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("decode failure is not a validation error: %v", err)
	}
	if p.Current() != nil {
		t.Fatalf("failed encode must clear the held attachment")
	}
}

func TestProcess_UpdateAcceptsUpTo10MB(t *testing.T) {
	p := NewProcessor()
	big := jpegBytes(t, 8, 8)
	pad := append([]byte{}, big...)
	pad = append(pad, make([]byte, 6<<20)...)
	// 6MB is over the create bound but within the update bound; the decode
	// still fails on the padding, which must not read as a validation error.
	_, errCreate := p.Process(pad, ModeCreate)
	var verr *ValidationError
	if !errors.As(errCreate, &verr) {
		t.Fatalf("create must reject 6MB, got %v", errCreate)
	}
	_, errUpdate := p.Process(pad, ModeUpdate)
	if errors.As(errUpdate, &verr) {
		t.Fatalf("update must pass size validation at 6MB, got %v", errUpdate)
	}
}
