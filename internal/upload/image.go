// Package upload implements the image acquisition pipeline for product
// forms: type and size validation, a local preview reference, and the inline
// base64 encoding that travels in the JSON request body.
package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxCreateSize bounds the image on product create.
	MaxCreateSize = 5 << 20
	// MaxUpdateSize is larger because update recompresses before encoding.
	MaxUpdateSize = 10 << 20

	// recompression parameters for update: longest side and JPEG quality
	maxEdge     = 800
	jpegQuality = 70
)

// ErrBusy is returned while a previous encode for the same form is still
// running; the form must not resubmit until it settles.
var ErrBusy = errors.New("image processing in progress")

// ValidationError rejects an image before any preview or encoding happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Mode selects the create or update constraints.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) maxSize() int {
	if m == ModeUpdate {
		return MaxUpdateSize
	}
	return MaxCreateSize
}

// Image is an accepted attachment: an ephemeral preview reference for
// immediate display and the durable data-URI payload for submission.
type Image struct {
	PreviewRef string
	DataURI    string
	MIME       string
}

// Processor holds the attachment state of one product form. At most one
// encode runs at a time; a failed encode clears the held attachment so a
// stale image is never submitted.
type Processor struct {
	mu      sync.Mutex
	busy    bool
	current *Image
}

func NewProcessor() *Processor {
	return &Processor{}
}

// Current returns the attachment held for submission, or nil.
func (p *Processor) Current() *Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Busy reports whether an encode is still running.
func (p *Processor) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Reset drops the held attachment, e.g. when the user removes the preview.
func (p *Processor) Reset() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
}

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// validate sniffs the real content type from the bytes rather than trusting
// a declared filename, and enforces the mode's size bound. Rejection leaves
// any previously held attachment untouched.
func validate(data []byte, mode Mode) (string, error) {
	mt := mimetype.Detect(data)
	ok := false
	for _, t := range allowedTypes {
		if mt.Is(t) {
			ok = true
			break
		}
	}
	if !ok {
		return "", &ValidationError{Msg: "please upload a valid image file (JPEG, PNG, or GIF)"}
	}
	if len(data) > mode.maxSize() {
		return "", &ValidationError{Msg: fmt.Sprintf("image size should be less than %dMB", mode.maxSize()>>20)}
	}
	return mt.String(), nil
}

// Process validates data and produces the attachment. ModeUpdate
// recompresses (downscale plus JPEG re-encode) before encoding. On a
// pipeline failure the previously held attachment is cleared.
func (p *Processor) Process(data []byte, mode Mode) (*Image, error) {
	mime, err := validate(data, mode)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.busy = true
	p.mu.Unlock()

	img, encErr := encode(data, mime, mode)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if encErr != nil {
		p.current = nil
		return nil, encErr
	}
	p.current = img
	return img, nil
}

func encode(data []byte, mime string, mode Mode) (*Image, error) {
	preview := "preview://" + uuid.NewString()

	if mode == ModeUpdate {
		recompressed, err := recompress(data)
		if err != nil {
			return nil, fmt.Errorf("error processing image: %w", err)
		}
		data = recompressed
		mime = "image/jpeg"
	}

	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return &Image{PreviewRef: preview, DataURI: uri, MIME: mime}, nil
}

// recompress downscales to maxEdge on the longest side and re-encodes as
// JPEG.
func recompress(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		if b.Dx() >= b.Dy() {
			src = imaging.Resize(src, maxEdge, 0, imaging.Lanczos)
		} else {
			src = imaging.Resize(src, 0, maxEdge, imaging.Lanczos)
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
