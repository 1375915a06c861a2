// Package fonts loads the font faces used to measure and draw table text.
//
// Loading never fails. The chain is:
//
//  1. the TTF/OTF/TTC file named by [Request.Path], if any
//  2. an embedded family: Go Regular ("go", default) or Latin Modern Sans
//     ("latin-modern")
//  3. the built-in bitmap face basicfont.Face7x13
//
// Parsed embedded fonts are cached after first use; faces are created per
// request because they are sized.
package fonts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/csvtable/pkg/render/table/text"
)

// Family names accepted by Request.Family.
const (
	FamilyGo          = "go"
	FamilyLatinModern = "latin-modern"
	FamilyBasic       = "basic"
)

// Families lists the embedded family names.
var Families = []string{FamilyGo, FamilyLatinModern, FamilyBasic}

// Request describes the face to load.
type Request struct {
	Size   int    // pixel size (points at 72 DPI)
	Path   string // optional font file
	Family string // embedded fallback family
}

// Font is a loaded, sized face. It implements text.Measurer.
type Font struct {
	Face font.Face
	Name string
	Size int

	// Digest is the SHA-256 of the font file's bytes; empty for embedded
	// and built-in faces.
	Digest string

	// Fallback is non-empty when a step of the chain was skipped; it holds
	// the reason for logging.
	Fallback string
}

// Width implements text.Measurer.
func (f *Font) Width(s string) int { return text.FaceWidth(f.Face, s) }

// Ascent returns the distance from the top of a line to its baseline.
func (f *Font) Ascent() int { return f.Face.Metrics().Ascent.Ceil() }

var (
	embeddedMu sync.Mutex
	embedded   = map[string]*opentype.Font{}
)

var embeddedTTF = map[string][]byte{
	FamilyGo:          goregular.TTF,
	FamilyLatinModern: lmsans10regular.TTF,
}

// Load returns a face for req, walking the fallback chain.
func Load(req Request) *Font {
	var reasons []string

	if req.Size <= 0 {
		return basic(fmt.Sprintf("invalid size %d", req.Size))
	}

	if req.Path != "" {
		f, err := fromFile(req.Path, req.Size)
		if err == nil {
			return f
		}
		reasons = append(reasons, err.Error())
	}

	family := req.Family
	if family == "" {
		family = FamilyGo
	}
	if family != FamilyBasic {
		f, err := fromEmbedded(family, req.Size)
		if err == nil {
			f.Fallback = strings.Join(reasons, "; ")
			return f
		}
		reasons = append(reasons, err.Error())
	}

	return basic(strings.Join(reasons, "; "))
}

// Pair loads the header and cell faces that share one request except size.
func Pair(req Request, headerSize, cellSize int) (header, cell *Font) {
	h, c := req, req
	h.Size, c.Size = headerSize, cellSize
	return Load(h), Load(c)
}

func basic(reason string) *Font {
	return &Font{Face: basicfont.Face7x13, Name: FamilyBasic, Size: 13, Fallback: reason}
}

func fromFile(path string, size int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := newFace(parsed, size)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return &Font{Face: face, Name: path, Size: size, Digest: hex.EncodeToString(sum[:])}, nil
}

func fromEmbedded(family string, size int) (*Font, error) {
	embeddedMu.Lock()
	parsed, ok := embedded[family]
	if !ok {
		data, known := embeddedTTF[family]
		if !known {
			embeddedMu.Unlock()
			return nil, fmt.Errorf("unknown font family %q", family)
		}
		var err error
		if parsed, err = opentype.Parse(data); err != nil {
			embeddedMu.Unlock()
			return nil, fmt.Errorf("parse embedded %s: %w", family, err)
		}
		embedded[family] = parsed
	}
	embeddedMu.Unlock()

	face, err := newFace(parsed, size)
	if err != nil {
		return nil, err
	}
	return &Font{Face: face, Name: family, Size: size}, nil
}

// parse accepts single fonts and collections (.ttc); the first font of a
// collection is used.
func parse(data []byte) (*opentype.Font, error) {
	if f, err := opentype.Parse(data); err == nil {
		return f, nil
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if coll.NumFonts() == 0 {
		return nil, fmt.Errorf("empty font collection")
	}
	return coll.Font(0)
}

func newFace(f *opentype.Font, size int) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}
