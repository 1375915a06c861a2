package sink

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

type rasterEncoder struct {
	dpi     [2]int
	quality int
}

// RenderRaster draws res and encodes it with the DPI and JPEG quality of
// res.Config. PNG and JPEG carry the DPI as metadata; BMP and TIFF are
// written without it.
func RenderRaster(res *table.Result, f Format) ([]byte, error) {
	e := rasterEncoder{dpi: res.Config.DPI, quality: res.Config.JPEGQuality}
	return e.encode(Execute(res), f)
}

func (e rasterEncoder) encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
		return withPNGDensity(buf.Bytes(), e.dpi)
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
		}
		return withJFIFDensity(buf.Bytes(), e.dpi)
	case FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode bmp")
		}
		return buf.Bytes(), nil
	case FormatTIFF:
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tiff")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "%q is not a raster format", f)
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngIHDREnd is the offset just past the IHDR chunk, which the encoder
// always writes first: signature, then length, type, 13 data bytes and CRC.
const pngIHDREnd = 8 + 4 + 4 + 13 + 4

// dotsPerMeter converts DPI to pixels per meter, rounding to nearest.
func dotsPerMeter(dpi int) uint32 {
	return uint32(float64(dpi)/0.0254 + 0.5)
}

// withPNGDensity inserts a pHYs chunk after IHDR.
func withPNGDensity(data []byte, dpi [2]int) ([]byte, error) {
	if len(data) < pngIHDREnd || !bytes.Equal(data[:8], pngSignature) || string(data[12:16]) != "IHDR" {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected png layout")
	}

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], dotsPerMeter(dpi[0]))
	binary.BigEndian.PutUint32(chunk[12:], dotsPerMeter(dpi[1]))
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:pngIHDREnd]...)
	out = append(out, chunk...)
	return append(out, data[pngIHDREnd:]...), nil
}

// withJFIFDensity inserts a JFIF APP0 segment carrying the density right
// after SOI. The standard encoder writes no APP0 of its own.
func withJFIFDensity(data []byte, dpi [2]int) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected jpeg layout")
	}

	app0 := []byte{
		0xFF, 0xE0, // APP0
		0x00, 0x10, // length 16
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version 1.1
		0x01,       // units: dots per inch
		0, 0, 0, 0, // x, y density
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(app0[12:], uint16(min(dpi[0], 0xFFFF)))
	binary.BigEndian.PutUint16(app0[14:], uint16(min(dpi[1], 0xFFFF)))

	out := make([]byte, 0, len(data)+len(app0))
	out = append(out, data[:2]...)
	out = append(out, app0...)
	return append(out, data[2:]...), nil
}
