// Package qr locates and decodes QR codes in still images and frame
// streams. Decoding is single-pass: one attempt per crop confirmation or
// per frame, no multi-scale search.
package qr

import (
	"errors"
	"image"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoQRCode is returned when a decode pass locates no QR code. Local and
// recoverable; never forwarded to the backend.
var ErrNoQRCode = errors.New("no QR code found")

// Decode runs one decode pass over the whole image.
func Decode(img image.Image) (string, error) {
	return decode(img)
}

// DecodeRegion renders the chosen crop region to an off-screen bitmap at
// the region's pixel dimensions and runs one decode pass over it. The
// region is clamped to the image bounds; a region that leaves no pixels
// counts as no code found.
func DecodeRegion(img image.Image, region image.Rectangle) (string, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return "", ErrNoQRCode
	}

	bmp := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(bmp, bmp.Bounds(), img, region.Min, draw.Src)
	return decode(bmp)
}

func decode(img image.Image) (string, error) {
	source := gozxing.NewLuminanceSourceFromImage(img)
	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return "", ErrNoQRCode
	}

	result, err := qrcode.NewQRCodeReader().Decode(bitmap, nil)
	if err != nil {
		return "", ErrNoQRCode
	}
	return result.GetText(), nil
}
