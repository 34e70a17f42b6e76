package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/careerkey/portal/internal/qr"
)

const scanUnavailableMsg = "Error contacting verification server. Please try again."

// Scan runs the QR verification flow. Two intake modes are offered: decode
// a QR code out of a saved image (with an optional crop area), or watch a
// capture directory for frames the way a camera session would deliver
// them. Open to everyone, no login required.
func (a *App) Scan(ctx context.Context) error {
	mode, err := getSimpleText(a.reader, "Scan from (i)mage file or (c)apture directory?", a.out)
	if err != nil {
		return err
	}

	switch mode {
	case "i", "image":
		return a.scanImage(ctx)
	case "c", "capture":
		return a.scanCapture(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown scan mode:", mode)
		return nil
	}
}

// scanImage decodes a QR code from a saved image. The user may restrict
// detection to a crop area; a decode failure leaves them in the flow to
// try a different area.
func (a *App) scanImage(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to the image file", a.out)
	if err != nil {
		return err
	}

	img, err := loadImage(path)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to open the image:", err.Error())
		return err
	}

	region, err := a.getCropRegion(img.Bounds())
	if err != nil {
		return err
	}

	payload, err := qr.DecodeRegion(img, region)
	if err != nil {
		if errors.Is(err, qr.ErrNoQRCode) {
			fmt.Fprintln(a.out, "No QR code found in the selected area. Please try again.")
			return nil
		}
		return err
	}

	return a.verifyScanned(ctx, payload)
}

// getCropRegion prompts for a crop area as "x y width height". An empty
// answer selects the whole image.
func (a *App) getCropRegion(bounds image.Rectangle) (image.Rectangle, error) {
	answer, err := getSimpleText(a.reader, "Crop area as 'x y width height' (empty for the whole image)", a.out)
	if err != nil {
		return image.Rectangle{}, err
	}
	if answer == "" {
		return bounds, nil
	}

	var x, y, w, h int
	if _, err := fmt.Sscanf(answer, "%d %d %d %d", &x, &y, &w, &h); err != nil {
		fmt.Fprintln(a.out, "Invalid crop area, using the whole image.")
		return bounds, nil
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// scanCapture watches a capture directory for frames and verifies the
// first QR payload decoded out of them.
func (a *App) scanCapture(ctx context.Context) error {
	dir, err := getSimpleText(a.reader, "Capture directory to watch", a.out)
	if err != nil {
		return err
	}

	src, err := qr.NewDirectorySource(dir)
	if err != nil {
		// Acquisition failure falls back to the image flow instead of
		// retrying the capture session.
		fmt.Fprintln(a.out, "Unable to access the capture directory. Falling back to image mode.")
		return a.scanImage(ctx)
	}

	scanner := qr.NewScanner(src, qr.Options{FrameRate: a.config.ScanFrameRate}, a.log)
	scanner.Start(ctx)
	defer scanner.Stop()

	fmt.Fprintln(a.out, "Scanning... press Ctrl+C to cancel.")

	payload, ok := <-scanner.Payloads()
	if !ok {
		if err := scanner.Err(); err != nil {
			fmt.Fprintln(a.out, "Capture session failed:", err.Error())
			return err
		}
		fmt.Fprintln(a.out, "Scan cancelled.")
		return nil
	}

	return a.verifyScanned(ctx, payload)
}

func (a *App) verifyScanned(ctx context.Context, payload string) error {
	outcome, err := a.verifier.Verify(ctx, payload)
	if err != nil {
		a.reportVerifyError(err, scanUnavailableMsg)
		return err
	}

	a.renderOutcome(outcome)
	a.reconcileOutcome(ctx, outcome)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
