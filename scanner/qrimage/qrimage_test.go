package qrimage

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

func encode(t *testing.T, text string) image.Image {
	t.Helper()
	img, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 200, 200, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return img
}

func blank() image.Image {
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func TestDecodesFrames(t *testing.T) {
	var got []string
	var errs []error
	c := FromImages(encode(t, "evt-42"), blank(), encode(t, "evt-7"))

	err := c.StartScanning(context.Background(),
		func(p string) { got = append(got, p) },
		func(err error) { errs = append(errs, err) },
	)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if len(got) != 3 || got[0] != "evt-42" || got[1] != "" || got[2] != "evt-7" {
		t.Fatalf("unexpected payloads %q", got)
	}
}

func TestStopsOnCancel(t *testing.T) {
	frames := make(chan image.Image)
	c := New(frames)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- c.StartScanning(ctx, func(string) {}, func(error) {})
	}()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop")
	}
}
