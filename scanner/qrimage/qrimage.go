// Package qrimage is a scanner.Capability decoding QR codes from image frames.
package qrimage

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

type Capability struct {
	frames <-chan image.Image
	reader gozxing.Reader
}

// New scans frames as they arrive until the channel is closed.
func New(frames <-chan image.Image) *Capability {
	return &Capability{
		frames: frames,
		reader: qrcode.NewQRCodeReader(),
	}
}

// FromImages scans the given images once, back to back.
func FromImages(images ...image.Image) *Capability {
	frames := make(chan image.Image, len(images))
	for _, img := range images {
		frames <- img
	}
	close(frames)
	return New(frames)
}

func (c *Capability) StartScanning(ctx context.Context, onResult func(string), onError func(error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case img, ok := <-c.frames:
			if !ok {
				return nil
			}
			payload, err := c.decode(img)
			if err != nil {
				onError(err)
			} else {
				onResult(payload)
			}
		}
	}
}

// decode returns an empty payload when the frame holds no readable code.
func (c *Capability) decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	result, err := c.reader.Decode(bmp, nil)
	if err != nil {
		switch err.(type) {
		case gozxing.NotFoundException, gozxing.ChecksumException, gozxing.FormatException:
			return "", nil
		}
		return "", err
	}
	return result.GetText(), nil
}
