package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxAvatarBytes caps uploaded avatar size.
const MaxAvatarBytes = 5 << 20

// blurhashSize is the longest edge of the thumbnail the placeholder is
// computed from.
const blurhashSize = 64

// decodedAvatar is what UploadAvatar needs from an image.
type decodedAvatar struct {
	format      string
	contentType string
	blurhash    string
}

// decodeAvatar checks that data is a supported image and computes its
// blurhash placeholder.
func decodeAvatar(data []byte) (decodedAvatar, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return decodedAvatar{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	// 4x3 components gives a ~28 character hash.
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return decodedAvatar{}, fmt.Errorf("encode blurhash: %w", err)
	}

	return decodedAvatar{
		format:      format,
		contentType: "image/" + format,
		blurhash:    hash,
	}, nil
}

func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= blurhashSize && h <= blurhashSize {
		return img
	}

	dw, dh := blurhashSize, blurhashSize
	if w > h {
		dh = max(h*blurhashSize/w, 1)
	} else {
		dw = max(w*blurhashSize/h, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func avatarExt(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png", "gif", "webp":
		return "." + format
	default:
		return ""
	}
}
