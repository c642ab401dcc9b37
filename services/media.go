package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	RecipeImagesDir = "recipes/images"
	maxImageWidth   = 1200
	jpegQuality     = 85
)

// Потолок по пикселям проверяется до декодирования: память под картинку выделяется по заголовку
const maxImagePixels = 40_000_000

var ErrInvalidImage = errors.New("invalid image")

// MediaStore хранит загруженные картинки в Root и отдает их по URL
type MediaStore struct {
	Root string
	URL  string
}

func NewMediaStore(root, url string) MediaStore {
	return MediaStore{Root: root, URL: url}
}

// URLFor - публичная ссылка на файл по пути относительно Root
func (m MediaStore) URLFor(rel string) string {
	if rel == "" {
		return ""
	}
	return m.URL + rel
}

// SaveRecipeImage декодирует data:image/...;base64, уменьшает до maxImageWidth по ширине
// и возвращает путь относительно Root.
func (m MediaStore) SaveRecipeImage(dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", fmt.Errorf("%w: expected data:image URI", ErrInvalidImage)
	}
	idx := strings.Index(dataURI, ";base64,")
	if idx < 0 {
		return "", fmt.Errorf("%w: expected base64 payload", ErrInvalidImage)
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+len(";base64,"):])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return "", fmt.Errorf("%w: image is %dx%d, limit is %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, maxImagePixels)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = downscale(img, maxImageWidth)

	var buf bytes.Buffer
	ext := ".png"
	if format == "jpeg" {
		ext = ".jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	dir := filepath.Join(m.Root, filepath.FromSlash(RecipeImagesDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(RecipeImagesDir, name), nil
}

func downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img
	}
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
