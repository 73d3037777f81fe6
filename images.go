package pubkit

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const jpegQuality = 80

// CoverImage describes a cover image after processing.
type CoverImage struct {
	Path    string // output file
	Width   int
	Height  int
	Resized bool
}

// resizeImage decodes an image from src and, when it is wider than maxWidth,
// scales it down keeping the aspect ratio. The result is re-encoded in the
// source format (JPEG or PNG); other formats are reported as unsupported.
func resizeImage(src io.Reader, maxWidth int) ([]byte, CoverImage, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return nil, CoverImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	info := CoverImage{Width: w, Height: h}

	if w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		info.Width, info.Height, info.Resized = maxWidth, newH, true
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, img)
	default:
		return nil, CoverImage{}, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, CoverImage{}, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), info, nil
}

// localCoverPath maps a cover image reference to its file in the output dir.
// Remote URLs and references outside the output dir yield "".
func localCoverPath(outDir, ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	clean := filepath.Clean(filepath.FromSlash(u.Path))
	if strings.Contains(clean, "..") {
		return ""
	}
	return filepath.Join(outDir, clean)
}

// processCovers downsizes the local cover images of articles in place in the
// output directory. Missing or undecodable images are logged and left alone.
func (b *Builder) processCovers(articles []Article) {
	seen := make(map[string]struct{})
	for _, a := range articles {
		if !a.HasCover() {
			continue
		}
		p := localCoverPath(b.Config.OutputDir, a.CoverImage)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		cover, err := b.processCover(p)
		if err != nil {
			b.logger.Warn("cover image skipped",
				zap.String("article", a.ID),
				zap.String("cover", a.CoverImage),
				zap.Error(err))
			continue
		}
		if cover.Resized {
			b.logger.Debug("cover image resized",
				zap.String("path", cover.Path),
				zap.Int("width", cover.Width),
				zap.Int("height", cover.Height))
		}
	}
}

func (b *Builder) processCover(path string) (CoverImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return CoverImage{}, err
	}
	data, info, err := resizeImage(f, b.Config.CoverWidth)
	f.Close()
	if err != nil {
		return CoverImage{}, err
	}
	info.Path = path
	if !info.Resized {
		return info, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return CoverImage{}, fmt.Errorf("write image: %w", err)
	}
	return info, nil
}
