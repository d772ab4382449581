package titlecard

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontCandidates lists TTF files commonly present on the current
// platform, tried in order when no usable font path is configured.
func fontCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/System/Library/Fonts/Monaco.ttf",
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	case "windows":
		return []string{
			`C:\Windows\Fonts\arial.ttf`,
			`C:\Windows\Fonts\verdana.ttf`,
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		}
	}
}

// resolveFace produces a font face at the requested size. Resolution
// order: the configured path, then platform-typical candidates, then the
// embedded Go Regular font. Failures along the chain are warnings, never
// errors; the fixed-size basicfont face is the last resort when face
// construction itself fails (the size flag cannot be honored there).
func resolveFace(path string, size float64, logger *slog.Logger) font.Face {
	if path != "" {
		face, err := loadFace(path, size)
		if err == nil {
			return face
		}
		logger.Warn("configured font unavailable, falling back", slog.String("font", path), slog.Any("error", err))
	}

	for _, candidate := range fontCandidates() {
		face, err := loadFace(candidate, size)
		if err != nil {
			logger.Debug("font candidate skipped", slog.String("font", candidate), slog.Any("error", err))
			continue
		}
		logger.Debug("using system font", slog.String("font", candidate))
		return face
	}

	face, err := newFace(goregular.TTF, size)
	if err == nil {
		logger.Warn("no system font found, using embedded Go Regular")
		return face
	}

	logger.Warn("font face construction failed, using fixed-size fallback", slog.Any("error", err))
	return basicfont.Face7x13
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newFace(data, size)
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build face: %w", err)
	}
	return face, nil
}
