// Test program for title card rendering.
//
// Usage:
//
//	go run ./cmd/test/titlecard_render/main.go <output-dir> [font-path]
//
// This program renders a set of representative captions so font
// resolution, word wrap, and centering can be inspected visually:
// - a short caption that fits on one line
// - a long caption that wraps to several lines
// - a single word too wide for the text area
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsthoang/ComicMerge/internal/titlecard"
)

var captions = map[string]string{
	"short.png":    "Chapter 1",
	"wrapped.png":  "The Exceptionally Long Name of the Twelfth Chapter in This Series",
	"one_word.png": "Supercalifragilisticexpialidocious",
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: go run ./cmd/test/titlecard_render/main.go <output-dir> [font-path]")
		os.Exit(1)
	}
	outDir := os.Args[1]
	fontPath := ""
	if len(os.Args) == 3 {
		fontPath = os.Args[2]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	renderer := titlecard.NewRenderer(titlecard.Options{
		FontPath: fontPath,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	for name, caption := range captions {
		path := filepath.Join(outDir, name)
		if err := renderer.RenderFile(caption, path); err != nil {
			log.Fatalf("Failed to render %q: %v", caption, err)
		}
		fmt.Printf("✓ %s  (%q)\n", path, caption)
	}

	fmt.Printf("\n✓ Rendered %d cards\n", len(captions))
}
