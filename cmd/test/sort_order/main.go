// Test program for natural sort ordering of a comic library.
//
// Usage:
//
//	go run ./cmd/test/sort_order/main.go <library-dir>
//
// This program shows the order a merge would process the library in:
// - chapter directories in natural order
// - each chapter's pages in natural order
// - a note wherever natural order differs from plain lexicographic order
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/jsthoang/ComicMerge/internal/naturalsort"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: go run ./cmd/test/sort_order/main.go <library-dir>")
		os.Exit(1)
	}
	library := os.Args[1]

	chapters, err := listNames(library, true)
	if err != nil {
		log.Fatalf("Failed to read library: %v", err)
	}
	fmt.Printf("Library: %s (%d chapters)\n\n", library, len(chapters))

	index := 1
	for i, chapter := range chapters {
		fmt.Printf("%d. %s  (title card -> %05d)\n", i+1, chapter, index)
		index++

		pages, err := listNames(filepath.Join(library, chapter), false)
		if err != nil {
			log.Fatalf("Failed to read chapter %s: %v", chapter, err)
		}
		for _, page := range pages {
			fmt.Printf("     %05d_%s\n", index, page)
			index++
		}
		if !slices.IsSorted(pages) {
			fmt.Println("     note: natural order differs from lexicographic order here")
		}
	}

	fmt.Printf("\n✓ %d items total\n", index-1)
}

func listNames(dir string, dirsOnly bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() == dirsOnly {
			names = append(names, entry.Name())
		}
	}
	naturalsort.Strings(names)
	return names, nil
}
