package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"sigandsys.dev/internal/media"
	"sigandsys.dev/internal/models"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <ads-dir>")
		fmt.Println("       generate <ads-dir> <slot>  (generate a single slot: banner, side, overlay)")
		os.Exit(1)
	}

	fsys := osfs.New(os.Args[1])

	slots := models.Slots
	if len(os.Args) > 2 {
		slots = []models.Slot{models.Slot(os.Args[2])}
	}

	failed := false
	for _, slot := range slots {
		spec, err := media.SpecFor(slot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("Scanning %s for %s ads...\n", spec.Folder, slot)

		entries, err := media.BuildManifest(fsys, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			failed = true
			continue
		}

		if err := media.WriteManifest(fsys, spec, entries); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR writing manifest: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("  Created %s (%d images)\n", spec.ManifestPath(), len(entries))
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("Done!")
}
