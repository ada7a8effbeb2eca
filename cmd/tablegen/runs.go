package main

import (
	"errors"
	"fmt"
	"io"

	"pkg.jsn.cam/tablegen/internal/generator"
	"pkg.jsn.cam/tablegen/internal/manifest"
)

var errNoManifest = errors.New("no manifest configured (set -manifest or manifest_path)")

// inspectRuns prints every recorded run, or the files of runID when it is set.
func inspectRuns(w io.Writer, manifestPath, runID string) error {
	if manifestPath == "" {
		return errNoManifest
	}
	store, err := manifest.OpenBoltStore(manifestPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID != "" {
		return showRun(w, store, runID)
	}
	return listRuns(w, store)
}

// listRuns prints one line per run. Runs with equal fingerprints wrote identical files.
func listRuns(w io.Writer, store manifest.Store) error {
	runs, err := store.List()
	if err != nil {
		return err
	}
	for _, run := range runs {
		fp := run.Fingerprint()
		line := fmt.Sprintf("%s seed=%d reference=%s", run.ID, run.Seed, run.Reference.Format(generator.TimestampLayout))
		for _, table := range generator.List() {
			if sum, ok := fp[table]; ok {
				line += fmt.Sprintf(" %s=%s", table, shortHash(sum))
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func showRun(w io.Writer, store manifest.Store, id string) error {
	run, err := store.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "run       %s\nseed      %d\nreference %s\nfinished  %s\n",
		run.ID, run.Seed, run.Reference.Format(generator.TimestampLayout), run.FinishedAt.Format(generator.TimestampLayout))
	for _, f := range run.Files {
		fmt.Fprintf(w, "%-10s %6d rows  %s  %s", f.Table, f.Rows, f.SHA256, f.Path)
		if f.Remote != "" {
			fmt.Fprintf(w, "  -> %s", f.Remote)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func shortHash(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
