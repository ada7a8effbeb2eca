package main

import (
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/tablegen/internal/tabular"
)

// progressObserver advances a bar by the row count of each written table.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func newProgressObserver(totalRows int) *progressObserver {
	return &progressObserver{bar: progressbar.Default(int64(totalRows), "writing tables")}
}

func (p *progressObserver) TableWritten(table string, info *tabular.FileInfo) {
	p.bar.Describe("wrote " + table)
	_ = p.bar.Add(info.Rows)
}
