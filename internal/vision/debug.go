package vision

import (
	"io"

	"github.com/banshee-data/blobstats/internal/vision/l3mask"
	"github.com/banshee-data/blobstats/internal/vision/l4grid"
	"github.com/banshee-data/blobstats/internal/vision/l5blobs"
)

// LogWriters holds the io.Writers for each logging stream.
type LogWriters struct {
	Ops   io.Writer
	Diag  io.Writer
	Trace io.Writer
}

// SetLogWriters configures all three logging streams of every vision
// layer at once. Pass nil for any writer to disable that stream.
func SetLogWriters(w LogWriters) {
	l3mask.SetLogWriters(w.Ops, w.Diag, w.Trace)
	l4grid.SetLogWriters(w.Ops, w.Diag, w.Trace)
	l5blobs.SetLogWriters(w.Ops, w.Diag, w.Trace)
}
