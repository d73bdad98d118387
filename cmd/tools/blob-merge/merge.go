package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/banshee-data/blobstats/internal/monitoring"
	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l3mask"
	"github.com/banshee-data/blobstats/internal/vision/l5blobs"
	"github.com/banshee-data/blobstats/internal/vision/synth"
)

// blockSpec is one painted block of the synthetic scene.
type blockSpec struct {
	Row, Col int
	RGB      l1math.Vec3i
}

var namedColors = map[string]l1math.Vec3i{
	"black": l1math.Black,
	"white": l1math.White,
	"grey":  l1math.Grey,
	"gray":  l1math.Grey,
	"red":   l1math.Red,
	"green": l1math.Green,
	"blue":  l1math.Blue,
}

func parseColor(s string) (l1math.Vec3i, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return l1math.Vec3i{}, fmt.Errorf("colour %q is neither a name nor #rrggbb: %w", s, err)
	}
	r, g, b := c.RGB255()
	return l1math.Vec3i{int(r), int(g), int(b)}, nil
}

// parseBlocks reads a comma separated list of row:col[:colour] entries.
// The colour defaults to white.
func parseBlocks(s string) ([]blockSpec, error) {
	var out []blockSpec
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("block %q: want row:col[:colour]", item)
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("block %q row: %w", item, err)
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("block %q col: %w", item, err)
		}
		rgb := l1math.White
		if len(parts) == 3 {
			if rgb, err = parseColor(parts[2]); err != nil {
				return nil, fmt.Errorf("block %q: %w", item, err)
			}
		}
		out = append(out, blockSpec{Row: row, Col: col, RGB: rgb})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no blocks given")
	}
	return out, nil
}

// sceneParams drives one run of the tool.
type sceneParams struct {
	Width, Height   int
	Granularity     int
	ReductionFactor float64
	Threshold       uint8
	MinMass         int
	Comparator      *l1math.HSVComparator
	MaxDistance     float64
	Blocks          []blockSpec
}

// buildBodies paints every block into a colour scene and returns one
// colour body per block whose mass reaches MinMass.
func buildBodies(p sceneParams) ([]*l5blobs.ColorBody, error) {
	canvas, err := synth.NewBlockCanvas(p.Width, p.Height, p.Granularity)
	if err != nil {
		return nil, err
	}
	scene := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for _, b := range p.Blocks {
		r, err := canvas.BlockWindow(b.Row, b.Col)
		if err != nil {
			return nil, fmt.Errorf("block %d:%d: %w", b.Row, b.Col, err)
		}
		fill := color.RGBA{R: uint8(b.RGB[0]), G: uint8(b.RGB[1]), B: uint8(b.RGB[2]), A: 255}
		draw.Draw(scene, r, image.NewUniform(fill), image.Point{}, draw.Src)
	}

	var bodies []*l5blobs.ColorBody
	for _, b := range p.Blocks {
		canvas.Clear()
		if err := canvas.FillBlock(b.Row, b.Col); err != nil {
			return nil, err
		}
		mask, err := l3mask.FromGray(canvas.Image())
		if err != nil {
			return nil, err
		}
		if err := mask.Binarize(p.Threshold); err != nil {
			return nil, err
		}
		body, err := l5blobs.SampleColorBody(scene, mask, p.ReductionFactor)
		if err != nil {
			return nil, fmt.Errorf("block %d:%d: %w", b.Row, b.Col, err)
		}
		if body.Mass() < p.MinMass {
			monitoring.Logf("skipping block %d:%d: mass %d below %d", b.Row, b.Col, body.Mass(), p.MinMass)
			continue
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// groupBySimilarColor puts each body in the first group whose leader has
// a similar colour, starting a new group otherwise.
func groupBySimilarColor(bodies []*l5blobs.ColorBody, cmp *l1math.HSVComparator, maxDistance float64) [][]*l5blobs.ColorBody {
	var groups [][]*l5blobs.ColorBody
	for _, b := range bodies {
		placed := false
		for i, g := range groups {
			if l5blobs.SimilarColor(g[0], b, cmp, maxDistance) {
				groups[i] = append(g, b)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*l5blobs.ColorBody{b})
		}
	}
	return groups
}

// run builds the scene, merges each colour group and writes one JSON
// summary per merged body to w. The merged bodies are returned in output
// order.
func run(p sceneParams, w io.Writer) ([]*l5blobs.ColorBody, error) {
	bodies, err := buildBodies(p)
	if err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("no block reached min mass %d", p.MinMass)
	}

	enc := json.NewEncoder(w)
	var merged []*l5blobs.ColorBody
	for _, group := range groupBySimilarColor(bodies, p.Comparator, p.MaxDistance) {
		m, err := l5blobs.MergeColorBodies(group)
		if err != nil {
			return nil, err
		}
		monitoring.Logf("merged %d bodies into %s", len(group), m)
		if err := enc.Encode(l5blobs.Summarize(m)); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
		merged = append(merged, m)
	}
	return merged, nil
}
