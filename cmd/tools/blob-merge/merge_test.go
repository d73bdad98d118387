package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/blobstats/internal/config"
	"github.com/banshee-data/blobstats/internal/testutil"
	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l5blobs"
)

const blockMass = 66 * 33

func defaultParams(t *testing.T, blocks string) sceneParams {
	t.Helper()
	specs, err := parseBlocks(blocks)
	testutil.AssertNoError(t, err)
	cfg := config.MustLoadDefaultConfig()
	return sceneParams{
		Width:           cfg.GetCanvasWidth(),
		Height:          cfg.GetCanvasHeight(),
		Granularity:     cfg.GetBlockGranularity(),
		ReductionFactor: cfg.GetReductionFactor(),
		Threshold:       cfg.GetBinarizeThreshold(),
		MinMass:         cfg.GetMinBodyMass(),
		Comparator:      l1math.NewHSVComparator(cfg.GetHSVDiscriminance()),
		MaxDistance:     cfg.GetSameColorDistance(),
		Blocks:          specs,
	}
}

func TestParseBlocks(t *testing.T) {
	got, err := parseBlocks("0:0:red, 1:2 ,2:1:#00ff00")
	require.NoError(t, err)
	assert.Equal(t, []blockSpec{
		{Row: 0, Col: 0, RGB: l1math.Red},
		{Row: 1, Col: 2, RGB: l1math.White},
		{Row: 2, Col: 1, RGB: l1math.Green},
	}, got)
}

func TestParseBlocks_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing col", "1"},
		{"too many parts", "1:1:red:x"},
		{"bad row", "a:1"},
		{"bad col", "1:b"},
		{"bad colour", "1:1:mauve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBlocks(tt.input)
			testutil.AssertError(t, err)
		})
	}
}

func TestRun_MergesSimilarColours(t *testing.T) {
	var out bytes.Buffer
	merged, err := run(defaultParams(t, "0:0:red,0:1:red,1:1:blue"), &out)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	var summaries []l5blobs.Summary
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var s l5blobs.Summary
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		summaries = append(summaries, s)
	}
	require.NoError(t, sc.Err())
	require.Len(t, summaries, 2)

	reds := summaries[0]
	assert.Equal(t, 2*blockMass, reds.Mass)
	assert.InDelta(t, 65.5, reds.CenterX, 1e-9)
	assert.InDelta(t, 16.0, reds.CenterY, 1e-9)
	require.NotNil(t, reds.RGB)
	assert.Equal(t, l1math.Red, *reds.RGB)
	assert.Equal(t, uint64(2*blockMass), reds.Samples)
	require.NotNil(t, reds.Window)
	assert.Equal(t, l5blobs.WindowSummary{X: 0, Y: 0, Width: 200, Height: 100}, *reds.Window)

	blues := summaries[1]
	assert.Equal(t, blockMass, blues.Mass)
	assert.InDelta(t, 98.5, blues.CenterX, 1e-9)
	assert.InDelta(t, 49.0, blues.CenterY, 1e-9)
	require.NotNil(t, blues.RGB)
	assert.Equal(t, l1math.Blue, *blues.RGB)

	assert.Equal(t, merged[0].ID().String(), reds.ID)
}

func TestRun_MinMassFiltersEverything(t *testing.T) {
	p := defaultParams(t, "0:0:red")
	p.MinMass = blockMass + 1

	_, err := run(p, &bytes.Buffer{})
	testutil.AssertError(t, err)
}

func TestRun_BlockOutsideGrid(t *testing.T) {
	_, err := run(defaultParams(t, "5:5:red"), &bytes.Buffer{})
	testutil.AssertError(t, err)
}

func TestGroupBySimilarColor(t *testing.T) {
	p := defaultParams(t, "0:0:red,1:1:blue,2:2:red")
	bodies, err := buildBodies(p)
	require.NoError(t, err)
	require.Len(t, bodies, 3)

	groups := groupBySimilarColor(bodies, p.Comparator, p.MaxDistance)
	require.Len(t, groups, 2)
	assert.Equal(t, []*l5blobs.ColorBody{bodies[0], bodies[2]}, groups[0])
	assert.Equal(t, []*l5blobs.ColorBody{bodies[1]}, groups[1])
}
