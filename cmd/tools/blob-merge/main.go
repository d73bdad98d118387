// Command blob-merge draws a synthetic block scene, builds one colour body
// per block, merges bodies of similar colour and prints a JSON summary per
// merged body.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/blobstats/internal/config"
	"github.com/banshee-data/blobstats/internal/monitoring"
	"github.com/banshee-data/blobstats/internal/version"
	"github.com/banshee-data/blobstats/internal/vision"
	"github.com/banshee-data/blobstats/internal/vision/gridplot"
	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

func main() {
	configPath := flag.String("config", "", "path to tuning JSON (defaults apply when empty)")
	blocks := flag.String("blocks", "0:0:red,0:1:red,1:1:blue", "comma separated row:col[:colour] blocks")
	granularity := flag.Int("granularity", 0, "blocks per side (overrides block_granularity)")
	rf := flag.Float64("rf", 0, "grid reduction factor (overrides reduction_factor)")
	level := flag.String("log", "ops", "vision log level: none, ops, diag or trace")
	plotPath := flag.String("plot", "", "write the first merged grid's occupancy heat-map to this PNG")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadTuningConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	streams, err := monitoring.StreamsForLevel(*level, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	vision.SetLogWriters(streams)
	if streams.Diag == nil {
		monitoring.SetLogger(nil)
	}

	specs, err := parseBlocks(*blocks)
	if err != nil {
		log.Fatalf("invalid -blocks: %v", err)
	}

	p := sceneParams{
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
	if *granularity > 0 {
		p.Granularity = *granularity
	}
	if *rf > 0 {
		p.ReductionFactor = *rf
	}

	merged, err := run(p, os.Stdout)
	if err != nil {
		log.Fatalf("blob-merge failed: %v", err)
	}

	if *plotPath != "" {
		if err := gridplot.SaveOccupancy(&merged[0].Grid().SampleGrid, *plotPath, gridplot.Options{}); err != nil {
			log.Fatalf("failed to write plot: %v", err)
		}
		log.Printf("wrote %s", *plotPath)
	}
}
