// Command blockbake loads block models, bakes them into packed quads and
// lights a small demo section on the rebuild worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"blockbake/internal/atlas"
	"blockbake/internal/config"
	"blockbake/internal/demo"
	"blockbake/internal/export"
	"blockbake/internal/format"
	"blockbake/internal/meshing"
	"blockbake/internal/metrics"
	"blockbake/internal/model"
	"blockbake/internal/profiling"
	"blockbake/internal/quad"
	"blockbake/internal/registry"
	"blockbake/internal/world"
	"blockbake/pkg/blockmodel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/closer"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $BLOCKBAKE_CONFIG)")
	assetsPath := flag.String("assets", "", "assets directory, overrides the config")
	atlasOut := flag.String("atlas-out", "", "write the composed atlas PNG here")
	dump := flag.Bool("dump", false, "print the quad count of every baked block")
	exportPath := flag.String("export", "", "write the baked models as a zstd blob here")
	terrain := flag.Int64("terrain", 0, "light a 16x16 perlin terrain with this seed instead of the checkerboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *assetsPath != "" {
		cfg.Assets.Path = *assetsPath
	}
	settings := config.NewSettings(cfg)

	reg := registry.Defaults()
	reg.LoadModels(blockmodel.NewLoader(cfg.Assets.Path))

	texAtlas := atlas.Stitch(reg.Textures(), cfg.Atlas.TileSize, cfg.Atlas.Columns)
	log.Printf("Atlas: %d sprites, %dx%d", texAtlas.Len(), texAtlas.Width(), texAtlas.Height())
	if *atlasOut != "" {
		if err := writeAtlas(texAtlas, filepath.Join(cfg.Assets.Path, "textures", "block"), *atlasOut); err != nil {
			log.Fatalf("Failed to write atlas: %v", err)
		}
	}

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	baker := &model.Baker{Atlas: texAtlas, Formats: format.NewRegistry()}
	baked, err := reg.BakeAll(baker)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	total := 0
	for _, def := range reg.Definitions() {
		bm, ok := baked[def.ID]
		if !ok {
			continue
		}
		total += bm.QuadCount()
		if *dump {
			fmt.Printf("%-16s %2d quads  %s\n", def.Name, bm.QuadCount(), bm.Format)
		}
	}
	m.AddBaked(total)
	fmt.Printf("Baked %d quads for %d blocks\n", total, len(baked))
	if *exportPath != "" {
		if err := writeExport(baked, *exportPath); err != nil {
			log.Fatalf("Failed to export baked models: %v", err)
		}
	}

	pool := meshing.NewWorkerPool(settings.Workers(), cfg.Meshing.QueueSize, meshing.PoolOptions{
		Lighter: meshing.LighterOptions{
			CacheCapacity: cfg.Lighting.CacheCapacity,
			Props:         reg,
			Tint:          reg,
		},
		Smooth:  settings.AmbientOcclusion,
		Metrics: m,
	})
	closer.Bind(pool.Shutdown)
	log.Printf("Rebuild pool started with %d workers", pool.Workers())

	section := demoSection(reg, baked, *terrain)
	if err := rebuild(pool, section); err != nil {
		log.Printf("Warning: demo rebuild failed: %v", err)
	}
	fmt.Println("Profile:", profiling.TopN(5))

	if cfg.Metrics.Addr == "" {
		closer.Close()
		return
	}
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux(promReg)}
	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Warning: metrics server shutdown: %v", err)
		}
	})
	go func() {
		log.Printf("Serving metrics on %s/metrics", cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Warning: metrics server: %v", err)
		}
	}()
	closer.Hold()
}

func metricsMux(g prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	return mux
}

func writeAtlas(a *atlas.Atlas, textureDir, out string) error {
	images, errs := atlas.LoadImages(textureDir, a.Names())
	for _, err := range errs {
		log.Printf("Warning: %v", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, a.Compose(images)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	log.Printf("Atlas written to %s", out)
	return f.Close()
}

// demoSection is a 3x3x3 checkerboard of the baked blocks, or perlin
// terrain when a seed is given.
func demoSection(reg *registry.Registry, baked map[world.BlockState]*meshing.BakedModel, seed int64) *demo.Section {
	if seed != 0 {
		t := demo.Terrain{Seed: seed, Size: 16, Height: 8, Top: registry.Grass, Fill: registry.Dirt}
		return t.Build(reg, baked)
	}
	var states []world.BlockState
	for _, def := range reg.Definitions() {
		if _, ok := baked[def.ID]; ok {
			states = append(states, def.ID)
		}
	}
	return demo.Checkerboard(reg, 3, states, baked)
}

func writeExport(baked map[world.BlockState]*meshing.BakedModel, out string) error {
	data, err := export.Encode(baked)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Printf("Exported %d models (%d bytes) to %s", len(baked), len(data), out)
	return nil
}

func rebuild(pool *meshing.WorkerPool, section *demo.Section) error {
	results := make(chan meshing.RebuildResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job := meshing.RebuildJob{ID: 1, View: section.Grid, Blocks: section.Blocks, ResultChan: results}
	if !pool.SubmitJobBlocking(ctx, job) {
		return fmt.Errorf("job not queued: %w", ctx.Err())
	}
	select {
	case res := <-results:
		if res.Err != nil {
			return res.Err
		}
		fmt.Printf("Lit %d quads, culled %d, across %d blocks\n", res.Lit, res.Culled, len(section.Blocks))
		for p := quad.RenderPass(0); p < quad.RenderPassCount; p++ {
			if n := res.Outputs.Buffer(p).QuadCount(); n > 0 {
				fmt.Printf("  %-14s %d quads\n", p, n)
			}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
