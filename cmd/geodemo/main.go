// Command geodemo ingests a GeoJSON file with geolayer and reports the
// resulting vertex-buffer statistics and a frame transform.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/geolayer"
)

func main() {
	var (
		input   = flag.String("input", "", "GeoJSON feature-collection file")
		width   = flag.Int("width", 800, "viewport width in pixels")
		height  = flag.Int("height", 600, "viewport height in pixels")
		zoom    = flag.Float64("zoom", 2, "zoom level")
		center  = flag.String("center", "0,0", "view center as lng,lat")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		geolayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	payload, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read %s: %v", *input, err)
	}

	skipped := 0
	layer := geolayer.NewLayer(*width, *height,
		geolayer.WithOnFeatureError(func(f *geojson.Feature, err error) {
			skipped++
			log.Printf("skipped feature: %v", err)
		}),
	)
	if err := layer.Ingest(payload); err != nil {
		log.Fatalf("ingest: %v", err)
	}

	store := layer.Store()
	log.Printf("points: %d  fill triangles: %d  border loops: %d  border vertices: %d  skipped: %d",
		store.PointCount(), store.FillTriangleCount(),
		len(store.BorderCounts()), store.BorderVertexCount(), skipped)

	lng, lat, err := parseCenter(*center)
	if err != nil {
		log.Fatalf("center: %v", err)
	}
	// The viewport top-left is in zoom-0 world-pixel units: at zoom z the
	// viewport spans width/2^z world pixels.
	cx, cy := geolayer.Project(lng, lat)
	scale := math.Pow(2, *zoom)
	layer.SetView(*zoom,
		cx-float64(*width)/(2*scale),
		cy-float64(*height)/(2*scale),
	)

	m := layer.FrameTransform()
	log.Printf("frame transform (column-major): %v", m)
}

func parseCenter(s string) (lng, lat float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want lng,lat, got %q", s)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%f", &lng); err != nil {
		return 0, 0, err
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%f", &lat); err != nil {
		return 0, 0, err
	}
	return lng, lat, nil
}
