// Command region-replay loads a monitor configuration and a JSON scenario of
// regions and detection boxes, replays the boxes through a region monitor
// and prints the matches as JSON.
//
// Usage:
//
//	go run ./cmd/region-replay -scenario scenario.json [flags]
//
// Flags:
//
//	-config    Path to a monitor config (default: built-in defaults)
//	-scenario  Path to the scenario file (required)
//	-out       Output path (default: stdout)
//	-verbose   Log monitor state changes
//	-version   Print the build version and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/regionmonitor/internal/config"
	"github.com/banshee-data/regionmonitor/internal/fsutil"
	"github.com/banshee-data/regionmonitor/internal/geometry"
	"github.com/banshee-data/regionmonitor/internal/monitor"
	"github.com/banshee-data/regionmonitor/internal/monitoring"
	"github.com/banshee-data/regionmonitor/internal/version"
	"go.uber.org/zap"
)

type scenarioRegion struct {
	ID         uint64             `json:"id"`
	Outer      []geometry.Point   `json:"outer"`
	Inners     [][]geometry.Point `json:"inners,omitempty"`
	Attributes []uint32           `json:"attributes,omitempty"`
	Values     []int32            `json:"values,omitempty"`
}

type scenarioBox struct {
	Center  geometry.Point `json:"center"`
	Length  float64        `json:"length"`
	Width   float64        `json:"width"`
	Spindle uint32         `json:"spindle"`
}

type scenario struct {
	Regions []scenarioRegion `json:"regions"`
	Boxes   []scenarioBox    `json:"boxes"`
}

type boxResult struct {
	Box        int      `json:"box"`
	Useful     bool     `json:"useful"`
	Attributes []uint32 `json:"attributes"`
	Values     []int32  `json:"values"`
	IoUs       []int32  `json:"ious"`
}

type report struct {
	Rejected []uint64          `json:"rejected"`
	Results  []boxResult       `json:"results"`
	Flow     map[uint64]uint32 `json:"flow"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, fsutil.OSFileSystem{}); err != nil {
		log.Fatalf("region-replay: %v", err)
	}
}

func run(args []string, stdout io.Writer, fsys fsutil.FileSystem) error {
	fs := flag.NewFlagSet("region-replay", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to monitor config JSON (default: built-in defaults)")
	scenarioPath := fs.String("scenario", "", "Path to scenario JSON (required)")
	outPath := fs.String("out", "", "Output path (default: stdout)")
	verbose := fs.Bool("verbose", false, "Log monitor state changes")
	showVersion := fs.Bool("version", false, "Print the build version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		_, err := fmt.Fprintf(stdout, "region-replay %s\n", version.String())
		return err
	}

	if *scenarioPath == "" {
		return fmt.Errorf("-scenario flag is required")
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer l.Sync()
		monitoring.UseZap(l)
	} else {
		// Rejected regions are already listed in the report.
		monitoring.UseZap(nil)
	}

	cfg := config.DefaultMonitorConfig()
	if *configPath != "" {
		loaded, err := config.LoadMonitorConfigFS(fsys, *configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	m, err := monitor.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	sc, err := loadScenario(fsys, *scenarioPath)
	if err != nil {
		return err
	}

	rep, err := replay(m, sc)
	if err != nil {
		return err
	}

	if *outPath == "" {
		return writeReport(stdout, rep)
	}
	f, err := fsys.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeReport(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeReport(w io.Writer, rep *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func loadScenario(fsys fsutil.FileSystem, path string) (*scenario, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

// replay loads every region, then queries every box in order. Regions the
// monitor rejects as invalid are reported, not fatal; malformed attribute
// lists are.
func replay(m *monitor.Monitor, sc *scenario) (*report, error) {
	rep := &report{
		Rejected: []uint64{},
		Results:  make([]boxResult, 0, len(sc.Boxes)),
		Flow:     map[uint64]uint32{},
	}

	for _, r := range sc.Regions {
		ok, err := m.Add(r.ID, r.Outer, r.Inners, r.Attributes, r.Values)
		if err != nil {
			return nil, err
		}
		if !ok {
			rep.Rejected = append(rep.Rejected, r.ID)
		}
	}

	for i, b := range sc.Boxes {
		center := m.RotatTrans(b.Center)
		box := geometry.NewBox(center, b.Length, b.Width, b.Spindle)
		related := m.FindRelatedMessage(box, rep.Flow)
		rep.Results = append(rep.Results, boxResult{
			Box:        i,
			Useful:     !m.ROIReady() || m.IsUseful(box),
			Attributes: nonNil(related.Attributes),
			Values:     nonNil(related.Values),
			IoUs:       nonNil(related.IoUs),
		})
	}
	return rep, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
