package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
	"github.com/fusiondiag/go-los-tracer/pkg/quadrature"
	"github.com/fusiondiag/go-los-tracer/pkg/scene"
	"github.com/fusiondiag/go-los-tracer/pkg/tracer"
)

// traceOutput is the JSON document written for a batch trace. Length is
// present only when sampling was requested.
type traceOutput struct {
	KIn    []float64    `json:"kin"`
	KOut   []float64    `json:"kout"`
	VPerp  [][3]float64 `json:"vperp"`
	Index  [][3]int     `json:"index"`
	Length []float64    `json:"length,omitempty"`
}

// encodeResults converts a trace result to its JSON document. JSON has
// no NaN, so misses get zero coefficients and the index (-1,-1,-1).
func encodeResults(res *tracer.Result) traceOutput {
	out := traceOutput{
		KIn:   res.KIn,
		KOut:  res.KOut,
		VPerp: make([][3]float64, res.N()),
		Index: make([][3]int, res.N()),
	}
	for i := 0; i < res.N(); i++ {
		out.VPerp[i] = [3]float64{res.VPerp[i].X, res.VPerp[i].Y, res.VPerp[i].Z}
		out.Index[i] = [3]int{res.Index[i].Struct, res.Index[i].Instance, res.Index[i].Edge}
		if math.IsNaN(out.KIn[i]) {
			out.KIn[i] = 0
			out.KOut[i] = 0
			out.Index[i] = [3]int{-1, -1, -1}
		}
	}
	return out
}

// pathLengths integrates a unit field along every visible interval with
// the midpoint rule at the given step: a numeric cross-check of
// kout-kin. Misses and collapsed intervals get length 0.
func pathLengths(origins, dirs []core.Vec3, kin, kout []float64, step float64) ([]float64, error) {
	// The sampler skips NaN bounds; mark collapsed intervals the same way
	in := make([]float64, len(kin))
	out := make([]float64, len(kout))
	for i := range kin {
		in[i], out[i] = kin[i], kout[i]
		if kout[i]-kin[i] <= 0 {
			in[i], out[i] = math.NaN(), math.NaN()
		}
	}

	one := func(core.Vec3) float64 { return 1 }
	lengths, err := quadrature.IntegrateAlong(one, origins, dirs, in, out,
		[]float64{step}, quadrature.StepAbsolute, quadrature.RuleSum)
	if err != nil {
		return nil, err
	}
	for i, l := range lengths {
		if math.IsNaN(l) {
			lengths[i] = 0
		}
	}
	return lengths, nil
}

func main() {
	scenePath := flag.String("scene", "scene.yaml", "Scene description file (YAML)")
	outPath := flag.String("out", "", "Output file for results (JSON, default stdout)")
	step := flag.Float64("step", 0, "Sampling step along visible intervals; 0 disables sampling")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("LOS Tracer")
		fmt.Println("Usage: los-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("The scene file describes the vessel cross-section, obstructing")
		fmt.Println("structures and the ray batch; see pkg/scene for the schema.")
		return
	}

	sc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("loading scene: %v", err)
	}

	tr, err := sc.BuildTracer()
	if err != nil {
		log.Fatalf("building tracer: %v", err)
	}

	origins, dirs := sc.BuildRays()
	fmt.Printf("Tracing %d rays against %d structures...\n", len(origins), len(sc.Structures))

	startTime := time.Now()
	res, err := tr.TraceBatch(origins, dirs)
	if err != nil {
		log.Fatalf("trace failed: %v", err)
	}
	traceTime := time.Since(startTime)

	hits := 0
	for i := 0; i < res.N(); i++ {
		if res.Hit(i) {
			hits++
		}
	}
	fmt.Printf("Trace completed in %v (%d/%d rays see the vessel)\n", traceTime, hits, res.N())

	// Sample before encoding: encodeResults zeroes the miss slots that
	// the sampler recognizes by their NaN bounds.
	var lengths []float64
	if *step > 0 {
		lengths, err = pathLengths(origins, dirs, res.KIn, res.KOut, *step)
		if err != nil {
			log.Fatalf("sampling failed: %v", err)
		}
	}
	out := encodeResults(res)
	out.Length = lengths

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("encoding results: %v", err)
	}
	data = append(data, '\n')

	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("writing results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outPath)
}
