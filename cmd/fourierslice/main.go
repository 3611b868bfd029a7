package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fourierslice/internal/ui"
	"fourierslice/pkg/config"
	"fourierslice/pkg/reconstruction"
	"fourierslice/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "fourierslice.yaml", "YAML configuration file (defaults are used if missing)")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	angle := flag.Int("angle", 0, "Projection angle in degrees (0-179)")
	outputDir := flag.String("output", "", "Directory for rendered panels (overrides config)")
	sweep := flag.Bool("sweep", false, "Render every sweep step from 0 to 179 degrees")
	step := flag.Int("step", 0, "Sweep step in degrees (overrides config)")
	interactive := flag.Bool("interactive", false, "Start the interactive terminal viewer")
	shape := flag.String("shape", "", "Detector demo shape: E, A, 1, O, Square, Tri or Plus (overrides config)")
	verbose := flag.Bool("verbose", false, "Log progress")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.Render.OutputDir = *outputDir
	}
	if *step != 0 {
		cfg.Render.SweepStep = *step
	}
	if *shape != "" {
		cfg.Detector.Shape = *shape
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The slider contract: integer degrees in [0, 179]
	if *angle < 0 || *angle > reconstruction.MaxAngle {
		fmt.Fprintf(os.Stderr, "angle must be between 0 and %d\n", reconstruction.MaxAngle)
		flag.Usage()
		os.Exit(1)
	}

	startTime := time.Now()
	reconstructor := reconstruction.NewReconstructor(&reconstruction.Params{
		Size:    cfg.Phantom.Size,
		Verbose: cfg.Output.Verbose,
	})
	if cfg.Output.Verbose {
		log.Printf("Setup completed in %.2f seconds", time.Since(startTime).Seconds())
	}

	if *interactive {
		if err := ui.Run(reconstructor, cfg.Detector.Shape); err != nil {
			log.Fatalf("Interactive viewer failed: %v", err)
		}
		return
	}

	viewer := visualization.NewViewer(reconstructor, cfg.Render.Scale)

	if *sweep {
		fmt.Printf("Rendering sweep every %d degrees to %s\n", cfg.Render.SweepStep, cfg.Render.OutputDir)
		if err := viewer.SaveSweep(reconstructor, cfg.Render.OutputDir, cfg.Render.SweepStep, cfg.Render.Panels); err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		fmt.Println("Sweep completed!")
		return
	}

	frame := reconstructor.Update(float64(*angle))
	dir := filepath.Join(cfg.Render.OutputDir, fmt.Sprintf("angle_%03d", *angle))
	if err := viewer.SaveFrame(frame, dir, cfg.Render.Panels); err != nil {
		log.Fatalf("Failed to save frame: %v", err)
	}

	metrics := reconstructor.Metrics(frame.Reconstruction)
	fmt.Printf("Frame for %d degrees saved to: %s\n\n", *angle, dir)
	fmt.Printf("Reconstruction Metrics (%d spokes):\n", *angle+1)
	fmt.Printf("==============================\n")
	fmt.Printf("Normalized Cross-Correlation: %.3f\n", metrics.NCC)
	fmt.Printf("Mutual Information: %.3f\n", metrics.MI)
	fmt.Printf("Root Mean Square Error (RMSE): %.6f\n", metrics.RMSE)
	fmt.Printf("Structural Similarity Index (SSIM): %.3f\n", metrics.SSIM)
}
