package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tessellab/region-bridge/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("region-bridge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("region-bridge - GeoJSON region and image export gateway")
			fmt.Println()
			fmt.Println("Usage: region-bridge [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  REGION_BRIDGE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via JSON-RPC 2.0 over stdin/stdout.")
			fmt.Println("Point an out-of-process client at it to exchange region")
			fmt.Println("objects as GeoJSON and pull image regions as encoded bytes.")
			return
		}
	}

	// Configure logging to stderr (stdout is for the protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("REGION_BRIDGE_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("region-bridge v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
