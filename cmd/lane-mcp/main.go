package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/lane-tools-mcp/internal/lane"
	"github.com/ironsheep/lane-tools-mcp/internal/opencv"
	"github.com/ironsheep/lane-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("lane-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  OpenCV:     %v\n", opencv.Available())
			return
		case "--help", "-h", "help":
			fmt.Println("lane-tools-mcp - MCP server for road lane detection")
			fmt.Println()
			fmt.Println("Usage: lane-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  LANE_MCP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  LANE_MCP_BACKEND=go|opencv   Vision backend (default go;")
			fmt.Println("                               opencv needs a -tags gocv build)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("LANE_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Lane MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	backend, err := selectBackend(os.Getenv("LANE_MCP_BACKEND"))
	if err != nil {
		log.Fatalf("Backend error: %v", err)
	}
	if debug {
		log.Printf("Using %s vision backend", backend.Name)
	}

	server.Version = Version
	srv := server.New(server.WithBackend(backend), server.WithDebug(debug))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// selectBackend maps LANE_MCP_BACKEND to a vision backend.
func selectBackend(name string) (lane.Backend, error) {
	switch name {
	case "", "go":
		return lane.DefaultBackend(), nil
	case opencv.Name:
		return opencv.NewBackend()
	default:
		return lane.Backend{}, fmt.Errorf("unknown backend %q (want go or opencv)", name)
	}
}
