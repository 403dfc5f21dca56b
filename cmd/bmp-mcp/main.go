package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/bmp-tools-mcp/internal/jobs"
	"github.com/ironsheep/bmp-tools-mcp/internal/server"
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
			fmt.Printf("bmp-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("BMP_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("BMP MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if len(os.Args) > 1 && os.Args[1] == "render" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: bmp-tools-mcp render <jobs.yaml>")
			os.Exit(2)
		}
		if err := render(os.Args[2]); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
		return
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func render(path string) error {
	f, err := jobs.LoadFile(path)
	if err != nil {
		return err
	}
	results, err := jobs.Run(f)
	for _, r := range results {
		fmt.Printf("%s\t%d bytes\t%s\n", r.Path, r.Bytes, r.SizeMode)
	}
	return err
}

func printUsage() {
	fmt.Println("bmp-tools-mcp - MCP server for 24-bit BMP images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bmp-tools-mcp [options]          Serve MCP over stdin/stdout")
	fmt.Println("  bmp-tools-mcp render <jobs.yaml> Render the images in a jobs file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  BMP_MCP_LOG_LEVEL=debug    Enable debug logging")
}
