package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/mapcolor-mcp/internal/config"
	"github.com/ironsheep/mapcolor-mcp/internal/server"
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
			fmt.Printf("mapcolor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("mapcolor-mcp - MCP server for interactive map coloring")
			fmt.Println()
			fmt.Println("Usage: mapcolor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Printf("  %s=debug         Log level (trace..panic)\n", config.EnvLogLevel)
			fmt.Printf("  %s=json         Log format (text or json)\n", config.EnvLogFormat)
			fmt.Printf("  %s=30                Flood-fill channel tolerance\n", config.EnvTolerance)
			fmt.Printf("  %s=5         Smallest paintable region\n", config.EnvMinRegionPixels)
			fmt.Printf("  %s, %s   Scale maps to a fixed size\n", config.EnvMapWidth, config.EnvMapHeight)
			fmt.Printf("  %s                     Instruction line on rendered frames\n", config.EnvTitle)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	// Logs go to stderr; stdout is for MCP protocol
	log := cfg.NewLogger()
	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Map color MCP server starting")

	server.Version = Version
	srv := server.New(server.WithConfig(cfg), server.WithLogger(log))
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}
