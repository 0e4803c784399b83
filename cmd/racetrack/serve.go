package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/racetrack/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePreset string
	flagServeFeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the racetrack SSH server",
	Long: `Start an SSH server that allows users to connect and race.

Each SSH connection gets its own session with a track picker menu.
Results are stored per-server (all users share the same records),
under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.racetrack/host_key

Examples:
  racetrack serve                           # Listen on :23234 with auto-generated key
  racetrack serve --ssh :2222               # Listen on port 2222
  racetrack serve --host-key ./my_host_key  # Use specific host key
  racetrack serve --spectate :8080          # Also serve live snapshots

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePreset, "preset", "", "Rule preset for every session: casual, normal, hardcore")
	serveCmd.Flags().StringVar(&flagServeFeed, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger()

	if _, err := loadRaceConfig(flagServePreset); err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	if flagServeFeed != "" {
		stop := startSpectator(flagServeFeed, logger)
		defer stop()
	}

	fmt.Printf("Starting racetrack SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
