package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/platform/tui"
	"github.com/vovakirdan/tza-rng/internal/search"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSearches int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the seed finder SSH server",
	Long: `Start an SSH server that gives every connection its own seed finder UI.

Seed searches from all sessions share one pool, so --max-searches bounds the
CPU used by the server. Searches are canceled when their session ends and
finished ones are recorded in the history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tzarng/host_key

Examples:
  tzarng serve                           # Listen on :23235 with auto-generated key
  tzarng serve --ssh :2222               # Listen on port 2222
  tzarng serve --host-key ./my_host_key  # Use specific host key
  tzarng serve --max-searches 4 --workers 2

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
	serveCmd.Flags().IntVar(&flagMaxSearches, "max-searches", 0, "Searches running at once across sessions (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		settings.Server.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		settings.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		settings.Server.IdleTimeout = minutes(flagIdleTimeout)
	}
	if flags.Changed("max-searches") {
		settings.Server.MaxSearches = flagMaxSearches
	}

	logger := newLogger("tzarng-ssh")

	searcher := settings.Search.Searcher()
	searcher.Logger = logger
	poolCfg := search.DefaultPoolConfig()
	if settings.Server.MaxSearches > 0 {
		poolCfg.Tasks = settings.Server.MaxSearches
	}
	pool := search.NewPool(poolCfg, searcher, logger)
	if store := openHistory(logger); store != nil {
		defer store.Close()
		pool.SetResultSaver(store)
	}
	pool.Start()
	defer pool.Stop()

	cfg := tui.DefaultSSHServerConfig()
	if settings.Server.Address != "" {
		cfg.Address = settings.Server.Address
	}
	if settings.Server.IdleTimeout > 0 {
		cfg.IdleTimeout = settings.Server.IdleTimeout
	}
	cfg.HostKeyPath = settings.Server.HostKeyPath

	server, err := tui.NewSSHServer(cfg, tui.NewOptions(settings, pool), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tzarng SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
