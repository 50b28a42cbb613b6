package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m4go/m4go/config"
	"github.com/m4go/m4go/expand"
	"github.com/m4go/m4go/input"
	"github.com/m4go/m4go/repl"
	"github.com/m4go/m4go/service"
)

// Version information -- can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Show version information")
		showHelp     = flag.Bool("help", false, "Show help information")
		replMode     = flag.Bool("repl", false, "Start an interactive session (CLI)")
		tuiMode      = flag.Bool("tui", false, "Start an interactive session (TUI)")
		apiServer    = flag.Bool("api-server", false, "Start HTTP service mode (no input file required)")
		apiPort      = flag.Int("port", 8080, "Service port (used with -api-server)")
		configPath   = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		leftQuote    = flag.String("left-quote", "", "Override the startup left quote delimiter")
		rightQuote   = flag.String("right-quote", "", "Override the startup right quote delimiter")
		backend      = flag.String("backend", "", "Evaluator number backend: fixed64 or rational")
		includeDir   = flag.String("include", "", "Directory searched for include()/sinclude() targets")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("m4go %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if *apiServer {
		runAPIServer(*apiPort)
		return
	}

	cfg := loadConfig(*configPath)
	if *leftQuote != "" {
		cfg.Syntax.LeftQuote = *leftQuote
	}
	if *rightQuote != "" {
		cfg.Syntax.RightQuote = *rightQuote
	}
	if *backend != "" {
		cfg.Eval.Backend = *backend
	}
	if *includeDir != "" {
		cfg.Include.Dirs = append(cfg.Include.Dirs, *includeDir)
	}

	if *replMode || *tuiMode {
		session := repl.NewSession(cfg)
		var err error
		if *tuiMode {
			err = repl.RunTUI(session)
		} else {
			fmt.Println("m4go interactive session -- type :help for commands")
			err = repl.RunCLI(session)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "session error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Batch mode: expand each file argument in turn to stdout, or
	// stdin if none given.
	d := expand.New(cfg, os.Stdout)
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if err := runFile(d, name); err != nil {
			if diagErr, ok := input.AsFatalError(err); ok {
				log.Fatalf("m4go: %s", diagErr)
			}
			log.Fatalf("m4go: %v", err)
		}
	}

	if d.Diags.HasErrors() {
		for _, dg := range d.Diags.Items() {
			fmt.Fprintf(os.Stderr, "m4go: %s\n", dg)
		}
		os.Exit(1)
	}
}

func runFile(d *expand.Driver, name string) error {
	if name == "-" {
		return d.Run("stdin", os.Stdin)
	}
	f, err := os.Open(name) // #nosec G304 -- user-specified input file
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()
	return d.Run(name, f)
}

func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.LoadFrom(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "m4go: loading config %s: %v\n", path, err)
			os.Exit(1)
		}
		return cfg
	}
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func runAPIServer(port int) {
	srv := service.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "service error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	fmt.Println("\nshutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf(`m4go %s

Usage: m4go [options] [file ...]
       m4go -repl | -tui
       m4go -api-server [-port N]

If no files are given, input is read from stdin. Multiple files are
expanded in sequence, sharing one symbol table and quote/comment
configuration across all of them; at the end of each file its m4wrap
text is expanded and outstanding diversions are flushed.

Options:
  -help              Show this help message
  -version           Show version information
  -config FILE       Load settings from a TOML config file
  -left-quote S      Override the startup left quote delimiter
  -right-quote S     Override the startup right quote delimiter
  -backend NAME      Evaluator number backend: fixed64 or rational
  -include DIR       Add a directory searched for include()/sinclude()

  -repl              Start an interactive line-oriented session
  -tui               Start an interactive text-UI session

  -api-server        Start HTTP service mode (no input file required)
  -port N            Service port (default: 8080, used with -api-server)

Examples:
  m4go input.m4
  m4go -left-quote '[[' -right-quote ']]' input.m4
  m4go -repl
  m4go -api-server -port 3000
`, Version)
}
