// Command verdict runs every verification hook for a polyglot workspace
// and aggregates the results into one exit code.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/verdict"
	"github.com/deixis/verdict/internal/commitmsg"
	"github.com/deixis/verdict/internal/config"
	"github.com/deixis/verdict/internal/ecosystem"
	"github.com/deixis/verdict/internal/hook"
	vmcp "github.com/deixis/verdict/internal/mcp"
	"github.com/deixis/verdict/internal/progress"
	"github.com/deixis/verdict/internal/report"
	"github.com/deixis/verdict/internal/runner"
	"github.com/deixis/verdict/internal/workflow"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("verdict: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "detect":
		err = detectMain(args)
	case "msg":
		err = msgMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(verdict.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "verdict: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: verdict <command> [flags] [dir]

Commands:
  run         Run all verification hooks for the detected ecosystems
  detect      List detected ecosystems and the hooks each would run
  msg         Validate a commit message (stdin or -file)
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "verdict <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	concFlag := fs.Int("n", 0, "override configured pool size")
	timeoutFlag := fs.Duration("timeout", 0, "override configured per-hook timeout (e.g. 5m)")
	jsonFlag := fs.Bool("json", false, "output the full report as JSON")
	verboseFlag := fs.Bool("v", false, "include captured output for failed hooks")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, cfg, err := newEngine(fs.Args(), *timeoutFlag)
	if err != nil {
		return err
	}
	eng.Concurrency = *concFlag

	if !*jsonFlag {
		defs, err := eng.Plan(nil)
		if err != nil {
			return err
		}
		eng.Reporter = progress.NewConsole(os.Stderr, len(defs))
	}

	run, err := eng.Verify(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if dir := cfg.LogDir(eng.Workspace); dir != "" {
		if err := report.WriteLogs(dir, run); err != nil {
			log.Printf("writing hook logs: %v", err)
		}
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return err
		}
	} else {
		fmt.Println()
		fmt.Print(run.Summary())
		if *verboseFlag {
			printProblemOutput(run)
		}
	}

	os.Exit(run.ExitCode())
	return nil
}

func printProblemOutput(run *report.RunReport) {
	for _, o := range run.Problems() {
		if o.Status != report.Failed {
			continue
		}
		fmt.Printf("\n--- %s/%s (exit %d) ---\n", o.Hook.Ecosystem, o.Hook.Name, o.ExitCode)
		if len(o.Stdout) > 0 {
			os.Stdout.Write(o.Stdout)
		}
		if len(o.Stderr) > 0 {
			os.Stdout.Write(o.Stderr)
		}
	}
}

// --- detect ---

func detectMain(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	allFlag := fs.Bool("all", false, "list every supported ecosystem and its marker files")
	_ = fs.Parse(args)

	if *allFlag {
		for _, eco := range ecosystem.All() {
			fmt.Printf("%-12s %s\n", eco, strings.Join(ecosystem.Markers(eco), ", "))
		}
		return nil
	}

	workspace, err := resolveWorkspace(fs.Args())
	if err != nil {
		return err
	}

	cfg, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	detected, err := ecosystem.Detect(workspace)
	if err != nil {
		return err
	}
	detected = cfg.FilterEcosystems(detected)

	if len(detected) == 0 {
		fmt.Println("no known ecosystems")
		return nil
	}

	for _, eco := range detected {
		fmt.Printf("%s:\n", eco)
		for _, d := range hook.For(eco) {
			fmt.Printf("  %-24s %s\n", d.Name, d.Command())
		}
	}
	return nil
}

// --- msg ---

func msgMain(args []string) error {
	fs := flag.NewFlagSet("msg", flag.ExitOnError)
	fileFlag := fs.String("file", "", "read the message from a file instead of stdin")
	_ = fs.Parse(args)

	var data []byte
	var err error
	if *fileFlag != "" {
		data, err = os.ReadFile(*fileFlag)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading message: %w", err)
	}

	if err := commitmsg.Message(string(data)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(vmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	workspace, err := resolveWorkspace(fs.Args())
	if err != nil {
		return err
	}

	cfg, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := report.NewLRUStore(5, report.NewDiskStore())
	r := &runner.Runner{
		Workspace: workspace,
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
	}

	server := vmcp.NewServer(cfg, r, store, workspace)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

// resolveWorkspace takes the optional positional dir argument, defaulting
// to the current directory.
func resolveWorkspace(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected at most one directory argument")
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("resolving %q: %w", args[0], err)
		}
		return abs, nil
	}
	workspace, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining workspace: %w", err)
	}
	return workspace, nil
}

func newEngine(args []string, timeoutOverride time.Duration) (*workflow.Engine, *config.Config, error) {
	workspace, err := resolveWorkspace(args)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(workspace)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	timeout := cfg.Timeout()
	if timeoutOverride > 0 {
		timeout = timeoutOverride
	}

	r := &runner.Runner{
		Workspace: workspace,
		Timeout:   timeout,
		MaxOutput: cfg.MaxOutputBytes(),
	}

	return &workflow.Engine{
		Config:    cfg,
		Runner:    r,
		Workspace: workspace,
	}, cfg, nil
}
