package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/cache"
	"github.com/The-ChandanKV/AI-Code-Explainer/complexity"
	"github.com/The-ChandanKV/AI-Code-Explainer/detect"
	"github.com/The-ChandanKV/AI-Code-Explainer/genai"
	"github.com/The-ChandanKV/AI-Code-Explainer/infer"
	"github.com/The-ChandanKV/AI-Code-Explainer/pattern"
	"github.com/The-ChandanKV/AI-Code-Explainer/pipeline"
	"github.com/The-ChandanKV/AI-Code-Explainer/segment"
	expslog "github.com/The-ChandanKV/AI-Code-Explainer/slog"
	"github.com/The-ChandanKV/AI-Code-Explainer/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin supplies snippet text when run is called without a file.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ResultService explainer.ResultService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("explain"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'explain --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set EXPLAINER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ResultService = sqlite.NewResultService(m.DB)
	deps.DB = m.DB
	deps.Results = m.ResultService

	// Wire the explanation pipeline only for the run command; the history
	// commands never touch the model.
	if cmd == "run" {
		assembler, err := m.buildAssembler(cli.Run, stderr)
		if err != nil {
			return err
		}
		deps.Assembler = assembler
	}

	return kongCtx.Run(deps)
}

// buildAssembler loads the model and wires the full pipeline for one run.
func (m *Main) buildAssembler(cmd RunCmd, stderr io.Writer) (*pipeline.Assembler, error) {
	// One instance per worker keeps the pool from serializing the pipeline;
	// instances are loaded separately so no two workers share one.
	instances := make([]explainer.Model, max(1, cmd.Concurrency))
	var model *pattern.Model
	for i := range instances {
		var err error
		model, err = loadModel(cmd.Model)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: pass --model with a readable rules file, or omit it for the built-in model")
			return nil, err
		}
		instances[i] = model
	}

	var tokens explainer.TokenCounter = pattern.NewTokenCounter()
	if cmd.Tokenizer != "" {
		counter, err := genai.NewTokenCounter(cmd.Tokenizer)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		tokens = counter
	}

	engine, err := infer.NewEngine(infer.Config{
		Models:          instances,
		Tokens:          tokens,
		MaxInputTokens:  model.MaxInputTokens(),
		MinContextUnits: 1,
	})
	if err != nil {
		return nil, err
	}

	assembler := &pipeline.Assembler{
		Detector:    detect.NewDetector(),
		Segmenter:   segment.NewSegmenter(),
		Scorer:      complexity.NewAnalyzer(),
		Advisor:     pattern.NewAdvisor(),
		Engine:      engine,
		Cache:       cache.New(resultCacheSize),
		Concurrency: cmd.Concurrency,
	}

	if cmd.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		assembler.Engine = expslog.NewLoggingEngine(engine, logger)
		assembler.Segmenter = expslog.NewLoggingSegmenter(assembler.Segmenter, logger)
	}

	return assembler, nil
}

// loadModel loads the rules model from an explicit path, or the built-in
// default when no path is given. A missing explicit path is startup-fatal.
func loadModel(path string) (*pattern.Model, error) {
	if path == "" {
		return pattern.Default(), nil
	}
	return pattern.Load(path)
}

// resultCacheSize bounds the in-process result cache.
const resultCacheSize = 64

func defaultDBPath() string {
	if path := os.Getenv("EXPLAINER_DB"); path != "" {
		return path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "explainer.db"
	}
	dir := filepath.Join(base, "explainer")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "explainer.db")
}
