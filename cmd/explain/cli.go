package main

import (
	"context"
	"io"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/pipeline"
	"github.com/The-ChandanKV/AI-Code-Explainer/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Results   explainer.ResultService
	Assembler *pipeline.Assembler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Explain a code snippet from a file or stdin"`
	History HistoryCmd `cmd:"" help:"List saved explanation results"`
	Show    ShowCmd    `cmd:"" help:"Show one saved result by ID"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved result"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	File        string `arg:"" optional:"" help:"Source file to explain (reads stdin when omitted)"`
	Lang        string `short:"l" help:"Declared language: python, javascript, java or cpp"`
	Deadline    int    `short:"d" help:"Per-request deadline in milliseconds"`
	MaxContext  int    `name:"max-context" help:"Context units rendered into each prompt"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent unit inference limit"`
	NoSave      bool   `name:"no-save" help:"Skip saving the result to history"`
	Improve     bool   `name:"improvements" help:"Include snippet-level improvement advice"`
	JSON        bool   `help:"Emit the result as JSON"`
	Model       string `help:"Path to a rules model file (built-in model when omitted)"`
	Tokenizer   string `help:"Gemini tokenizer model for token counting (lexical counter when omitted)"`
	Verbose     bool   `short:"v" help:"Log pipeline activity to stderr"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Lang   string `short:"l" help:"Filter by detected language"`
	Status string `short:"s" help:"Filter by result status"`
	Limit  int    `default:"20" help:"Maximum results to list"`
	Offset int    `help:"Results to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Result ID"`
	JSON bool   `help:"Emit the result as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Result ID"`
	Force bool   `help:"Confirm deletion"`
}
