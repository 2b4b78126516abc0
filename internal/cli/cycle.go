package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gxrwes/CS2QuickSetup/internal/generator"
	"github.com/gxrwes/CS2QuickSetup/internal/history"
	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/preview"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// Locker serializes generation cycles
type Locker interface {
	Lock(ctx context.Context) error
	Unlock() error
}

// GenerationLogger records finished cycles
type GenerationLogger interface {
	Log(entry types.GenerationEntry) (types.GenerationEntry, error)
}

// Result is the outcome of one generation cycle
type Result struct {
	Config   *types.GeneratedConfig
	Document string
	Lines    []preview.Line
	Stamp    generator.Stamp
}

// Changed returns the number of lines that differ from the previous document
func (r Result) Changed() int {
	return preview.Changed(r.Lines)
}

// Cycle runs load-previous / generate / diff / store-previous as one unit
type Cycle struct {
	Sources Sources
	Options generator.Options
	Author  string

	Store  history.Store // nil keeps the previous document in memory only
	Lock   Locker        // nil disables cross-process locking
	Differ *preview.Differ
	Now    func() time.Time

	// Save writes the document before it becomes the previous document; nil skips writing
	Save func(doc string) error

	// KeepHistory appends each cycle to the generation log when Store supports it
	KeepHistory bool
	OutputPath  string
}

// Run executes one cycle
func (c *Cycle) Run(ctx context.Context) (Result, error) {
	if c.Differ == nil {
		c.Differ = preview.NewDiffer("")
	}

	if c.Lock != nil {
		if err := c.Lock.Lock(ctx); err != nil {
			return Result{}, err
		}
		defer func() {
			if err := c.Lock.Unlock(); err != nil {
				log.Warn("Failed to release cycle lock", "error", err)
			}
		}()
	}

	cfg, err := LoadConfig(c.Sources)
	if err != nil {
		return Result{}, err
	}

	if c.Store != nil {
		previous, err := history.Previous(c.Store)
		if err != nil {
			return Result{}, fmt.Errorf("failed to load previous document: %w", err)
		}
		c.Differ.Reset(previous)
	}

	stamp := generator.NewStamp(c.Now)
	if c.Author != "" {
		stamp.Author = c.Author
	}
	doc := generator.GenerateWithOptions(cfg, stamp, c.Options)

	if c.Save != nil {
		if err := c.Save(doc); err != nil {
			return Result{}, err
		}
	}

	lines := c.Differ.Preview(doc)

	if c.Store != nil {
		if _, err := c.Store.StorePrevious(types.PreviousDocument{
			Version:     stamp.Version,
			GeneratedAt: stamp.GeneratedAt,
			Document:    doc,
		}); err != nil {
			return Result{}, fmt.Errorf("failed to store previous document: %w", err)
		}

		if logger, ok := c.Store.(GenerationLogger); ok && c.KeepHistory {
			if _, err := logger.Log(types.GenerationEntry{
				GeneratedAt:  stamp.GeneratedAt,
				Version:      stamp.Version,
				OutputPath:   c.OutputPath,
				ChangedLines: preview.Changed(lines),
				TotalLines:   len(lines),
			}); err != nil {
				log.Warn("Failed to log generation", "error", err)
			}
		}
	}

	log.Debug("Generated document", "lines", len(lines), "changed", preview.Changed(lines))

	return Result{
		Config:   cfg,
		Document: doc,
		Lines:    lines,
		Stamp:    stamp,
	}, nil
}
