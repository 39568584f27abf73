package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	cli "github.com/urfave/cli/v3"

	"deckmerge/internal/config"
	"deckmerge/internal/docs"
	"deckmerge/internal/inspect"
	"deckmerge/internal/merge"
	"deckmerge/internal/scaffold"
	"deckmerge/internal/server"
	"deckmerge/internal/state"
	"deckmerge/internal/ux"
)

const defaultConfigFile = "deckmerge.yaml"

func main() {
	app := &cli.Command{
		Name:        "deckmerge",
		Usage:       "Generate use case status decks from CSV exports",
		Description: "Run 'deckmerge docs' for documentation on placeholders, region profiles, and the server.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to deckmerge.yaml"},
		},
		Commands: []*cli.Command{
			generateCmd(),
			serveCmd(),
			inspectCmd(),
			verifyCmd(),
			statusCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: an explicit --config path, a
// deckmerge.yaml in the working directory, or the built-in defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(defaultConfigFile)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("loading %s: %w", defaultConfigFile, err)
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a report from a CSV export",
		ArgsUsage: "<csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Usage: "Override the template path"},
			&cli.StringFlag{Name: "out", Usage: "Override the output directory"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			csvPath := cmd.Args().First()
			if csvPath == "" {
				return fmt.Errorf("csv argument is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if tpl := cmd.String("template"); tpl != "" {
				cfg.Template = tpl
			}
			if out := cmd.String("out"); out != "" {
				cfg.OutputDir = out
			}

			sum, err := merge.Generate(cfg, csvPath, ux.ConsoleObserver{})
			if err != nil {
				return err
			}
			if err := sum.Save(cfg.OutputDir); err != nil {
				return fmt.Errorf("recording run summary: %w", err)
			}
			ux.Success(sum.Output)
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the upload/download web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":5000", Usage: "Listen address"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			addr := cmd.String("addr")
			fmt.Printf("%sListening on%s %s\n", ux.Bold, ux.Reset, addr)
			return server.New(cfg, ux.ConsoleObserver{}).ListenAndServe(addr)
		},
	}
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Dump the text and placeholder tokens a deck exposes",
		ArgsUsage: "<pptx>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("pptx argument is required")
			}
			reports, err := inspect.Scan(path)
			if err != nil {
				return err
			}
			for _, rep := range reports {
				fmt.Printf("\n%sSlide %d:%s\n", ux.Bold, rep.Number, ux.Reset)
				for _, e := range rep.Entries {
					kind := "shape"
					if e.Cell {
						kind = "cell"
					}
					fmt.Printf("  %s%-5s%s %-20s %s\n", ux.Dim, kind, ux.Reset, e.Shape, e.Text)
					for _, tok := range e.Tokens {
						fmt.Printf("        %s%s%s\n", ux.Cyan, tok, ux.Reset)
					}
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check a generated deck for leftover placeholders and broken identities",
		ArgsUsage: "<pptx>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("pptx argument is required")
			}
			res, err := inspect.Verify(path)
			if err != nil {
				return err
			}
			for _, l := range res.Leftovers {
				fmt.Printf("%s⚠ slide %d%s %s: leftover %s\n", ux.Yellow, l.Slide, ux.Reset, l.Shape, l.Token)
			}
			for _, d := range res.DuplicateIDs {
				fmt.Printf("%s✗ slide %d%s duplicate shape id %s\n", ux.Red, d.Slide, ux.Reset, d.ID)
			}
			if !res.Clean() {
				return fmt.Errorf("%d leftover placeholders, %d duplicate ids across %d slides",
					len(res.Leftovers), len(res.DuplicateIDs), res.Slides)
			}
			fmt.Printf("%s✓ clean%s (%d slides)\n", ux.Green, ux.Reset, res.Slides)
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the last run's summary",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sum, err := state.Load(cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("loading run summary: %w", err)
			}
			ux.RenderSummary(sum)
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter deckmerge.yaml",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'deckmerge docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
