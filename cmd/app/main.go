package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/penna/internal"
	"github.com/starford/penna/internal/collection"
	"github.com/starford/penna/internal/editor"
	"github.com/starford/penna/internal/mcpserver"
	"github.com/starford/penna/internal/models"
	"github.com/starford/penna/internal/shell"
	"github.com/starford/penna/internal/transport"
	"github.com/starford/penna/internal/ui"
	pkgconfig "github.com/starford/penna/pkg/config"
)

// env holds everything a client command needs, assembled from flags and the
// config file.
type env struct {
	cfg   *internal.Config
	store *collection.Store
	theme ui.Theme
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if api := cmd.String("api"); api != "" {
		cfg.API.BaseURL = api
	}
	if theme := cmd.String("theme"); theme != "" {
		cfg.UI.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func clientEnv(cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	client := transport.New(cfg.API.BaseURL, cfg.API.Timeout)
	return &env{
		cfg:   cfg,
		store: collection.NewStore(client),
		theme: ui.NewTheme(cfg.UI.Theme),
	}, nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.store.Reload(ctx); err != nil {
		return err
	}
	notes := collection.Filter(e.store.Notes(), cmd.String("query"))

	if cmd.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(notes)
	}
	ui.RenderList(os.Stdout, e.theme, notes)
	return nil
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}

	draft := models.Draft{Title: cmd.String("title"), Content: cmd.String("content")}
	if draft.Title == "" {
		edited, path, err := editor.Compose(draft)
		if err != nil {
			return err
		}
		defer os.Remove(path)
		draft = edited
	}
	if draft.Trimmed().Title == "" {
		ui.Info(os.Stderr, e.theme, "empty title, nothing created")
		return nil
	}

	saved, err := e.store.Save(ctx, draft, nil)
	if err != nil {
		return err
	}
	ui.Success(os.Stdout, e.theme, "created %q (%s)", saved.Title, saved.ID)
	return nil
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: penna edit <id>")
	}
	id := models.NoteID(cmd.Args().First())

	if err := e.store.Reload(ctx); err != nil {
		return err
	}
	note, ok := e.store.Find(id)
	if !ok {
		return fmt.Errorf("no note with id %s", id)
	}

	// Flag-only edit: skip the external editor entirely.
	if cmd.String("title") != "" || cmd.String("content") != "" {
		draft := models.DraftFromNote(note)
		if t := cmd.String("title"); t != "" {
			draft.Title = t
		}
		if c := cmd.String("content"); c != "" {
			draft.Content = c
		}
		saved, err := e.store.Save(ctx, draft, &id)
		if err != nil {
			return err
		}
		ui.Success(os.Stdout, e.theme, "updated %q", saved.Title)
		return nil
	}

	edited, path, err := editor.Compose(models.DraftFromNote(note))
	if err != nil {
		return err
	}
	defer os.Remove(path)

	if edited.Trimmed().Title != "" {
		if _, err := e.store.Save(ctx, edited, &id); err != nil {
			return err
		}
		ui.Success(os.Stdout, e.theme, "updated %q", edited.Trimmed().Title)
	}

	if !cmd.Bool("watch") {
		return nil
	}

	// Live mode: keep the draft file around and push an update per save
	// until interrupted.
	ui.Info(os.Stderr, e.theme, "watching %s, ^C to stop", path)
	return editor.Watch(ctx, path, 200*time.Millisecond, slog.Default(), func(d models.Draft) {
		if d.Trimmed().Title == "" {
			return
		}
		if _, err := e.store.Save(ctx, d, &id); err != nil {
			ui.ErrorBanner(os.Stderr, e.theme, err.Error())
			return
		}
		ui.Success(os.Stderr, e.theme, "saved %s", time.Now().Format("15:04:05"))
	})
}

func runDelete(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: penna delete <id>")
	}
	id := models.NoteID(cmd.Args().First())

	if !cmd.Bool("yes") {
		fmt.Fprintf(os.Stderr, "delete note %s? [y/N] ", id)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "yes" {
			return nil
		}
	}

	if err := e.store.Remove(ctx, id); err != nil {
		return err
	}
	ui.Success(os.Stdout, e.theme, "deleted %s", id)
	return nil
}

func runBrowse(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}
	return shell.New(e.store, e.theme, os.Stdin, os.Stdout).Run(ctx)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Serve.Port = int(port)
	}
	if db := cmd.String("db"); db != "" {
		cfg.Serve.SQLitePath = db
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return internal.RunServe(ctx, internal.WithConfig(cfg))
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	e, err := clientEnv(cmd)
	if err != nil {
		return err
	}
	// MCP speaks on stdout; keep logs on stderr only.
	return mcpserver.New(e.store).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "penna",
		Usage: "Client for a personal notes service: list, search, create, edit, delete",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "penna.yaml",
				Sources: cli.EnvVars("PENNA_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Base URL of the notes service",
				Sources: cli.EnvVars("PENNA_API_URL"),
			},
			&cli.StringFlag{
				Name:    "theme",
				Usage:   "Output theme: light, dark, or mono",
				Sources: cli.EnvVars("PENNA_THEME"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List notes, optionally filtered",
				Action: runList,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by title/content substring"},
					&cli.BoolFlag{Name: "json", Usage: "Emit raw JSON instead of a listing"},
				},
			},
			{
				Name:   "create",
				Usage:  "Create a note (opens $EDITOR unless --title is given)",
				Action: runCreate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
					&cli.StringFlag{Name: "content", Usage: "Note content"},
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit a note by id",
				ArgsUsage: "<id>",
				Action:    runEdit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Replace the title without opening $EDITOR"},
					&cli.StringFlag{Name: "content", Usage: "Replace the content without opening $EDITOR"},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Keep watching the draft file and save on every write"},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a note by id",
				ArgsUsage: "<id>",
				Action:    runDelete,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
			},
			{
				Name:   "browse",
				Usage:  "Interactive notes browser",
				Action: runBrowse,
			},
			{
				Name:   "serve",
				Usage:  "Run the bundled development notes service",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Usage: "Listen port"},
					&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Expose the notes operations as MCP tools on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
