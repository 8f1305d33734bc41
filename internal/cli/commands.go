package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"folio/internal/domain"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/seed"
)

var errIDRequired = errors.New("document id required")

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func cmdList() *Command {
	fs := newFlagSet("list")
	recent := fs.Bool("recent", false, "Most recently added first")

	return &Command{
		Flags: fs,
		Usage: "list [--recent]",
		Short: "List indexed posts",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			entries, err := svc.Docs.ListDocuments(ctx)
			if err != nil {
				return err
			}
			if *recent {
				slices.Reverse(entries)
			}

			tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTITLE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Date, e.Title)
			}
			return tw.Flush()
		},
	}
}

func cmdShow() *Command {
	return &Command{
		Flags: newFlagSet("show"),
		Usage: "show <id>",
		Short: "Print a post with its blocks as JSON",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			doc, err := svc.Docs.LoadDocument(ctx, args[0])
			if err != nil {
				return err
			}
			if doc.IsNew {
				return &domain.NotFoundError{Message: fmt.Sprintf("post %q not found", args[0])}
			}
			return writeJSON(env, doc)
		},
	}
}

func cmdDelete() *Command {
	return &Command{
		Flags: newFlagSet("delete"),
		Usage: "delete <id>",
		Short: "Remove a post from every store",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			if err := svc.Docs.DeleteDocument(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, "Deleted", args[0])
			return nil
		},
	}
}

func cmdReconcile() *Command {
	fs := newFlagSet("reconcile")
	dryRun := fs.Bool("dry-run", false, "Report drift without writing")
	prune := fs.Bool("prune", false, "Remove index entries whose artifact is gone")
	rerender := fs.Bool("rerender", false, "Rewrite artifacts from their stored blocks")

	return &Command{
		Flags: fs,
		Usage: "reconcile [--dry-run] [--prune] [--rerender]",
		Short: "Repair drift between index, snippets and artifacts",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			report, err := svc.Reconcile.Reconcile(ctx, blogSvc.ReconcileOptions{
				DryRun:   *dryRun,
				Prune:    *prune,
				Rerender: *rerender,
			})
			if err != nil {
				return err
			}
			return writeJSON(env, report)
		},
	}
}

func cmdReindex() *Command {
	return &Command{
		Flags: newFlagSet("reindex"),
		Usage: "reindex",
		Short: "Rebuild the search index from the stores",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			n, err := svc.Search.Reindex(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "Indexed %d posts\n", n)
			return nil
		},
	}
}

func cmdExport() *Command {
	fs := newFlagSet("export")
	format := fs.StringP("format", "f", "html", "Output format: html, markdown or text")

	return &Command{
		Flags: fs,
		Usage: "export <id> [--format]",
		Short: "Write a post's rendered body in another format",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			exported, err := svc.Docs.ExportDocument(ctx, args[0], *format)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, exported.Body)
			return nil
		},
	}
}

func cmdSeed() *Command {
	return &Command{
		Flags: newFlagSet("seed"),
		Usage: "seed",
		Short: "Create sample posts",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			svc, err := env.Services(ctx)
			if err != nil {
				return err
			}

			ids, err := seed.NewSeeder(svc.Docs, svc.Blocks, svc.Logger).Seed(ctx)
			for _, id := range ids {
				fmt.Fprintln(env.Stdout, "Created", id)
			}
			return err
		},
	}
}

func writeJSON(env *Env, v any) error {
	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
