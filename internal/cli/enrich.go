package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/bulk"
	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/lookup"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill blank bibliographic fields from lookup services",
	Long: `For every book that has an ISBN but is missing title, author,
publisher, or year, queries the lookup services and fills only the
blank fields. Existing values are never overwritten. The catalog is
saved once at the end.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runEnrich),
}

var (
	enrichJobs   int
	enrichDryRun bool
)

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().IntVarP(&enrichJobs, "jobs", "j", 4, "Parallel lookup workers")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "Report what would be filled without saving")
}

func runEnrich(app *appctx.App, cmd *cobra.Command, args []string) error {
	cat := app.Store.LoadCatalog()

	candidates := map[string]*domain.Book{}
	ids := []string{}
	for _, b := range cat.Books {
		if b.ISBN != "" && needsEnrichment(b) {
			candidates[b.ID] = b
			ids = append(ids, b.ID)
		}
	}
	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "nothing to enrich")
		return nil
	}

	client := lookup.New(app.Config.LookupUserAgent, app.Config.LookupRPS, app.Log)

	var mu sync.Mutex
	filled := 0

	op := &bulk.Operation{Jobs: enrichJobs, ContinueOnError: true}
	result := op.Execute(cmd.Context(), ids, func(ctx context.Context, id string) error {
		book := candidates[id]
		res, err := client.Lookup(ctx, book.ISBN)
		if err != nil {
			if errors.Is(err, lookup.ErrNoData) {
				app.Log.Debug().Str("isbn", book.ISBN).Msg("no lookup data")
				return nil
			}
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		if fillFromLookup(book, res) {
			filled++
		}
		return nil
	})

	result.PrintSummary(out)
	fmt.Fprintf(out, "filled fields on %d book(s)\n", filled)

	if err := checkBulkOutcome(result, app.Log); err != nil {
		return err
	}

	if enrichDryRun {
		fmt.Fprintln(out, "dry run, nothing saved")
		return nil
	}
	if filled == 0 {
		return nil
	}
	return app.Store.SaveCatalog(cat, "catalog.enriched", map[string]int{"filled": filled})
}

// checkBulkOutcome maps a bulk result to a command error. A partial
// run still saves whatever was filled; only a fully failed run aborts.
func checkBulkOutcome(r *bulk.Result, log zerolog.Logger) error {
	switch r.ExitCode() {
	case 0:
		return nil
	case 5:
		log.Warn().Int("failed", r.Failed).Int("succeeded", r.Succeeded).
			Msg("some lookups failed, keeping partial results")
		return nil
	default:
		return fmt.Errorf("all %d lookups failed", r.Failed)
	}
}

func needsEnrichment(b *domain.Book) bool {
	return b.Title == "" || b.Author == "" || b.Publisher == "" || b.Year == ""
}

// fillFromLookup copies lookup fields into blank slots only and
// reports whether anything changed.
func fillFromLookup(b *domain.Book, res *lookup.Result) bool {
	changed := false
	if b.Title == "" && res.Title != "" {
		b.Title = res.Title
		changed = true
	}
	if b.Author == "" && res.Author != "" {
		b.Author = res.Author
		changed = true
	}
	if b.Publisher == "" && res.Publisher != "" {
		b.Publisher = res.Publisher
		changed = true
	}
	if b.Year == "" && res.Year != "" {
		b.Year = res.Year
		changed = true
	}
	if res.Cover != "" && b.Extra("cover") == "" {
		b.SetExtra("cover", res.Cover)
		changed = true
	}
	return changed
}
