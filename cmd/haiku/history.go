package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alwitt/haiku/db"
	"github.com/alwitt/haiku/generate"
	"github.com/alwitt/haiku/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historySearch string
	historyLimit  int
)

// printHaiku write one stored haiku
func printHaiku(out io.Writer, entry models.Haiku) {
	fmt.Fprintf(
		out, "[%s] %s (%s)\n", entry.ID, strings.ToUpper(entry.Subject), humanize.Time(entry.CreatedAt),
	)
	for _, line := range generate.PoemLines(entry.BodyText) {
		fmt.Fprintf(out, "    %s\n", line)
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved haikus, newest first",
	Long: `List saved haikus, newest first.

Examples:
  haiku history
  haiku history --limit 20
  haiku history --search ocean`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		storage, err := requireStorage()
		if err != nil {
			return err
		}
		if !storage.IsAvailable(ctx) {
			return fmt.Errorf("haiku store is unavailable")
		}

		limit := historyLimit
		if limit <= 0 {
			limit = appCfg.History.Limit
		}

		var haikus []models.Haiku
		if historySearch != "" {
			haikus = storage.Search(ctx, historySearch, limit)
		} else {
			haikus = storage.ListRecent(ctx, limit)
		}

		if len(haikus) == 0 {
			fmt.Fprintln(out, "No haikus found")
			return nil
		}
		fmt.Fprintf(out, "Showing %d of %d saved haikus\n\n", len(haikus), storage.Count(ctx))
		for _, entry := range haikus {
			printHaiku(out, entry)
			fmt.Fprintln(out)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved haiku",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := requireStorage()
		if err != nil {
			return err
		}
		entry, ok := storage.GetByID(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("haiku '%s' not found", args[0])
		}
		printHaiku(cmd.OutOrStdout(), entry)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved haiku",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := requireStorage()
		if err != nil {
			return err
		}
		if !storage.Delete(cmd.Context(), args[0]) {
			return fmt.Errorf("haiku '%s' not deleted", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var eventsSince time.Duration

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the haiku history audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := requireStorage()
		if err != nil {
			return err
		}

		filters := db.AuditEventQueryFilter{}
		if eventsSince > 0 {
			after := time.Now().Add(-eventsSince)
			filters.EventsAfter = &after
		}

		out := cmd.OutOrStdout()
		for _, event := range storage.ListEvents(cmd.Context(), filters) {
			fmt.Fprintf(
				out, "%s %-14s %s\n",
				event.CreatedAt.Local().Format(time.RFC3339), event.EventType, string(event.Metadata),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historySearch, "search", "", "only haikus whose subject contains this text")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "max haikus to list (default: history.limit)")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "only events within this long ago")

	rootCmd.AddCommand(historyCmd, showCmd, deleteCmd, eventsCmd)
}
