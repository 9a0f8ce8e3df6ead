package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Totarae/phishcheck/internal/journal"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// NewHistoryCmd создаёт команду history.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent checks from the journal",
		Long: `History prints the most recent checks recorded in the journal as a
markdown table. The journal is the PostgreSQL database from --journal-dsn or
JOURNAL_DSN when set, otherwise the SQLite file from --journal or JOURNAL_PATH.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	cmd.Flags().IntP("limit", "n", journal.DefaultLimit, "Number of entries to print")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	j, err := journal.Connect(cmd.Context(), cfg.JournalPath, cfg.JournalDSN, logger)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	md := markdown.NewMarkdown(cmd.OutOrStdout())
	if len(entries) == 0 {
		md.PlainText("No checks recorded.")
		return md.Build()
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format(time.DateTime),
			tableCell(e.URL),
			string(e.State),
			tableCell(truncateString(e.Detail, 60)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "URL", "State", "Detail"},
		Rows:   rows,
	})
	return md.Build()
}

// truncateString обрезает строку до maxLen символов с многоточием.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// tableCell экранирует то, что ломает строку markdown-таблицы.
func tableCell(s string) string {
	return cellEscaper.Replace(s)
}
