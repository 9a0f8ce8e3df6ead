package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/Totarae/phishcheck/internal/journal"
	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/model"
	"github.com/Totarae/phishcheck/internal/predictor"
	"github.com/spf13/cobra"
)

// NewCheckCmd создаёт команду check.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [url]",
		Short: "Check a URL from the terminal",
		Long: `Check sends one URL to the prediction endpoint and prints the verdict.

Without an argument it reads URLs from stdin, one per line, until
"quit" or end of input.

Examples:
  phishcheck check http://example.com
  phishcheck check -p http://model:5000/predict`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
}

// terminalDisplay выводит цикл проверки в терминал: результат в stdout,
// предупреждения в stderr.
type terminalDisplay struct {
	out    io.Writer
	errOut io.Writer
}

func (d *terminalDisplay) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(d.errOut, "...")
	}
}

func (d *terminalDisplay) HideResult() {}

func (d *terminalDisplay) ShowResult(r model.Result) {
	fmt.Fprintf(d.out, "%s\n%s\n", r.Headline, r.Description)
}

func (d *terminalDisplay) Alert(msg string) {
	fmt.Fprintln(d.errOut, msg)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	texts, err := locale.Parse(cfg.Language)
	if err != nil {
		return err
	}

	opts := []checker.Option{
		checker.WithTexts(texts),
		checker.WithStrict(cfg.StrictResults, cfg.SafeLabels),
		checker.WithLogger(logger),
	}
	if cfg.JournalPath != "" || cfg.JournalDSN != "" {
		j, err := journal.Connect(ctx, cfg.JournalPath, cfg.JournalDSN, logger)
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, checker.WithRecorder(j))
	}

	display := &terminalDisplay{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	c := checker.New(predictor.NewClient(cfg.PredictURL, cfg.PredictTimeout, logger), display, opts...)

	if len(args) == 1 {
		_, err := c.Submit(ctx, args[0])
		return err
	}
	return interactive(ctx, c, cmd.InOrStdin(), cmd.ErrOrStderr())
}

// interactive - каждая строка ввода равна одному нажатию кнопки.
func interactive(ctx context.Context, c *checker.Checker, in io.Reader, prompt io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(prompt, "> ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(prompt)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(prompt)
			return <-scanErr
		}
		if strings.TrimSpace(line) == "quit" {
			return nil
		}

		// Ошибки цикла уже показаны через Alert, сеанс продолжается.
		if _, err := c.Submit(ctx, line); err != nil && ctx.Err() != nil {
			return nil
		}
	}
}
