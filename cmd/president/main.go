package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"president-sim/internal/config"
	"president-sim/internal/rng"
	"president-sim/pkg/deck"
	"president-sim/pkg/president"
	"president-sim/pkg/report"
)

// Version is the simulator version
var Version = "v0.0.0-dev"

type cliFlags struct {
	configFile  string
	format      string
	transport   string
	turnTimeout time.Duration
	shuffle     bool
	seed        int64
}

// settings are the flags laid over the loaded configuration
type settings struct {
	format      string
	transport   string
	turnTimeout time.Duration
	maxPlayers  int
	shuffle     bool
	seed        int64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "president <players>",
		Short: "Simulate a game of President between worker goroutines",
		Long: `Deals a deck round-robin to <players> workers and plays a game of President
until one player is left holding cards.

The deck is read from stdin as whitespace separated tokens, a suit letter
(S H C D) followed by a rank (2-9 T J Q K A). Unknown tokens are skipped and
repeated cards are discarded. Use --shuffle to deal a shuffled full deck instead.`,
		Example:       `  echo "D3 D4 H2 S3" | president 2`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.configFile != "" {
				if err := os.Setenv("PRESIDENT_CONFIG_FILE", flags.configFile); err != nil {
					return err
				}
			}

			if err := config.Load(); err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := strconv.Atoi(args[0])
			if err != nil {
				cmd.PrintErrln(cmd.UsageString())
				return fmt.Errorf("invalid player count %q", args[0])
			}

			s := resolveSettings(cmd, flags, config.Instance())
			_, err = simulate(cmd.Context(), s, players, cmd.InOrStdin(), cmd.OutOrStdout())

			var pce president.PlayerCountError
			if errors.As(err, &pce) {
				cmd.PrintErrln(cmd.UsageString())
			}

			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configFile, "config", "c", "", "YAML configuration file (default $PRESIDENT_CONFIG_FILE or config.yaml)")
	f.StringVarP(&flags.format, "format", "f", "", "output format: plain, pretty or json (default pretty on a terminal, otherwise plain)")
	f.StringVarP(&flags.transport, "transport", "t", "", "worker transport: chan or pipe")
	f.DurationVar(&flags.turnTimeout, "turn-timeout", 0, "drop a player that does not reply within this duration")
	f.BoolVarP(&flags.shuffle, "shuffle", "s", false, "deal a shuffled full deck instead of reading stdin")
	f.Int64Var(&flags.seed, "seed", 0, "seed for --shuffle, zero is random")

	return cmd
}

// resolveSettings prefers flags that were set, then the configuration
func resolveSettings(cmd *cobra.Command, flags cliFlags, cfg config.Config) settings {
	s := settings{
		format:      cfg.Report.Format,
		transport:   cfg.Game.Transport,
		turnTimeout: cfg.Game.TurnTimeout,
		maxPlayers:  cfg.Game.MaxPlayers,
		shuffle:     flags.shuffle,
		seed:        cfg.Game.Seed,
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		s.format = flags.format
	}

	if changed("transport") {
		s.transport = flags.transport
	}

	if changed("turn-timeout") {
		s.turnTimeout = flags.turnTimeout
	}

	if changed("seed") {
		s.seed = flags.seed
	}

	if s.format == "" && isTerminal(cmd.OutOrStdout()) {
		s.format = report.FormatPretty
	}

	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// simulate plays one game, writing events to out as they happen
func simulate(ctx context.Context, s settings, players int, in io.Reader, out io.Writer) (*president.Result, error) {
	reporter, err := report.New(s.format, out)
	if err != nil {
		return nil, err
	}

	var d *deck.Deck
	if s.shuffle {
		d = deck.New()
		d.Shuffle(rng.New(s.seed))
	} else if d, err = deck.Read(in); err != nil {
		return nil, err
	}

	game, err := president.NewGame(logrus.StandardLogger(), d, players, president.Options{
		MaxPlayers:  s.maxPlayers,
		TurnTimeout: s.turnTimeout,
		Transport:   president.Transport(s.transport),
		Reporter:    reporter,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"game":    game.UUID(),
		"players": players,
		"cards":   len(d.Cards),
		"deck":    d.HashCode(),
	}).Debug("starting game")

	return game.Run(ctx)
}

func setupLogger() error {
	cfg := config.Instance()
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("could not parse level: %w", err)
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	return nil
}
