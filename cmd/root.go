package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/ramanasai/moodpulse/internal/clock"
	"github.com/ramanasai/moodpulse/internal/config"
	"github.com/ramanasai/moodpulse/internal/db"
	"github.com/ramanasai/moodpulse/internal/encryption"
	"github.com/ramanasai/moodpulse/internal/logging"
	"github.com/ramanasai/moodpulse/internal/utils"
	"github.com/ramanasai/moodpulse/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs. It is filled in by the root
// command's PersistentPreRunE and the store is closed after each run.
type app struct {
	clock  clock.Clock
	out    io.Writer
	cfg    config.Config
	log    *zap.Logger
	loc    *time.Location
	space  *affect.Space
	engine *analytics.Engine

	configPath string
	dbPath     string
	store      *db.Store
}

func Execute() error {
	return NewRootCmd(clock.DefaultClock{}, os.Stdout).Execute()
}

// NewRootCmd builds the command tree around clk and out.
func NewRootCmd(clk clock.Clock, out io.Writer) *cobra.Command {
	a := &app{clock: clk, out: out, space: affect.Default()}

	root := &cobra.Command{
		Use:          "moodpulse",
		Short:        "Mood check-ins on the energy/pleasantness grid",
		Version:      version.GetVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd {
				return nil
			}
			return a.setup()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/moodpulse/config.yaml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database file (overrides storage.path)")

	root.AddCommand(
		newCheckinCmd(a),
		newSuggestCmd(a),
		newEmotionsCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newStatsCmd(a),
		newStreakCmd(a),
		newValuesCmd(a),
		newVersionCmd(a),
	)
	// close the store even when a command fails
	for _, c := range root.Commands() {
		if c.RunE == nil {
			continue
		}
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := a.close(); err == nil {
					err = cerr
				}
			}()
			return run(cmd, args)
		}
	}
	return root
}

func (a *app) setup() error {
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = logging.New(cfg.Log); err != nil {
		return err
	}
	if a.loc, err = cfg.Location(); err != nil {
		return err
	}
	a.engine, err = analytics.NewEngine(cfg.Buckets, cfg.Insights, a.log)
	return err
}

// openStore opens the database on first use.
func (a *app) openStore() (*db.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	path := a.dbPath
	if path == "" {
		path = a.cfg.Storage.Path
	}
	if path == "" {
		var err error
		if path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}

	opts := []db.Option{db.WithLogger(a.log)}
	if pass := os.Getenv(a.cfg.Privacy.PassphraseEnv); pass != "" && a.cfg.Privacy.PassphraseEnv != "" {
		enc, err := encryption.NewEncryptor(pass, filepath.Join(filepath.Dir(path), "salt"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, db.WithEncryptor(enc, a.cfg.Privacy.EncryptNotes))
	} else if a.cfg.Privacy.EncryptNotes {
		return nil, fmt.Errorf("%w: set %s", encryption.ErrNoPassphrase, a.cfg.Privacy.PassphraseEnv)
	}

	store, err := db.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) close() error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) renderer(format string) (*utils.Renderer, error) {
	f, err := utils.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc := utils.DefaultRenderConfig(a.cfg.Theme)
	rc.Format = f
	rc.Location = a.loc
	rc.Space = a.space
	return utils.NewRenderer(rc), nil
}

func (a *app) print(s string) error {
	_, err := io.WriteString(a.out, s)
	return err
}
