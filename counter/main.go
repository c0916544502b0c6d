// Command counter launches 4 goroutines that each increment one shared
// integer 100 000 times under a mutex, joins them and prints the total.
//
// Run:
//
//	go run ./counter            # prints 400000
//	go run -race ./counter      # same, with the race detector watching
//	COUNTER_UNITS=1 COUNTER_INCREMENTS=1 go run ./counter   # prints 1
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marcodamonte/ownership/counter/sharedcounter"
)

const envPrefix = "COUNTER"

func main() {
	if err := execute(newRootCmd()); err != nil {
		// A unit failure is fatal: nothing else is printed on stdout.
		os.Exit(1)
	}
}

// loggedError marks an error that run already wrote to the logger.
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

// execute runs cmd and reports on stderr any error that was not logged on
// the way out (bad flags, stray arguments, bad settings).
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	var logged loggedError
	if err != nil && !errors.As(err, &logged) {
		fmt.Fprintln(cmd.ErrOrStderr(), "counter:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "counter",
		Short:         "Increment a mutex-guarded counter from several goroutines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Int("units", sharedcounter.DefaultUnits, "number of goroutines incrementing the counter")
	flags.Int("increments", sharedcounter.DefaultIncrements, "increments performed by each goroutine")
	flags.Bool("recover-poison", false, "keep going after a goroutine panics while holding the lock")
	flags.String("log-level", "warn", "log level written to stderr (debug, info, warn, error)")

	bindFlags(v, flags)

	return cmd
}

// bindFlags lets COUNTER_<FLAG> environment variables override defaults.
// Explicit flags win over the environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	level, err := zapcore.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}

	// viper's GetInt turns garbage into 0; cast reports it instead.
	units, err := cast.ToIntE(v.Get("units"))
	if err != nil {
		return fmt.Errorf("units: %w", err)
	}
	increments, err := cast.ToIntE(v.Get("increments"))
	if err != nil {
		return fmt.Errorf("increments: %w", err)
	}

	lggr := newLogger(cmd.ErrOrStderr(), level)
	defer func() { _ = lggr.Sync() }()

	cfg := sharedcounter.Config{
		Units:      units,
		Increments: increments,
		Logger:     lggr,
	}
	if v.GetBool("recover-poison") {
		cfg.Poison = sharedcounter.PoisonRecover
	}

	res, err := sharedcounter.Run(cfg)
	if err != nil {
		if cfg.Poison != sharedcounter.PoisonRecover || !errors.Is(err, sharedcounter.ErrUnitPanicked) {
			lggr.Error("counter failed", zap.Error(err))
			return loggedError{err}
		}
		lggr.Warn("recovered from poisoned lock", zap.Error(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Value)
	return nil
}

// newLogger builds a console logger on w (stderr) so stdout only carries the
// result.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
