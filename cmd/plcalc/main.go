// Command plcalc evaluates empirical path-loss models from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wiless/propagation/config"
	"github.com/wiless/propagation/pathloss"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	out     io.Writer
	cfgFile string
	verbose bool
	params  []string
	cfg     config.AppConfig
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: out}

	rootCmd := &cobra.Command{
		Use:   "plcalc",
		Short: "plcalc - empirical radio path-loss calculator",
		Long: `plcalc computes path loss and received power with the ECC-33, SUI,
COST-231 Walfisch-Ikegami, Okumura-Hata and free-space models.

Settings come from --config (YAML, TOML or JSON), PLCALC_* environment
variables and flags, flags taking precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log model terms at debug level")
	pf.String("model", "", "path-loss model (ecc33, sui, cost231wi, okumurahata, freespace)")
	pf.String("environment", "", "environment or terrain category")
	pf.String("formula", "", "formula revision (ECC-33: squaredlog, linearlog; SUI: standard, legacy)")
	pf.Float64("txpower", 0, "transmit power in dBm")
	pf.StringArrayVar(&a.params, "param", nil, "model parameter as name=value, repeatable")

	for key, flag := range map[string]string{
		"model.type":        "model",
		"model.environment": "environment",
		"model.formula":     "formula",
		"txpower":           "txpower",
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			log.Panicf("bind flag %s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(a.lossCmd(), a.sweepCmd(), a.linksCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	if a.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	if err := config.Read(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Decode(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// model builds and validates the configured model with the --param
// overrides applied.
func (a *app) model() (pathloss.Model, error) {
	s, err := a.cfg.ModelSetting()
	if err != nil {
		return nil, err
	}
	for _, p := range a.params {
		name, value, err := parseParam(p)
		if err != nil {
			return nil, err
		}
		s.AddParam(name, value)
	}
	m, err := pathloss.NewValidated(s)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"model":  m.Type(),
		"params": s.Parameters(),
	}).Debug("model ready")
	return m, nil
}

// parseParam splits name=value. Booleans are accepted as 1 and 0.
func parseParam(p string) (string, float64, error) {
	kv := strings.SplitN(p, "=", 2)
	if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
		return "", 0, errors.Errorf("parameter %q is not name=value", p)
	}
	name, raw := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return name, f, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		if b {
			return name, 1, nil
		}
		return name, 0, nil
	}
	return "", 0, errors.Errorf("parameter %s: %q is not a number", name, raw)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
