package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/wiless/propagation/deployment"
)

func (a *app) lossCmd() *cobra.Command {
	var distances []float64
	cmd := &cobra.Command{
		Use:   "loss",
		Short: "Path loss and received power at given distances",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(distances) == 0 {
				return errors.New("at least one --distance is required")
			}
			m, err := a.model()
			if err != nil {
				return err
			}
			a.printf("# model=%v txpower=%.2f dBm\n", m.Type(), a.cfg.TxPowerDbm)
			a.printf("distance_m\tloss_db\trx_dbm\n")
			for _, d := range distances {
				loss := m.LossInDb(d)
				a.printf("%.2f\t%.4f\t%.4f\n", d, loss, a.cfg.TxPowerDbm+loss)
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVarP(&distances, "distance", "d", nil, "distance in metres, repeatable or comma separated")
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	var from, to, step float64
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Path loss over a range of distances",
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 || to < from {
				return errors.Errorf("invalid sweep %v..%v step %v", from, to, step)
			}
			m, err := a.model()
			if err != nil {
				return err
			}
			a.printf("# model=%v txpower=%.2f dBm\n", m.Type(), a.cfg.TxPowerDbm)
			a.printf("distance_m\tloss_db\trx_dbm\n")
			n := int((to-from)/step + 1e-9)
			for i := 0; i <= n; i++ {
				d := from + float64(i)*step
				loss := m.LossInDb(d)
				a.printf("%.2f\t%.4f\t%.4f\n", d, loss, a.cfg.TxPowerDbm+loss)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 100, "first distance in metres")
	cmd.Flags().Float64Var(&to, "to", 5000, "last distance in metres")
	cmd.Flags().Float64Var(&step, "step", 100, "distance step in metres")
	return cmd
}

func (a *app) linksCmd() *cobra.Command {
	var scenario string
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Best server, RSSI and SINR for every receiver of a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenario == "" {
				return errors.New("--scenario is required")
			}
			f, err := os.Open(scenario)
			if err != nil {
				return errors.Wrap(err, "open scenario")
			}
			defer f.Close()
			nodes, err := deployment.LoadScenario(f)
			if err != nil {
				return errors.Wrapf(err, "scenario %s", scenario)
			}
			m, err := a.model()
			if err != nil {
				return err
			}
			links, err := a.cfg.System().EvaluateAll(nodes, m)
			if err != nil {
				return err
			}
			a.printf("# model=%v N0=%.2f dBm\n", m.Type(), a.cfg.System().N0())
			a.printf("rx\tlinks\tbest_tx\trsrp_dbm\trssi_dbm\tsinr_db\n")
			for _, l := range links {
				a.printf("%d\t%d\t%d\t%.2f\t%.2f\t%.2f\n", l.RxNodeID, l.Links(), l.BestTxNodeID, l.BestRxPowerDbm, l.RSSI, l.SINR)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "YAML scenario file")
	return cmd
}
