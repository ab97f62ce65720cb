// Package commands holds the cobra command tree of the tenancy CLI.
package commands

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/beesaferoot/tenancy/internal/config"
	"github.com/beesaferoot/tenancy/internal/images"
	"github.com/beesaferoot/tenancy/internal/metrics"
	"github.com/beesaferoot/tenancy/internal/store"
	"github.com/beesaferoot/tenancy/internal/tenancy"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	store    *store.Store
	svc      *tenancy.Service
}

// NewRootCmd builds the command tree.
func NewRootCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	a := &app{cfg: cfg, log: logger, registry: prometheus.NewRegistry()}

	root := &cobra.Command{
		Use:           "tenancy",
		Short:         "Operate the tenancy core",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.logMetrics()
			return a.close()
		},
	}
	root.PersistentFlags().Uint("as", 0, "ID of the acting user")

	root.AddCommand(
		a.migrateCmd(),
		a.usersCmd(),
		a.propertiesCmd(),
		a.leasesCmd(),
		a.paymentsCmd(),
		a.notificationsCmd(),
	)
	return root
}

func (a *app) openStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	st, err := store.Open(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *app) service() (*tenancy.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.svc = tenancy.New(st,
		tenancy.WithLogger(a.log),
		tenancy.WithMetrics(metrics.New(a.registry)),
		tenancy.WithImages(images.NewFromConfig(a.cfg.Uploads)),
	)
	return a.svc, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.svc = nil, nil
	return err
}

// logMetrics reports the counters touched by this invocation at debug level.
func (a *app) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.log.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"name", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			a.log.Debug("metric", attrs...)
		}
	}
}
