// Command upnpdbctl is a debug/demo host for the upnp database
// adapter: it plays the role a real media-player host would, driving
// the adapter's Database contract from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nsavage/upnpdb/internal/adapters/config"
	"github.com/nsavage/upnpdb/internal/library"
	"github.com/nsavage/upnpdb/internal/notify"
	"github.com/nsavage/upnpdb/pkg/dbapi"
)

type app struct {
	db      dbapi.Database
	printer Printer
	timeout time.Duration
}

type appKey struct{}

func fromContext(cmd *cobra.Command) *app {
	val := cmd.Context().Value(appKey{})
	if val == nil {
		return nil
	}
	return val.(*app)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func main() {
	root := &cobra.Command{
		Use:   "upnpdbctl",
		Short: "Browse and search UPnP MediaServer libraries",
	}

	var (
		iface     string
		verbose   bool
		jsonOut   bool
		timeout   time.Duration
		waitReady time.Duration
	)

	root.PersistentFlags().StringVar(&iface, "interface", "", "network interface bound by the UPnP client")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output json")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "per-command timeout (database calls take no context and do not observe it)")
	root.PersistentFlags().DurationVar(&waitReady, "wait", 3*time.Second, "time to wait for discovery after startup")

	var facade *library.Facade

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if iface == "" {
			iface = cfg.Interface
		}

		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}

		notifier, err := notify.New(notify.Config{
			Broker:   cfg.Notify.Broker,
			ClientID: fmt.Sprintf("upnpdbctl-%d", os.Getpid()),
			Topic:    cfg.Notify.Topic,
			Logger:   logger,
		})
		if err != nil {
			logger.Warn("notify disabled", zap.Error(err))
		}

		facade = library.NewFacade(library.Config{
			Interface:         iface,
			DiscoveryInterval: cfg.DiscoveryInterval.Duration(),
			CacheBytes:        cfg.Cache.SizeBytes,
			CacheTTL:          cfg.Cache.TTL.Duration(),
			Notifier:          notifier,
			Logger:            logger,
		})
		if err := facade.Open(); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		time.Sleep(waitReady)

		var printer Printer
		if jsonOut {
			printer = JSONPrinter{}
		} else {
			printer = HumanPrinter{}
		}

		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, &app{
			db:      facade,
			printer: printer,
			timeout: timeout,
		}))
		return nil
	}

	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if facade != nil {
			facade.Close()
		}
	}

	root.AddCommand(lsCommand())
	root.AddCommand(getCommand())
	root.AddCommand(searchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
