package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-arrower/records"
	recordscmd "github.com/go-arrower/records/cmd"
	finance "github.com/go-arrower/records/contexts/finance/init"
	grading "github.com/go-arrower/records/contexts/grading/init"
	health "github.com/go-arrower/records/contexts/health/init"
	inventory "github.com/go-arrower/records/contexts/inventory/init"
	warehouse "github.com/go-arrower/records/contexts/warehouse/init"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "records",
		Short: "Records keeps entities of small business domains in generic repositories.",
		Long: `Each domain is a context with its own command:
health, warehouse, inventory, grading and finance.
Use serve to expose all of them over http.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	// parsed by loadConfig before the commands are built, it is declared here for the help output only
	root.PersistentFlags().String("config", "", "path to a configuration file")

	return root
}

// setupper is a context that needs its sample data before it can be served.
type setupper interface {
	Setup(ctx context.Context) error
}

// NewRecordsCLI initialises all contexts on di and returns the root command.
func NewRecordsCLI(ctx context.Context, di *records.Container, osSignal <-chan os.Signal) (*cobra.Command, error) {
	hc, err := health.NewHealthContext(ctx, di)
	if err != nil {
		return nil, err //nolint:wrapcheck // context names itself
	}

	wc, err := warehouse.NewWarehouseContext(ctx, di)
	if err != nil {
		return nil, err //nolint:wrapcheck // context names itself
	}

	ic, err := inventory.NewInventoryContext(ctx, di)
	if err != nil {
		return nil, err //nolint:wrapcheck // context names itself
	}

	gc, err := grading.NewGradingContext(ctx, di)
	if err != nil {
		return nil, err //nolint:wrapcheck // context names itself
	}

	fc, err := finance.NewFinanceContext(ctx, di)
	if err != nil {
		return nil, err //nolint:wrapcheck // context names itself
	}

	rootCmd := newRootCmd()
	rootCmd.AddCommand(recordscmd.Version("records"))
	rootCmd.AddCommand(hc.Command(), wc.Command(), ic.Command(), gc.Command(), fc.Command())
	rootCmd.AddCommand(newServeCmd(di, osSignal, []setupper{hc, wc, ic}))

	return rootCmd, nil
}

// loadConfig reads the configuration from the defaults, the file given by --config, and the environment.
func loadConfig(args []string) (*records.Config, error) {
	flags := pflag.NewFlagSet("records", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)

	path := flags.String("config", "", "")
	_ = flags.Parse(args) // all other flags belong to the commands

	vip := records.DefaultViper()

	if *path != "" {
		vip.SetConfigFile(*path)

		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var conf records.Config
	if err := vip.Unmarshal(&conf); err != nil {
		return nil, err //nolint:wrapcheck // error is already descriptive
	}

	return &conf, nil
}

// Execute runs the records cli.
func Execute() {
	if err := execute(context.Background(), os.Args[1:]); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string) error {
	conf, err := loadConfig(args)
	if err != nil {
		return err
	}

	di, err := records.InitialiseDefaultDependencies(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not initialise dependencies: %w", err)
	}

	defer func() {
		_ = di.Shutdown(context.WithoutCancel(ctx))
	}()

	cli, err := NewRecordsCLI(ctx, di, NewInterruptSignalChannel())
	if err != nil {
		return err
	}

	cli.SetArgs(args)

	return cli.ExecuteContext(ctx) //nolint:wrapcheck // cobra errors are meant for the user
}
