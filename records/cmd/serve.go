package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records"
	recordscmd "github.com/go-arrower/records/cmd"
)

// NewInterruptSignalChannel returns a channel listening for os.Signals the records cli will react to.
func NewInterruptSignalChannel() chan os.Signal {
	signalsToListenTo := []os.Signal{
		syscall.SIGINT,                   // Strg + c
		syscall.SIGTERM, syscall.SIGQUIT, // terminate but finish/cleanup first, e.g. kill
		os.Interrupt,
	}

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, signalsToListenTo...)

	return osSignal
}

func newServeCmd(di *records.Container, osSignal <-chan os.Signal, contexts []setupper) *cobra.Command {
	return &cobra.Command{
		Use:                   "serve",
		Short:                 "Serve all contexts over http until interrupted",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(c.Context())
			defer cancel()

			for _, sc := range contexts {
				if err := sc.Setup(ctx); err != nil {
					return err //nolint:wrapcheck // context names itself
				}
			}

			go func() {
				select {
				case <-osSignal:
					cancel()
				case <-ctx.Done():
				}
			}()

			recordscmd.Heading(c.OutOrStdout(), fmt.Sprintf("serving on :%d", di.Config.HTTP.Port))

			return di.Start(ctx) //nolint:wrapcheck // servers are named in the error
		},
	}
}
