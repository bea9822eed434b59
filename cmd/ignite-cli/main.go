// Command ignite-cli is a TCP client for talking to an ignite-server
// instance: get, set, and remove keys from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/iamNilotpal/ignite/pkg/ignite/client"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:   "ignite-cli",
		Short: "Talk to an ignite-server over the network",
	}
	root.PersistentFlags().StringVar(&addr, "addr", options.DefaultBindAddr, "address of the ignite-server to connect to")

	root.AddCommand(
		newGetCmd(&addr),
		newSetCmd(&addr),
		newRemoveCmd(&addr),
	)

	return root
}

func newGetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored for KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			value, found, err := c.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "Key not found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Set(args[0], args[1])
		},
	}
}

func newRemoveCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:     "remove KEY",
		Aliases: []string{"rm"},
		Short:   "Delete KEY",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Dial(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Remove(args[0]); err != nil {
				if errors.Is(err, client.ErrKeyNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "Key not found")
					os.Exit(1)
				}
				return err
			}
			return nil
		},
	}
}
