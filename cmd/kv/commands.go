package kv

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value...]",
		Short: "Sets the value for a key (the value may consist of several words)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcClient.InsertString(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := rpcClient.GetString(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, value=%s\n", args[0], value)
			return nil
		},
	}
	rmCmd = &cobra.Command{
		Use:   "rm [key]",
		Short: "Removes a key and prints its prior value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := rpcClient.RemoveString(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, removed=%s\n", args[0], value)
			return nil
		},
	}
	clrCmd = &cobra.Command{
		Use:   "clr",
		Short: "Removes all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcClient.ClearStrings()
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key]",
		Short: "Increments the counter at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rpcClient.Incr(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, value=%d\n", args[0], n)
			return nil
		},
	}
	decrCmd = &cobra.Command{
		Use:   "decr [key]",
		Short: "Decrements the counter at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rpcClient.Decr(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, value=%d\n", args[0], n)
			return nil
		},
	}
	dumpCmd = &cobra.Command{
		Use:   "dump [path]",
		Short: "Makes the server write its store as JSON to path (on the server)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcClient.DumpStore(args[0])
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
	noopCmd = &cobra.Command{
		Use:   "noop",
		Short: "Sends a request that does nothing (checks that the server is up)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcClient.Noop()
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
	rawCmd = &cobra.Command{
		Use:   "raw [request]",
		Short: "Sends a raw request (e.g. 'GET::user:1000') and prints the raw response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcClient.Request(args[0] + "\n")
			if err != nil {
				return err
			}
			fmt.Print(resp)
			return nil
		},
	}
)
