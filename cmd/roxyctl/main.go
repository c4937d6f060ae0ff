// Command roxyctl is the operator CLI. Every subcommand builds one
// request envelope, hands it to the privileged helper through the
// client package, and prints the response. It is a thin shell over
// the wire protocol; all validation and privilege live in the helper.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aicers/roxy/client"
	"github.com/aicers/roxy/protocol"
)

var (
	helperPath  string
	callTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "roxyctl",
	Short:         "Administer this host through the roxy privileged helper",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&helperPath, "helper",
		client.DefaultHelperPath, "path to the roxy helper binary")
	rootCmd.PersistentFlags().DurationVar(&callTimeout, "timeout",
		time.Minute, "helper call timeout")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "roxyctl: %v\n", err)
		os.Exit(1)
	}
}

// call sends one request and decodes the response body into out.
func call(kind protocol.Kind, cmd protocol.SubCommand, arg, out any) error {
	req, err := protocol.NewRequest(kind, cmd, arg)
	if err != nil {
		return err
	}
	req.Host, _ = os.Hostname()
	req.Process = "roxyctl"

	c := client.New()
	c.Path = helperPath

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return c.Call(ctx, req, out)
}

// mutate sends a request whose only success body is the Ok marker.
func mutate(kind protocol.Kind, cmd protocol.SubCommand, arg any) error {
	var status string
	if err := call(kind, cmd, arg, &status); err != nil {
		return err
	}
	fmt.Println(status)
	return nil
}

// query sends a request and prints the typed response as JSON.
func query[T any](kind protocol.Kind, cmd protocol.SubCommand, arg any) error {
	var out T
	if err := call(kind, cmd, arg, &out); err != nil {
		return err
	}
	return printJSON(out)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
