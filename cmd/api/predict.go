package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPredictCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <text>...",
		Short: "Classify messages without starting the server",
		Long: `Classify one or more messages with the configured model.

All messages are validated before any is classified; one invalid message
fails the whole call.

Examples:
  spamsms predict "Congratulations! You've won a free iPhone."
  spamsms predict --json "See you at lunch" "WIN cash now"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, stdout, stderr, args)
		},
	}
	cmd.Flags().Bool("json", false, "Print results as JSON")
	return cmd
}

func runPredict(cmd *cobra.Command, stdout, stderr io.Writer, texts []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newAppLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := bootstrap(context.Background(), cfg, log, false)
	if err != nil {
		fmt.Fprintf(stderr, "loading model: %v\n", err)
		return errExit
	}
	defer a.close()

	items, err := a.prediction.PredictBatch(cmd.Context(), texts)
	if err != nil {
		fmt.Fprintf(stderr, "predict: %v\n", err)
		return errExit
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RESULT\tCONFIDENCE\tTEXT")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%.4f\t%s\n", item.Label, item.Confidence, item.EchoedText)
	}
	return tw.Flush()
}
