package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

func newCheckModelCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check-model",
		Short: "Load the configured model and print its metadata",
		Long: `Load the configured model exactly as serve would and print its metadata.

Exits non-zero when the artifact is missing or cannot be deserialized.

Examples:
  spamsms check-model
  SPAMSMS_MODEL_PATH=models/spam_model.json.gz spamsms check-model`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckModel(cmd, stdout, stderr)
		},
	}
}

func runCheckModel(cmd *cobra.Command, stdout, stderr io.Writer) error {
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
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			fmt.Fprintf(stderr, "model not found: %v\n", err)
		case errors.Is(err, service.ErrModelDeserialize):
			fmt.Fprintf(stderr, "model is unreadable: %v\n", err)
		default:
			fmt.Fprintf(stderr, "model check failed: %v\n", err)
		}
		return errExit
	}
	defer a.close()

	m, _ := a.controller.Model()
	info := m.Info()
	classes := lo.Map(info.Classes, func(c int, _ int) string { return fmt.Sprint(c) })

	fmt.Fprintf(stdout, "state:       %s\n", a.controller.State())
	fmt.Fprintf(stdout, "name:        %s\n", info.Name)
	fmt.Fprintf(stdout, "version:     %s\n", info.Version)
	fmt.Fprintf(stdout, "backend:     %s\n", info.Backend)
	fmt.Fprintf(stdout, "classes:     %s\n", strings.Join(classes, ", "))
	fmt.Fprintf(stdout, "fingerprint: %s\n", info.Fingerprint)
	return nil
}
