package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/runtime/terminal"
	"github.com/de-tools/fg-sync/pkg/services/pipeline"
	"github.com/de-tools/fg-sync/pkg/services/publish"
	"github.com/de-tools/fg-sync/pkg/store/odoo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := terminal.NewCLI(terminal.Options{
		Registry: pipeline.DefaultRegistry(),
		Output:   os.Stdout,
		Connect:  connectOdoo,
		Sheets:   publish.SheetsOpener,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func connectOdoo(cfg domain.SourceConfig) (pipeline.Source, error) {
	client, err := odoo.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
