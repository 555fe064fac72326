package main

import (
	"context"
	"fmt"
	"os"

	"github.com/knothost/siteapi/internal/buildinfo"
	"github.com/knothost/siteapi/internal/client/cli"
	"github.com/knothost/siteapi/internal/client/config"
	"github.com/knothost/siteapi/internal/client/session"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	store, err := session.Open(ctx, cfg.SessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store unavailable, logins will not be remembered: %v\n", err)
		cli.NewApp(ctx, cfg, nil).Run(ctx)
		return
	}
	defer store.Close()

	cli.NewApp(ctx, cfg, store).Run(ctx)
}
