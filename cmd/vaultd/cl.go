package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/quorumwallet/vaultd/api"
	"github.com/quorumwallet/vaultd/app"
	app_config "github.com/quorumwallet/vaultd/config"
	"github.com/quorumwallet/vaultd/indexer"
	"github.com/quorumwallet/vaultd/types"
)

var homeDir string

var rootCmd = &cobra.Command{
	Use:   "vaultd",
	Short: "vaultd is a weighted multisig custody wallet",
	Long: `A custody wallet whose every outbound action needs weighted
owner consensus before it can be executed.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func run(cmd *cobra.Command, args []string) {
	if homeDir == "" {
		homeDir = os.ExpandEnv("$HOME/.vaultd")
	}

	cfg, err := app_config.LoadConfig(homeDir)
	if err != nil {
		stdlog.Fatalf("Reading config: %v", err)
	}

	filter, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to parse log level: %v", err)
	}
	logger := log.NewLogger(os.Stdout, log.FilterOption(filter))

	genDoc, err := types.LoadGenesisDoc(cfg.GenesisFile())
	if err != nil {
		stdlog.Fatalf("load genesis doc: %v", err)
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		stdlog.Fatalf("invalid genesis doc: %v", err)
	}

	wapp, err := app.NewWalletApp(cfg, logger)
	if err != nil {
		stdlog.Fatalf("new wallet app err:%v", err)
	}
	if err := wapp.Start(genDoc); err != nil {
		stdlog.Fatalf("start wallet app err:%v", err)
	}

	idx, err := indexer.NewWalletIndexer(logger, cfg.IndexerDBFile())
	if err != nil {
		stdlog.Fatalf("new wallet indexer err:%v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	feed := wapp.Subscribe()
	go idx.Run(ctx, feed)

	svc := api.NewService(cfg.ListenAddr, wapp, idx, logger)
	go func() {
		if err := svc.Start(); err != nil {
			stdlog.Fatalf("start api service err:%v", err)
		}
	}()

	defer func() {
		stdlog.Println("shut down...")
		done := make(chan struct{})
		go func() {
			defer close(done)
			cancel()
			wapp.Stop()
			if err := idx.Close(); err != nil {
				stdlog.Printf("close indexer err:%v", err)
			}
		}()
		timer := time.NewTimer(time.Second * 10)
		select {
		case <-timer.C:
			os.Exit(1)
		case <-done:
			return
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
