// Command walletd runs the wallet agent daemon: it loads one wallet file,
// wires it to the upstream payments API and PoW server, and serves it over
// HTTP and/or stdio-RPC depending on configuration.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/synthron-labs/nanoagent/internal/agent"
	"github.com/synthron-labs/nanoagent/internal/config"
	"github.com/synthron-labs/nanoagent/internal/httpapi"
	"github.com/synthron-labs/nanoagent/internal/nanocore"
	"github.com/synthron-labs/nanoagent/internal/stdiorpc"
	"github.com/synthron-labs/nanoagent/internal/upstream"
	"github.com/synthron-labs/nanoagent/internal/workclient"
)

const httpShutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lvl, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	walletBlob, err := os.ReadFile(cfg.Wallet.FilePath)
	if err != nil {
		log.Fatalf("read wallet file %s: %v", cfg.Wallet.FilePath, err)
	}
	password := os.Getenv("NANOAGENT_WALLET_PASSWORD")
	if password == "" {
		log.Fatal("NANOAGENT_WALLET_PASSWORD must be set")
	}
	secret, cerr := nanocore.DecryptSeed(walletBlob, password)
	if cerr != nil {
		log.Fatalf("decrypt wallet: %v", cerr)
	}

	up := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.APIKey)
	work := workclient.New(cfg.Work.ServerURL)
	builder := nanocore.NewBuilder(up, work)
	svc := agent.New(secret, builder, up, log.StandardLogger())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Stdio.Enabled {
		srv := stdiorpc.New(svc, os.Stdin, os.Stdout)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Errorf("stdio-rpc server stopped: %v", err)
			}
		}()
	}

	if cfg.HTTP.Enabled {
		router := httpapi.NewRouter(svc, up)
		server := &http.Server{Addr: cfg.HTTP.ListenAddr, Handler: router}

		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		log.Infof("walletd listening on %s (account %s)", cfg.HTTP.ListenAddr, secret.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
		return
	}

	<-ctx.Done()
}
