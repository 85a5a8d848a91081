// Command wallet-cli manages a Nano seed-store wallet file and constructs
// signed state blocks from the command line, in the shape of the teacher's
// HD wallet CLI but built on the Blake2b-ed25519 Nano core instead.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthron-labs/nanoagent/internal/agent"
	"github.com/synthron-labs/nanoagent/internal/nanocore"
	"github.com/synthron-labs/nanoagent/internal/upstream"
	"github.com/synthron-labs/nanoagent/internal/workclient"
)

var (
	logger = logrus.StandardLogger()
	once   sync.Once
)

func initMiddleware(cmd *cobra.Command, _ []string) error {
	var err error
	once.Do(func() {
		_ = godotenv.Load()
		lvl := os.Getenv("LOG_LEVEL")
		if lvl == "" {
			lvl = "info"
		}
		l, e := logrus.ParseLevel(lvl)
		if e != nil {
			err = e
			return
		}
		logger.SetLevel(l)
	})
	return err
}

func loadWallet(path, password string) (*nanocore.WalletSecret, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	secret, cerr := nanocore.DecryptSeed(raw, password)
	if cerr != nil {
		return nil, cerr
	}
	return secret, nil
}

func saveWallet(path string, secret *nanocore.WalletSecret, password string) error {
	blob, cerr := nanocore.EncryptSeed(secret, password)
	if cerr != nil {
		return cerr
	}
	return os.WriteFile(path, blob, 0o600)
}

func randomSeedHex() (string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", seed), nil
}

var rootCmd = &cobra.Command{
	Use:               "wallet",
	Short:             "Nano wallet agent key management & block signing",
	PersistentPreRunE: initMiddleware,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new seed and encrypted wallet file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")
		password, _ := cmd.Flags().GetString("password")
		apiKey, _ := cmd.Flags().GetString("api-key")
		if out == "" || password == "" {
			return errors.New("--out and --password required")
		}
		seedHex, err := randomSeedHex()
		if err != nil {
			return err
		}
		secret, cerr := nanocore.NewWalletSecret(seedHex, apiKey)
		if cerr != nil {
			return cerr
		}
		if err := saveWallet(out, secret, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wallet saved to %s\naddress: %s\n", out, secret.Address)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an existing 64-hex seed into an encrypted wallet file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		seedHex, _ := cmd.Flags().GetString("seed")
		out, _ := cmd.Flags().GetString("out")
		password, _ := cmd.Flags().GetString("password")
		apiKey, _ := cmd.Flags().GetString("api-key")
		if seedHex == "" || out == "" || password == "" {
			return errors.New("--seed, --out and --password required")
		}
		secret, cerr := nanocore.NewWalletSecret(seedHex, apiKey)
		if cerr != nil {
			return cerr
		}
		if err := saveWallet(out, secret, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wallet saved to %s\naddress: %s\n", out, secret.Address)
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the wallet's account address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wallet, _ := cmd.Flags().GetString("wallet")
		password, _ := cmd.Flags().GetString("password")
		secret, err := loadWallet(wallet, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), secret.Address)
		return nil
	},
}

func buildService(cmd *cobra.Command) (*agent.Service, *nanocore.WalletSecret, error) {
	wallet, _ := cmd.Flags().GetString("wallet")
	password, _ := cmd.Flags().GetString("password")
	upstreamURL, _ := cmd.Flags().GetString("upstream-url")
	workURL, _ := cmd.Flags().GetString("work-url")

	secret, err := loadWallet(wallet, password)
	if err != nil {
		return nil, nil, err
	}

	up := upstream.New(upstreamURL, secret.APIKey)
	work := workclient.New(workURL)
	builder := nanocore.NewBuilder(up, work)
	svc := agent.New(secret, builder, up, logger)
	return svc, secret, nil
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Fetch the wallet's current frontier and balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, _, err := buildService(cmd)
		if err != nil {
			return err
		}
		info, err := svc.Balance(cmd.Context())
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build, sign, and publish a send block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		amountNano, _ := cmd.Flags().GetString("amount")
		link, _ := cmd.Flags().GetString("to")
		if amountNano == "" || link == "" {
			return errors.New("--amount and --to required")
		}
		amount, cerr := nanocore.NanoToRaw(amountNano)
		if cerr != nil {
			return cerr
		}
		svc, _, err := buildService(cmd)
		if err != nil {
			return err
		}
		block, err := svc.Send(cmd.Context(), amount, link)
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(block)
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Build, sign, and publish a receive/open block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		amountNano, _ := cmd.Flags().GetString("amount")
		link, _ := cmd.Flags().GetString("source")
		if amountNano == "" || link == "" {
			return errors.New("--amount and --source required")
		}
		amount, cerr := nanocore.NanoToRaw(amountNano)
		if cerr != nil {
			return cerr
		}
		svc, _, err := buildService(cmd)
		if err != nil {
			return err
		}
		block, err := svc.Receive(cmd.Context(), amount, link)
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(block)
	},
}

func init() {
	createCmd.Flags().String("out", "", "output wallet file")
	createCmd.Flags().String("password", "", "encryption password")
	createCmd.Flags().String("api-key", "", "upstream API key to embed in the wallet file")

	importCmd.Flags().String("seed", "", "64-hex seed")
	importCmd.Flags().String("out", "", "output wallet file")
	importCmd.Flags().String("password", "", "encryption password")
	importCmd.Flags().String("api-key", "", "upstream API key to embed in the wallet file")

	for _, c := range []*cobra.Command{addressCmd, balanceCmd, sendCmd, receiveCmd} {
		c.Flags().String("wallet", "", "wallet file")
		c.Flags().String("password", "", "wallet password")
	}
	for _, c := range []*cobra.Command{balanceCmd, sendCmd, receiveCmd} {
		c.Flags().String("upstream-url", "http://127.0.0.1:3000", "upstream payments API base URL")
		c.Flags().String("work-url", "http://127.0.0.1:4000", "proof-of-work server URL")
	}
	sendCmd.Flags().String("amount", "", "amount in Nano (decimal)")
	sendCmd.Flags().String("to", "", "destination account public key (hex)")
	receiveCmd.Flags().String("amount", "", "amount in Nano (decimal)")
	receiveCmd.Flags().String("source", "", "source block hash (hex)")

	rootCmd.AddCommand(createCmd, importCmd, addressCmd, balanceCmd, sendCmd, receiveCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
