// Package agent wires the block-construction core to its external
// collaborators (account-info/publish upstream, PoW server) behind a small
// service used by both the HTTP and stdio-RPC surfaces.
package agent

import (
	"context"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/synthron-labs/nanoagent/internal/nanocore"
)

// Publisher submits a signed block for broadcast.
type Publisher interface {
	PublishBlock(ctx context.Context, block *nanocore.SignedBlock) error
}

// Service exposes wallet operations over whatever transport embeds it.
type Service struct {
	wallet    *nanocore.WalletSecret
	builder   *nanocore.Builder
	publisher Publisher
	logger    *log.Logger
}

// New constructs a Service for wallet, using builder to assemble blocks and
// publisher to broadcast them.
func New(wallet *nanocore.WalletSecret, builder *nanocore.Builder, publisher Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Service{wallet: wallet, builder: builder, publisher: publisher, logger: logger}
}

// Address returns the wallet's account address.
func (s *Service) Address() string { return s.wallet.Address }

// Balance reports the account's current frontier and balance, fetched
// through the builder's account-info provider.
func (s *Service) Balance(ctx context.Context) (*nanocore.AccountInfo, error) {
	info, err := s.builder.AccountInfo.GetAccountInfo(ctx, s.wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("fetch account info: %w", err)
	}
	return info, nil
}

// Send builds, signs, and publishes a send block moving amountRaw to the
// account whose public key is linkHex.
func (s *Service) Send(ctx context.Context, amountRaw *big.Int, linkHex string) (*nanocore.SignedBlock, error) {
	block, err := s.builder.Build(ctx, s.wallet, amountRaw, linkHex, false)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("send block built: hash=%s subtype=%s", block.Hash, block.Subtype)
	if err := s.publisher.PublishBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("publish send block: %w", err)
	}
	return block, nil
}

// Receive builds, signs, and publishes a receive/open block crediting
// amountRaw sourced from the block whose hash is linkHex.
func (s *Service) Receive(ctx context.Context, amountRaw *big.Int, linkHex string) (*nanocore.SignedBlock, error) {
	block, err := s.builder.Build(ctx, s.wallet, amountRaw, linkHex, true)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("receive block built: hash=%s subtype=%s", block.Hash, block.Subtype)
	if err := s.publisher.PublishBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("publish receive block: %w", err)
	}
	return block, nil
}
