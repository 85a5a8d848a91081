package nanocore

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// ZeroFrontier is the 64-'0' sentinel frontier for an unopened account.
const ZeroFrontier = "0000000000000000000000000000000000000000000000000000000000000000"

// DefaultOpenRepresentativeAddress is the canonical representative new
// accounts open to when the account-info provider reports no existing one.
const DefaultOpenRepresentativeAddress = "nano_37imps4zk1dfahkqweqa91xpysacb7scqxf3jqhktepeofcxqnpx531b3mnt"

var (
	defaultOpenRepresentativePub [32]byte
	defaultOpenRepresentativeOK  bool
)

func init() {
	pub, err := DecodeAddress(DefaultOpenRepresentativeAddress, true)
	if err == nil {
		defaultOpenRepresentativePub = pub
		defaultOpenRepresentativeOK = true
	}
}

const (
	frontierMaxAttempts = 10
	frontierBackoff     = 500 * time.Millisecond
)

// AccountInfoProvider fetches the current on-chain state of an account.
type AccountInfoProvider interface {
	GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error)
}

// WorkProvider requests an 8-byte little-endian PoW nonce for root that
// meets thresholdHex (16 lowercase hex chars).
type WorkProvider interface {
	GenerateWork(ctx context.Context, root string, thresholdHex string) (workHex string, err error)
}

// Builder drives the block construction state machine described in
// spec §4.8: it sequences account-info lookup, balance arithmetic,
// subtype selection, signing, and proof-of-work acquisition.
type Builder struct {
	AccountInfo AccountInfoProvider
	Work        WorkProvider

	mu           sync.Mutex
	lastFrontier string
	haveLast     bool
}

// NewBuilder constructs a Builder wired to the given external providers.
func NewBuilder(info AccountInfoProvider, work WorkProvider) *Builder {
	return &Builder{AccountInfo: info, Work: work}
}

// Build assembles, signs, and attaches proof-of-work to a state block for
// wallet, moving amountRaw raw units via link. isReceive selects the
// receive/open path; otherwise a send is produced.
func (b *Builder) Build(ctx context.Context, wallet *WalletSecret, amountRaw *big.Int, linkHex string, isReceive bool) (*SignedBlock, *Error) {
	// 1. FETCH_INFO (with stale-frontier guard).
	frontier := ZeroFrontier
	balance := "0"
	representative := wallet.PublicKey

	if info, ok := b.waitForFreshAccountInfo(ctx, wallet.Address); ok {
		frontier = info.Frontier
		balance = info.Balance
		representative = info.Representative
	}

	// 2. RESOLVE_REPRESENTATIVE.
	repPub := resolveRepresentativePublicKey(frontier, representative, wallet.PublicKey)

	// 3. CHECK_BALANCE.
	current, ok := new(big.Int).SetString(strings.TrimSpace(balance), 10)
	if !ok {
		current = big.NewInt(0)
	}
	current = clampU128(current)
	if !isReceive && current.Cmp(amountRaw) < 0 {
		return nil, newErr(ErrInsufficientFunds, "insufficient funds for send")
	}

	// 4. SUBTYPE.
	var subtype string
	switch {
	case isReceive && frontier == ZeroFrontier:
		subtype = "open"
	case isReceive:
		subtype = "receive"
	default:
		subtype = "send"
	}

	// 5. NEW_BALANCE.
	newBalance := new(big.Int)
	if isReceive {
		newBalance.Add(current, amountRaw)
	} else {
		newBalance.Sub(current, amountRaw)
	}
	newBalance = clampU128(newBalance)

	// 6. WORK_ROOT.
	workRoot := frontier
	if subtype == "open" {
		workRoot = wallet.PublicKey
	}

	// 7. THRESHOLD.
	threshold := ThresholdSendChange
	if subtype != "send" {
		threshold = ThresholdReceiveOpenEpoch
	}

	// 8. HASH.
	accountPub, err := hexTo32(wallet.PublicKey, ErrKeyDerivationFailed)
	if err != nil {
		return nil, err
	}
	previous32, err := hexTo32(frontier, ErrInvalidPreviousHash)
	if err != nil {
		return nil, err
	}
	repPub32, err := hexTo32(repPub, ErrInvalidRepresentativePublicKey)
	if err != nil {
		return nil, err
	}
	link32, err := hexTo32(linkHex, ErrInvalidLink)
	if err != nil {
		return nil, err
	}
	balance16 := u128ToBE16(newBalance)

	hash, err := PreimageHash(accountPub, previous32, repPub32, balance16, link32)
	if err != nil {
		return nil, err
	}

	// 9. SIGN.
	seed32, err := hexTo32(wallet.Seed, ErrKeyDerivationFailed)
	if err != nil {
		return nil, err
	}
	sigHex, _, err := SignHashHex(seed32, 0, hash)
	if err != nil {
		return nil, err
	}

	// 10. WORK.
	thresholdHex := fmt.Sprintf("%016x", threshold)
	workHex, werr := b.Work.GenerateWork(ctx, workRoot, thresholdHex)
	if werr != nil {
		return nil, workServerErr(werr.Error())
	}

	// 11. VERIFY_WORK (reported, not enforced: work below threshold is
	// still accepted; the recomputed value lands in WorkValueHex).
	workLE, err := hexTo8(reverseHex(workHex), ErrInvalidWorkHex)
	if err != nil {
		return nil, err
	}
	workRoot32, err := hexTo32(workRoot, ErrInvalidWorkRoot)
	if err != nil {
		return nil, err
	}
	workValue, err := WorkValue(workRoot32, workLE)
	if err != nil {
		return nil, err
	}

	// 12. EMIT.
	repAddress, err := EncodeAddress(repPub32)
	if err != nil {
		return nil, newErr(ErrInvalidRepresentativeAddress, err.Error())
	}

	block := StateBlock{
		Type:           "state",
		Account:        wallet.Address,
		Previous:       frontier,
		Representative: repAddress,
		Balance:        newBalance.String(),
		Link:           linkHex,
		Signature:      sigHex,
		Work:           workHex,
	}

	return &SignedBlock{
		Block:            block,
		Hash:             hexEncode(hash[:]),
		AccountPublicKey: wallet.PublicKey,
		Subtype:          subtype,
		WorkRoot:         workRoot,
		ThresholdHex:     "0x" + thresholdHex,
		WorkValueHex:     fmt.Sprintf("0x%016x", workValue),
	}, nil
}

// waitForFreshAccountInfo implements the stale-frontier guard of spec §4.8:
// retry up to frontierMaxAttempts times, 500ms apart, until the provider
// returns a frontier different from the last one this process observed.
func (b *Builder) waitForFreshAccountInfo(ctx context.Context, address string) (*AccountInfo, bool) {
	info, err := b.AccountInfo.GetAccountInfo(ctx, address)
	attempts := 0
	for {
		if err == nil && info != nil {
			b.mu.Lock()
			differs := !b.haveLast || b.lastFrontier != info.Frontier
			if differs {
				b.lastFrontier = info.Frontier
				b.haveLast = true
			}
			b.mu.Unlock()
			if differs {
				return info, true
			}
		}

		attempts++
		if attempts >= frontierMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(frontierBackoff):
		}
		info, err = b.AccountInfo.GetAccountInfo(ctx, address)
	}

	if err != nil || info == nil {
		return nil, false
	}
	return info, true
}

// resolveRepresentativePublicKey implements spec §4.8 step 2.
func resolveRepresentativePublicKey(frontier, representative, walletPub string) string {
	if frontier == ZeroFrontier {
		if defaultOpenRepresentativeOK {
			return hexEncode(defaultOpenRepresentativePub[:])
		}
		return strings.ToLower(walletPub)
	}

	if representative == "" {
		return strings.ToLower(walletPub)
	}
	switch {
	case strings.HasPrefix(representative, addressPrefixNano), strings.HasPrefix(representative, addressPrefixXRB):
		pub, err := DecodeAddress(representative, true)
		if err != nil {
			return strings.ToLower(walletPub)
		}
		return hexEncode(pub[:])
	case len(representative) == 64:
		return strings.ToLower(representative)
	default:
		return strings.ToLower(walletPub)
	}
}

// reverseHex reverses the byte order of a hex string representing a
// little-endian work value, so it can be hex-decoded in wire order.
func reverseHex(h string) string {
	b := []byte(h)
	n := len(b)
	out := make([]byte, n)
	for i := 0; i < n; i += 2 {
		out[n-2-i] = b[i]
		out[n-1-i] = b[i+1]
	}
	return string(out)
}
