package nanocore

// WalletSecret is the in-memory, decrypted form of a wallet. It must never
// be logged or serialized outside of the encrypted seed store.
type WalletSecret struct {
	Address    string `json:"address"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	Seed       string `json:"seed"`
	APIKey     string `json:"api_key"`
}

// AccountInfo is a point-in-time snapshot as returned by the account-info
// provider.
type AccountInfo struct {
	Frontier       string
	Balance        string
	Representative string
}

// NewWalletSecret derives a WalletSecret's address/public/private key
// fields from a 64-hex seed and api key, enforcing the invariant that
// PublicKey = derive_pub(seed, 0) and Address = encode_address(PublicKey).
func NewWalletSecret(seedHex, apiKey string) (*WalletSecret, *Error) {
	seed, err := hexTo32(seedHex, ErrKeyDerivationFailed)
	if err != nil {
		return nil, err
	}
	priv, err := DerivePrivateKey(seed, 0)
	if err != nil {
		return nil, err
	}
	pub, err := DerivePublicKey(priv)
	if err != nil {
		return nil, err
	}
	addr, err := EncodeAddress(pub)
	if err != nil {
		return nil, err
	}
	return &WalletSecret{
		Address:    addr,
		PublicKey:  hexEncode(pub[:]),
		PrivateKey: hexEncode(priv[:]),
		Seed:       seedHex,
		APIKey:     apiKey,
	}, nil
}
