package wallet

import (
	goEd25519 "crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	crypto "github.com/multiversx/mx-chain-crypto-go"
	"github.com/multiversx/mx-chain-crypto-go/signing"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519/singlesig"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("wallet")

var keyGenerator = signing.NewKeyGenerator(ed25519.NewEd25519())

type wallet struct {
	privateKey    crypto.PrivateKey
	publicKey     []byte
	bech32Address string
	signer        crypto.SingleSigner
}

// LoadWalletFromPemFile loads the secret key stored at keyIndex in the pem file
func LoadWalletFromPemFile(pemFile string, keyIndex int, addressConverter core.PubkeyConverter) (*wallet, error) {
	if check.IfNil(addressConverter) {
		return nil, ErrNilAddressConverter
	}

	skHexBuff, pemAddress, err := core.LoadSkPkFromPemFile(pemFile, keyIndex)
	if err != nil {
		return nil, err
	}

	skBuff, err := hex.DecodeString(string(skHexBuff))
	if err != nil {
		return nil, fmt.Errorf("%w while decoding the secret key from %s", err, pemFile)
	}

	w, err := NewWalletFromSecretKey(skBuff, addressConverter)
	if err != nil {
		return nil, err
	}

	_, errDecode := addressConverter.Decode(pemAddress)
	if errDecode == nil && pemAddress != w.bech32Address {
		return nil, fmt.Errorf("%w: pem has %s, key derives %s", ErrAddressMismatch, pemAddress, w.bech32Address)
	}

	log.Debug("loaded wallet", "pem", pemFile, "address", w.bech32Address)

	return w, nil
}

// NewWalletFromSecretKey creates a wallet from a 32 bytes seed or a 64 bytes ed25519 secret key
func NewWalletFromSecretKey(secretKey []byte, addressConverter core.PubkeyConverter) (*wallet, error) {
	if check.IfNil(addressConverter) {
		return nil, ErrNilAddressConverter
	}

	switch len(secretKey) {
	case goEd25519.SeedSize:
		secretKey = goEd25519.NewKeyFromSeed(secretKey)
	case goEd25519.PrivateKeySize:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSecretKeyLength, len(secretKey))
	}

	privateKey, err := keyGenerator.PrivateKeyFromByteArray(secretKey)
	if err != nil {
		return nil, err
	}

	publicKey, err := privateKey.GeneratePublic().ToByteArray()
	if err != nil {
		return nil, err
	}

	bech32Address, err := addressConverter.Encode(publicKey)
	if err != nil {
		return nil, err
	}

	return &wallet{
		privateKey:    privateKey,
		publicKey:     publicKey,
		bech32Address: bech32Address,
		signer:        &singlesig.Ed25519Signer{},
	}, nil
}

// Address returns the public key of the wallet
func (w *wallet) Address() []byte {
	return w.publicKey
}

// Bech32Address returns the bech32 encoded address of the wallet
func (w *wallet) Bech32Address() string {
	return w.bech32Address
}

// SignTransaction signs the transaction and sets its signature field
func (w *wallet) SignTransaction(tx *transaction.FrontendTransaction) error {
	if tx == nil {
		return ErrNilTransaction
	}

	buff, err := ComputeSigningBytes(tx)
	if err != nil {
		return err
	}

	signature, err := w.signer.Sign(w.privateKey, buff)
	if err != nil {
		return err
	}

	tx.Signature = hex.EncodeToString(signature)

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (w *wallet) IsInterfaceNil() bool {
	return w == nil
}

// ComputeSigningBytes returns the bytes covered by the transaction signature: the json form of the
// transaction without its signature
func ComputeSigningBytes(tx *transaction.FrontendTransaction) ([]byte, error) {
	if tx == nil {
		return nil, ErrNilTransaction
	}

	unsigned := *tx
	unsigned.Signature = ""

	return json.Marshal(&unsigned)
}

// VerifyTransactionSignature checks the signature of the transaction against its sender
func VerifyTransactionSignature(tx *transaction.FrontendTransaction, addressConverter core.PubkeyConverter) error {
	if tx == nil {
		return ErrNilTransaction
	}
	if check.IfNil(addressConverter) {
		return ErrNilAddressConverter
	}

	senderBytes, err := addressConverter.Decode(tx.Sender)
	if err != nil {
		return err
	}

	publicKey, err := keyGenerator.PublicKeyFromByteArray(senderBytes)
	if err != nil {
		return err
	}

	signature, err := hex.DecodeString(tx.Signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err.Error())
	}

	buff, err := ComputeSigningBytes(tx)
	if err != nil {
		return err
	}

	err = (&singlesig.Ed25519Signer{}).Verify(publicKey, buff, signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err.Error())
	}

	return nil
}
