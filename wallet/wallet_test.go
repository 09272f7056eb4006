package wallet

import (
	"encoding/hex"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateSecretKey(t *testing.T) []byte {
	sk, _ := keyGenerator.GeneratePair()
	skBytes, err := sk.ToByteArray()
	require.Nil(t, err)

	return skBytes
}

func writePemFile(t *testing.T, address string, secretKeys ...[]byte) string {
	path := filepath.Join(t.TempDir(), "wallet.pem")
	f, err := os.Create(path)
	require.Nil(t, err)
	defer func() {
		_ = f.Close()
	}()

	for _, sk := range secretKeys {
		blk := &pem.Block{
			Type:  "PRIVATE KEY for " + address,
			Bytes: []byte(hex.EncodeToString(sk)),
		}
		require.Nil(t, pem.Encode(f, blk))
	}

	return path
}

func createTransaction(sender string) *transaction.FrontendTransaction {
	return &transaction.FrontendTransaction{
		Nonce:    7,
		Value:    "0",
		Receiver: sender,
		Sender:   sender,
		GasPrice: 1000000000,
		GasLimit: 30000000,
		Data:     []byte("claimFees"),
		ChainID:  "chain",
		Version:  1,
	}
}

func TestNewWalletFromSecretKey(t *testing.T) {
	t.Parallel()

	converter, _ := common.NewAddressConverter()

	t.Run("nil converter should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromSecretKey(generateSecretKey(t), nil)
		assert.True(t, w.IsInterfaceNil())
		assert.Equal(t, ErrNilAddressConverter, err)
	})
	t.Run("invalid key length should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromSecretKey([]byte{1, 2, 3}, converter)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, ErrInvalidSecretKeyLength)
	})
	t.Run("seed and full key derive the same address", func(t *testing.T) {
		t.Parallel()

		sk := generateSecretKey(t)
		fromKey, err := NewWalletFromSecretKey(sk, converter)
		require.Nil(t, err)
		fromSeed, err := NewWalletFromSecretKey(sk[:32], converter)
		require.Nil(t, err)

		assert.Equal(t, fromKey.Address(), fromSeed.Address())
		assert.Equal(t, fromKey.Bech32Address(), fromSeed.Bech32Address())
		assert.Len(t, fromKey.Address(), common.AddressLength)
	})
}

func TestLoadWalletFromPemFile(t *testing.T) {
	t.Parallel()

	converter, _ := common.NewAddressConverter()

	t.Run("missing file should error", func(t *testing.T) {
		t.Parallel()

		w, err := LoadWalletFromPemFile(filepath.Join(t.TempDir(), "missing.pem"), 0, converter)
		assert.Nil(t, w)
		assert.NotNil(t, err)
	})
	t.Run("key index selects the block", func(t *testing.T) {
		t.Parallel()

		first := generateSecretKey(t)
		second := generateSecretKey(t)
		path := writePemFile(t, "validator", first, second)

		w, err := LoadWalletFromPemFile(path, 1, converter)
		require.Nil(t, err)

		expected, _ := NewWalletFromSecretKey(second, converter)
		assert.Equal(t, expected.Bech32Address(), w.Bech32Address())
	})
	t.Run("pem address must match the key", func(t *testing.T) {
		t.Parallel()

		sk := generateSecretKey(t)
		other, _ := NewWalletFromSecretKey(generateSecretKey(t), converter)
		path := writePemFile(t, other.Bech32Address(), sk)

		w, err := LoadWalletFromPemFile(path, 0, converter)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, ErrAddressMismatch)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		sk := generateSecretKey(t)
		expected, _ := NewWalletFromSecretKey(sk, converter)
		path := writePemFile(t, expected.Bech32Address(), sk)

		w, err := LoadWalletFromPemFile(path, 0, converter)
		require.Nil(t, err)
		assert.Equal(t, expected.Address(), w.Address())
	})
}

func TestWallet_SignTransaction(t *testing.T) {
	t.Parallel()

	converter, _ := common.NewAddressConverter()
	w, err := NewWalletFromSecretKey(generateSecretKey(t), converter)
	require.Nil(t, err)

	t.Run("nil transaction should error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ErrNilTransaction, w.SignTransaction(nil))
		assert.Equal(t, ErrNilTransaction, VerifyTransactionSignature(nil, converter))
	})
	t.Run("signed transaction verifies", func(t *testing.T) {
		t.Parallel()

		tx := createTransaction(w.Bech32Address())
		require.Nil(t, w.SignTransaction(tx))
		assert.Len(t, tx.Signature, 128)

		assert.Nil(t, VerifyTransactionSignature(tx, converter))
	})
	t.Run("tampered transaction should not verify", func(t *testing.T) {
		t.Parallel()

		tx := createTransaction(w.Bech32Address())
		require.Nil(t, w.SignTransaction(tx))

		tx.Nonce++
		assert.ErrorIs(t, VerifyTransactionSignature(tx, converter), ErrInvalidSignature)
	})
	t.Run("signature is not covered by the signing bytes", func(t *testing.T) {
		t.Parallel()

		tx := createTransaction(w.Bech32Address())
		unsignedBytes, err := ComputeSigningBytes(tx)
		require.Nil(t, err)

		require.Nil(t, w.SignTransaction(tx))
		signedBytes, err := ComputeSigningBytes(tx)
		require.Nil(t, err)

		assert.Equal(t, unsignedBytes, signedBytes)
	})
}
