package interactor

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/process/outcome"
	"github.com/multiversx/mx-esdt-fee-interactor/process/txBuilder"
	"github.com/multiversx/mx-esdt-fee-interactor/testscommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedErr = errors.New("expected error")

func createAddressConverter(t *testing.T) core.PubkeyConverter {
	converter, err := common.NewAddressConverter()
	require.Nil(t, err)

	return converter
}

func contractBech32(t *testing.T, converter core.PubkeyConverter) string {
	contractAddress := make([]byte, 32)
	contractAddress[8] = 5
	contractAddress[31] = 1

	address, err := converter.Encode(contractAddress)
	require.Nil(t, err)

	return address
}

func createMockArgsContractInteractor(t *testing.T) ArgsContractInteractor {
	converter := createAddressConverter(t)
	serializer := abi.NewDefaultSerializer()

	builder, err := txBuilder.NewTxBuilder(txBuilder.ArgsTxBuilder{
		Serializer:       serializer,
		AddressConverter: converter,
	})
	require.Nil(t, err)

	classifier, err := outcome.NewOutcomeClassifier(converter)
	require.Nil(t, err)

	contractAddress := contractBech32(t, converter)

	return ArgsContractInteractor{
		Gateway: &testscommon.GatewayClientStub{},
		Wallet:  &testscommon.WalletStub{},
		State: &testscommon.StateHandlerStub{
			CurrentAddressCalled: func() (string, error) {
				return contractAddress, nil
			},
		},
		Builder:          builder,
		Classifier:       classifier,
		Serializer:       serializer,
		AddressConverter: converter,
		ContractCode:     []byte("contract code"),
		DeployGasLimit:   35000000,
		CallGasLimit:     30000000,
	}
}

func TestNewContractInteractor(t *testing.T) {
	t.Parallel()

	t.Run("nil gateway should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Gateway = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilGatewayClient, err)
	})
	t.Run("nil wallet should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Wallet = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilWallet, err)
	})
	t.Run("nil state should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.State = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilStateHandler, err)
	})
	t.Run("nil builder should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Builder = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilTransactionBuilder, err)
	})
	t.Run("nil classifier should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Classifier = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilOutcomeClassifier, err)
	})
	t.Run("nil serializer should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Serializer = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilSerializer, err)
	})
	t.Run("nil address converter should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.AddressConverter = nil
		ci, err := NewContractInteractor(args)
		assert.True(t, check.IfNil(ci))
		assert.Equal(t, ErrNilAddressConverter, err)
	})
	t.Run("zero gas limits should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.DeployGasLimit = 0
		_, err := NewContractInteractor(args)
		assert.True(t, errors.Is(err, ErrInvalidGasLimit))

		args = createMockArgsContractInteractor(t)
		args.CallGasLimit = 0
		_, err = NewContractInteractor(args)
		assert.True(t, errors.Is(err, ErrInvalidGasLimit))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		ci, err := NewContractInteractor(createMockArgsContractInteractor(t))
		assert.False(t, check.IfNil(ci))
		assert.Nil(t, err)
	})
}

func TestContractInteractor_Deploy(t *testing.T) {
	t.Parallel()

	t.Run("empty code should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.ContractCode = nil
		ci, _ := NewContractInteractor(args)

		address, err := ci.Deploy(context.Background())
		assert.Empty(t, address)
		assert.Equal(t, ErrEmptyContractCode, err)
	})
	t.Run("failed deploy should not record the address", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Gateway = &testscommon.GatewayClientStub{
			WaitForTransactionCalled: func(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error) {
				return &transaction.ApiTransactionResult{
					Hash:   txHash,
					Status: transaction.TxStatusFail,
					Logs: &transaction.ApiLogs{
						Events: []*transaction.Events{
							{
								Identifier: common.SignalErrorIdentifier,
								Topics:     [][]byte{make([]byte, 32), []byte("not enough gas")},
							},
						},
					},
				}, nil
			},
		}
		args.State = &testscommon.StateHandlerStub{
			SetAddressCalled: func(address string) error {
				assert.Fail(t, "should not have been called")
				return nil
			},
		}
		ci, _ := NewContractInteractor(args)

		address, err := ci.Deploy(context.Background())
		assert.Empty(t, address)
		var failure *data.DeclaredFailure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, "not enough gas", failure.Message)
	})
	t.Run("should record the deployed address", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		contractAddress := contractBech32(t, args.AddressConverter)
		contractAddressBytes, _ := args.AddressConverter.Decode(contractAddress)

		var sentTx *transaction.FrontendTransaction
		args.Gateway = &testscommon.GatewayClientStub{
			SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
				sentTx = tx
				return "0a0b", nil
			},
			WaitForTransactionCalled: func(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error) {
				return &transaction.ApiTransactionResult{
					Hash:   txHash,
					Status: transaction.TxStatusSuccess,
					Logs: &transaction.ApiLogs{
						Events: []*transaction.Events{
							{
								Identifier: common.SCDeployIdentifier,
								Topics:     [][]byte{contractAddressBytes, make([]byte, 32)},
							},
						},
					},
				}, nil
			},
		}
		recordedAddress := ""
		args.State = &testscommon.StateHandlerStub{
			SetAddressCalled: func(address string) error {
				recordedAddress = address
				return nil
			},
		}
		ci, _ := NewContractInteractor(args)

		address, err := ci.Deploy(context.Background())
		require.Nil(t, err)
		assert.Equal(t, contractAddress, address)
		assert.Equal(t, contractAddress, recordedAddress)
		require.NotNil(t, sentTx)
		assert.Equal(t, uint64(35000000), sentTx.GasLimit)
		assert.True(t, strings.HasSuffix(string(sentTx.Data), "@0500@0002"))
	})
}

func TestContractInteractor_NonceAndVersion(t *testing.T) {
	t.Parallel()

	args := createMockArgsContractInteractor(t)
	numAccountRequests := 0
	numConfigRequests := 0
	sentNonces := make([]uint64, 0)
	sentVersions := make([]uint32, 0)
	args.Gateway = &testscommon.GatewayClientStub{
		GetNetworkConfigCalled: func(ctx context.Context) (*data.NetworkConfig, error) {
			numConfigRequests++
			return &data.NetworkConfig{ChainID: "T", MinGasPrice: 1000000000, MinTransactionVersion: 1}, nil
		},
		GetAccountCalled: func(ctx context.Context, address string) (*data.Account, error) {
			numAccountRequests++
			return &data.Account{Nonce: 5}, nil
		},
		SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
			sentNonces = append(sentNonces, tx.Nonce)
			sentVersions = append(sentVersions, tx.Version)
			return "0a0b", nil
		},
	}
	args.ForceTransactionVersion = 2
	ci, _ := NewContractInteractor(args)

	for i := 0; i < 3; i++ {
		result, err := ci.ClaimFees(context.Background())
		require.Nil(t, err)
		assert.True(t, result.IsSuccess())
		assert.Equal(t, "0a0b", result.TxHash)
	}

	assert.Equal(t, 1, numAccountRequests)
	assert.Equal(t, 1, numConfigRequests)
	assert.Equal(t, []uint64{5, 6, 7}, sentNonces)
	assert.Equal(t, []uint32{2, 2, 2}, sentVersions)
}

func TestContractInteractor_transactionVersion(t *testing.T) {
	t.Parallel()

	ci, _ := NewContractInteractor(createMockArgsContractInteractor(t))
	assert.Equal(t, uint32(2), ci.transactionVersion(&data.NetworkConfig{MinTransactionVersion: 2}))
	assert.Equal(t, uint32(common.DefaultTransactionVersion), ci.transactionVersion(&data.NetworkConfig{}))

	ci.forceTransactionVersion = 3
	assert.Equal(t, uint32(3), ci.transactionVersion(&data.NetworkConfig{MinTransactionVersion: 2}))
}

func TestContractInteractor_SendErrorDoesNotConsumeNonce(t *testing.T) {
	t.Parallel()

	args := createMockArgsContractInteractor(t)
	sentNonces := make([]uint64, 0)
	shouldFail := true
	args.Gateway = &testscommon.GatewayClientStub{
		SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
			sentNonces = append(sentNonces, tx.Nonce)
			if shouldFail {
				return "", expectedErr
			}

			return "0a0b", nil
		},
	}
	ci, _ := NewContractInteractor(args)

	_, err := ci.ClaimFees(context.Background())
	assert.Equal(t, expectedErr, err)

	shouldFail = false
	_, err = ci.ClaimFees(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{0, 0}, sentNonces)
}

func TestContractInteractor_CallsRequireDeployedContract(t *testing.T) {
	t.Parallel()

	args := createMockArgsContractInteractor(t)
	args.State = &testscommon.StateHandlerStub{
		CurrentAddressCalled: func() (string, error) {
			return "", expectedErr
		},
	}
	args.Gateway = &testscommon.GatewayClientStub{
		SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
			assert.Fail(t, "should not have been called")
			return "", nil
		},
	}
	ci, _ := NewContractInteractor(args)

	_, err := ci.SetPercentageFee(context.Background(), 100, "TOKEN-123456")
	assert.Equal(t, expectedErr, err)

	_, err = ci.PaidFees(context.Background())
	assert.Equal(t, expectedErr, err)
}

func TestContractInteractor_SetFeePolicy(t *testing.T) {
	t.Parallel()

	args := createMockArgsContractInteractor(t)
	sentData := make([]string, 0)
	args.Gateway = &testscommon.GatewayClientStub{
		SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
			sentData = append(sentData, string(tx.Data))
			return "0a0b", nil
		},
	}
	ci, _ := NewContractInteractor(args)

	_, err := ci.SetFeePolicy(context.Background(), data.NewExactValueFeePolicy("FEE-123456", big.NewInt(1000), "TOKEN-123456"))
	require.Nil(t, err)
	_, err = ci.SetFeePolicy(context.Background(), data.NewPercentageFeePolicy(10, "TOKEN-123456"))
	require.Nil(t, err)
	_, err = ci.SetFeePolicy(context.Background(), data.FeePolicy{Type: data.FeeUnset})
	assert.True(t, errors.Is(err, ErrUnknownFeeType))

	require.Len(t, sentData, 2)
	assert.Equal(t, "setExactValueFee@4645452d313233343536@03e8@544f4b454e2d313233343536", sentData[0])
	assert.Equal(t, "setPercentageFee@0a@544f4b454e2d313233343536", sentData[1])
}

func TestContractInteractor_TransferWithFee(t *testing.T) {
	t.Parallel()

	args := createMockArgsContractInteractor(t)
	var sentTx *transaction.FrontendTransaction
	args.Gateway = &testscommon.GatewayClientStub{
		SendTransactionCalled: func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
			sentTx = tx
			return "0a0b", nil
		},
	}
	ci, _ := NewContractInteractor(args)

	_, err := ci.TransferWithFee(context.Background(), "TOKEN-123456", big.NewInt(1000), "FEE-123456", big.NewInt(1))
	require.Nil(t, err)
	require.NotNil(t, sentTx)

	// multi transfers are sent to self
	assert.Equal(t, sentTx.Sender, sentTx.Receiver)
	assert.True(t, strings.HasPrefix(string(sentTx.Data), "MultiESDTNFTTransfer@"))
	assert.Contains(t, string(sentTx.Data), "@02@544f4b454e2d313233343536@@03e8@4645452d313233343536@@01@7472616e73666572@")
}

func TestContractInteractor_TokenFee(t *testing.T) {
	t.Parallel()

	t.Run("declared query failure should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		args.Gateway = &testscommon.GatewayClientStub{
			ExecuteQueryCalled: func(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error) {
				return &vm.VMOutputApi{
					ReturnCode:    vmcommon.FunctionNotFound.String(),
					ReturnMessage: "invalid function (not found)",
				}, nil
			},
		}
		ci, _ := NewContractInteractor(args)

		fee, err := ci.TokenFee(context.Background(), "TOKEN-123456")
		assert.Nil(t, fee)
		var failure *data.DeclaredFailure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, vmcommon.FunctionNotFound, failure.Code)
	})
	t.Run("percentage fee", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsContractInteractor(t)
		contractAddress := contractBech32(t, args.AddressConverter)
		args.Gateway = &testscommon.GatewayClientStub{
			ExecuteQueryCalled: func(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error) {
				assert.Equal(t, contractAddress, scAddress)
				assert.Equal(t, "getTokenFee", query.Function)
				assert.Equal(t, [][]byte{[]byte("TOKEN-123456")}, query.Arguments)

				return &vm.VMOutputApi{
					ReturnCode: vmcommon.Ok.String(),
					ReturnData: [][]byte{{0x02, 0x00, 0x00, 0x00, 0x0a}},
				}, nil
			},
		}
		ci, _ := NewContractInteractor(args)

		fee, err := ci.TokenFee(context.Background(), "TOKEN-123456")
		require.Nil(t, err)
		assert.Equal(t, data.FeePercentage, fee.Type)
		assert.Equal(t, uint32(10), fee.Percent)
	})
}

func TestContractInteractor_PaidFees(t *testing.T) {
	t.Parallel()

	key := append([]byte{0, 0, 0, 3}, []byte("ABC")...)
	key = append(key, make([]byte, 8)...)

	args := createMockArgsContractInteractor(t)
	args.Gateway = &testscommon.GatewayClientStub{
		ExecuteQueryCalled: func(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error) {
			return &vm.VMOutputApi{
				ReturnCode: vmcommon.Ok.String(),
				ReturnData: [][]byte{key, {0x01}},
			}, nil
		},
	}
	ci, _ := NewContractInteractor(args)

	paidFees, err := ci.PaidFees(context.Background())
	require.Nil(t, err)
	require.Len(t, paidFees, 1)
	assert.Equal(t, "ABC", paidFees[0].TokenIdentifier)
	assert.Equal(t, uint64(0), paidFees[0].Nonce)
	assert.Equal(t, big.NewInt(1), paidFees[0].Amount)
}
