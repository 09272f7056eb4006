package chainSimulator

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	logger "github.com/multiversx/mx-chain-logger-go"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator/components"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator/dtos"
	"github.com/multiversx/mx-esdt-fee-interactor/wallet"
	"golang.org/x/crypto/blake2b"
)

const defaultRoundDuration = 6 * time.Second

var log = logger.GetOrCreate("node/chainSimulator")

// ArgsChainSimulator holds the arguments needed to create a new chain simulator
type ArgsChainSimulator struct {
	ChainID               string
	MinGasPrice           uint64
	MinGasLimit           uint64
	GasPerDataByte        uint64
	MinTransactionVersion uint32
	RoundDuration         time.Duration
	AddressConverter      core.PubkeyConverter
}

// simulator executes each transaction synchronously as soon as it is received, in a single shard. The deployed
// contracts, whatever their code, behave as the esdt transfer with fee contract.
type simulator struct {
	mut              sync.RWMutex
	networkConfig    data.NetworkConfig
	addressConverter core.PubkeyConverter
	roundHandler     RoundHandler
	accounts         *accountsRepository
	transactions     map[string]*transaction.ApiTransactionResult
}

// NewChainSimulator creates a new chain simulator with no accounts
func NewChainSimulator(args ArgsChainSimulator) (*simulator, error) {
	if check.IfNil(args.AddressConverter) {
		return nil, ErrNilAddressConverter
	}
	if len(args.ChainID) == 0 {
		return nil, ErrInvalidChainID
	}

	roundDuration := args.RoundDuration
	if roundDuration <= 0 {
		roundDuration = defaultRoundDuration
	}
	minTransactionVersion := args.MinTransactionVersion
	if minTransactionVersion == 0 {
		minTransactionVersion = common.DefaultTransactionVersion
	}

	return &simulator{
		networkConfig: data.NetworkConfig{
			ChainID:               args.ChainID,
			MinGasPrice:           args.MinGasPrice,
			MinGasLimit:           args.MinGasLimit,
			GasPerDataByte:        args.GasPerDataByte,
			MinTransactionVersion: minTransactionVersion,
		},
		addressConverter: args.AddressConverter,
		roundHandler:     components.NewManualRoundHandler(time.Now(), roundDuration),
		accounts:         newAccountsRepository(),
		transactions:     make(map[string]*transaction.ApiTransactionResult),
	}, nil
}

// SetStateMultiple overwrites the state of the provided accounts
func (s *simulator) SetStateMultiple(states []*dtos.AddressState) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	for _, state := range states {
		err := s.setState(state)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *simulator) setState(state *dtos.AddressState) error {
	if state == nil {
		return nil
	}

	address, err := s.addressConverter.Decode(state.Address)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidAddress, state.Address, err)
	}

	acc := newUserAccount(address)
	acc.nonce = state.Nonce
	if len(state.Balance) > 0 {
		acc.balance, err = parseValue(state.Balance)
		if err != nil {
			return err
		}
	}
	for token, amount := range state.ESDTBalances {
		value, errParse := parseValue(amount)
		if errParse != nil {
			return errParse
		}

		acc.addESDT(token, 0, value)
	}

	if len(state.Code) > 0 {
		acc.code, err = hex.DecodeString(state.Code)
		if err != nil {
			return fmt.Errorf("%w for code of %s", err, state.Address)
		}
		acc.codeMetadata, err = hex.DecodeString(state.CodeMetadata)
		if err != nil {
			return fmt.Errorf("%w for code metadata of %s", err, state.Address)
		}
		acc.ownerAddress, err = s.addressConverter.Decode(state.Owner)
		if err != nil {
			return fmt.Errorf("%w owner %s: %v", ErrInvalidAddress, state.Owner, err)
		}
		acc.contract = newFeeContract()
	}

	s.accounts.accounts[string(address)] = acc
	log.Debug("account state set", "address", state.Address, "nonce", acc.nonce, "balance", acc.balance.String())

	return nil
}

// GetNetworkConfig returns the simulated network parameters
func (s *simulator) GetNetworkConfig() *data.NetworkConfig {
	cfg := s.networkConfig
	return &cfg
}

// GetAccount returns the account at the bech32 address. Unknown accounts are returned empty.
func (s *simulator) GetAccount(address string) (*data.Account, error) {
	addressBytes, err := s.addressConverter.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidAddress, address, err)
	}

	s.mut.RLock()
	defer s.mut.RUnlock()

	acc, ok := s.accounts.getAccount(addressBytes)
	if !ok {
		return &data.Account{Address: address, Balance: "0"}, nil
	}

	response := &data.Account{
		Address: address,
		Nonce:   acc.nonce,
		Balance: acc.balance.String(),
		Code:    hex.EncodeToString(acc.code),
	}
	if len(acc.ownerAddress) > 0 {
		response.OwnerAddress, _ = s.addressConverter.Encode(acc.ownerAddress)
	}

	return response, nil
}

// GetESDTBalance returns the balance of a fungible token held at the bech32 address
func (s *simulator) GetESDTBalance(address string, tokenIdentifier string) (*big.Int, error) {
	addressBytes, err := s.addressConverter.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidAddress, address, err)
	}

	s.mut.RLock()
	defer s.mut.RUnlock()

	acc, ok := s.accounts.getAccount(addressBytes)
	if !ok {
		return big.NewInt(0), nil
	}

	return acc.esdtBalance(tokenIdentifier, 0), nil
}

// SendTransaction validates and executes the transaction, returning its hash. A transaction failing validation is
// rejected and not stored, while a transaction failing execution is stored with the fail status.
func (s *simulator) SendTransaction(tx *transaction.FrontendTransaction) (string, error) {
	if tx == nil {
		return "", ErrNilTransaction
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	validated, err := s.validateTransaction(tx)
	if err != nil {
		log.Debug("transaction rejected", "sender", tx.Sender, "nonce", tx.Nonce, "error", err.Error())
		return "", err
	}

	txHash, err := computeTransactionHash(tx)
	if err != nil {
		return "", err
	}

	senderAccount := s.accounts.loadOrCreateAccount(validated.sender)
	err = senderAccount.subBalance(validated.fee)
	if err != nil {
		return "", err
	}
	senderAccount.nonce++

	s.roundHandler.IncrementIndex()
	result := s.newTransactionResult(tx, txHash)
	s.executeTransaction(result, validated)
	s.transactions[txHash] = result

	log.Debug("transaction executed", "hash", txHash, "status", result.Status, "function", result.Function)

	return txHash, nil
}

type validatedTransaction struct {
	sender   []byte
	receiver []byte
	nonce    uint64
	value    *big.Int
	fee      *big.Int
	data     []byte
}

func (s *simulator) validateTransaction(tx *transaction.FrontendTransaction) (*validatedTransaction, error) {
	if tx.ChainID != s.networkConfig.ChainID {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidChainID, s.networkConfig.ChainID, tx.ChainID)
	}
	if tx.Version < s.networkConfig.MinTransactionVersion {
		return nil, fmt.Errorf("%w: minimum %d, got %d", ErrInvalidVersion, s.networkConfig.MinTransactionVersion, tx.Version)
	}
	if tx.GasPrice < s.networkConfig.MinGasPrice {
		return nil, fmt.Errorf("%w: minimum %d, got %d", ErrInsufficientGasPrice, s.networkConfig.MinGasPrice, tx.GasPrice)
	}

	minGasLimit := s.networkConfig.MinGasLimit + uint64(len(tx.Data))*s.networkConfig.GasPerDataByte
	if tx.GasLimit < minGasLimit {
		return nil, fmt.Errorf("%w: minimum %d, got %d", ErrInsufficientGasLimit, minGasLimit, tx.GasLimit)
	}

	sender, err := s.addressConverter.Decode(tx.Sender)
	if err != nil {
		return nil, fmt.Errorf("%w sender %s: %v", ErrInvalidAddress, tx.Sender, err)
	}
	receiver, err := s.addressConverter.Decode(tx.Receiver)
	if err != nil {
		return nil, fmt.Errorf("%w receiver %s: %v", ErrInvalidAddress, tx.Receiver, err)
	}

	value, err := parseValue(tx.Value)
	if err != nil {
		return nil, err
	}

	err = wallet.VerifyTransactionSignature(tx, s.addressConverter)
	if err != nil {
		return nil, err
	}

	senderAccount, ok := s.accounts.getAccount(sender)
	accountNonce := uint64(0)
	balance := big.NewInt(0)
	if ok {
		accountNonce = senderAccount.nonce
		balance = senderAccount.balance
	}
	if tx.Nonce != accountNonce {
		return nil, fmt.Errorf("%w: account nonce %d, got %d", ErrInvalidNonce, accountNonce, tx.Nonce)
	}

	fee := big.NewInt(0).Mul(big.NewInt(0).SetUint64(tx.GasLimit), big.NewInt(0).SetUint64(tx.GasPrice))
	required := big.NewInt(0).Add(fee, value)
	if balance.Cmp(required) < 0 {
		return nil, fmt.Errorf("%w: balance %s, required %s", ErrInsufficientFunds, balance, required)
	}

	return &validatedTransaction{
		sender:   sender,
		receiver: receiver,
		nonce:    tx.Nonce,
		value:    value,
		fee:      fee,
		data:     tx.Data,
	}, nil
}

// executeTransaction applies the transaction on the accounts. On failure every change but the nonce increment and
// the fee payment is reverted.
func (s *simulator) executeTransaction(result *transaction.ApiTransactionResult, tx *validatedTransaction) {
	snapshot := s.accounts.snapshot()

	var failure *data.DeclaredFailure
	if bytes.Equal(tx.receiver, common.SystemDeployAddress) {
		failure = s.executeDeploy(result, tx)
	} else {
		failure = s.executeCall(result, tx)
	}

	if failure == nil {
		result.Status = transaction.TxStatusSuccess
		return
	}

	s.accounts.revertToSnapshot(snapshot)
	result.Status = transaction.TxStatusFail
	result.SmartContractResults = nil
	result.Logs = s.createSignalErrorLogs(tx, failure)
}

func (s *simulator) executeDeploy(result *transaction.ApiTransactionResult, tx *validatedTransaction) *data.DeclaredFailure {
	deploy, err := parseDeployData(tx.data)
	if err != nil {
		return data.NewDeclaredFailure(vmcommon.ContractInvalid, err.Error())
	}

	contractAddress := newContractAddress(tx.sender, tx.nonce)
	contractAccount := s.accounts.loadOrCreateAccount(contractAddress)
	contractAccount.code = deploy.code
	contractAccount.codeMetadata = deploy.codeMetadata
	contractAccount.ownerAddress = tx.sender
	contractAccount.contract = newFeeContract()

	sender := s.accounts.loadOrCreateAccount(tx.sender)
	err = s.accounts.transferValue(sender, contractAccount, tx.value)
	if err != nil {
		return data.NewDeclaredFailure(vmcommon.OutOfFunds, err.Error())
	}

	output, failure := contractAccount.contract.execute(&contractCall{
		caller:    tx.sender,
		owner:     tx.sender,
		function:  functionInit,
		arguments: deploy.arguments,
		value:     tx.value,
	})
	if failure != nil {
		return failure
	}

	result.Function = functionInit
	result.Logs = s.createDeployLogs(contractAddress, tx.sender)
	result.SmartContractResults = []*transaction.ApiSmartContractResult{
		s.createOkResult(result, tx, contractAddress, output.returnData),
	}

	return nil
}

func (s *simulator) executeCall(result *transaction.ApiTransactionResult, tx *validatedTransaction) *data.DeclaredFailure {
	input, err := parseCallData(tx.receiver, tx.data)
	if err != nil {
		return data.NewDeclaredFailure(vmcommon.ExecutionFailed, err.Error())
	}
	result.Function = input.function

	sender := s.accounts.loadOrCreateAccount(tx.sender)
	destination := s.accounts.loadOrCreateAccount(input.destination)

	err = s.accounts.transferValue(sender, destination, tx.value)
	if err != nil {
		return data.NewDeclaredFailure(vmcommon.OutOfFunds, err.Error())
	}
	err = s.accounts.transferESDT(sender, destination, input.payments)
	if err != nil {
		return data.NewDeclaredFailure(vmcommon.ExecutionFailed, err.Error())
	}

	if !destination.isContract() {
		return nil
	}

	output, failure := destination.contract.execute(&contractCall{
		caller:    tx.sender,
		owner:     destination.ownerAddress,
		function:  input.function,
		arguments: input.arguments,
		payments:  input.payments,
		value:     tx.value,
	})
	if failure != nil {
		return failure
	}

	scrs := make([]*transaction.ApiSmartContractResult, 0, len(output.transfers)+1)
	scrs = append(scrs, s.createOkResult(result, tx, input.destination, output.returnData))
	for i, transfer := range output.transfers {
		scr, errTransfer := s.applyOutputTransfer(result, destination, transfer, i+1)
		if errTransfer != nil {
			return data.NewDeclaredFailure(vmcommon.ExecutionFailed, errTransfer.Error())
		}
		if scr != nil {
			scrs = append(scrs, scr)
		}
	}
	result.SmartContractResults = scrs

	return nil
}

func (s *simulator) applyOutputTransfer(
	result *transaction.ApiTransactionResult,
	contractAccount *userAccount,
	transfer outputTransfer,
	index int,
) (*transaction.ApiSmartContractResult, error) {
	payments := make([]data.EsdtPayment, 0, len(transfer.payments))
	for _, payment := range transfer.payments {
		if payment.Amount != nil && payment.Amount.Sign() > 0 {
			payments = append(payments, payment)
		}
	}
	if len(payments) == 0 {
		return nil, nil
	}

	receiver := s.accounts.loadOrCreateAccount(transfer.destination)
	err := s.accounts.transferESDT(contractAccount, receiver, payments)
	if err != nil {
		return nil, err
	}

	return s.createTransferResult(result, contractAccount.address, transfer.destination, payments, index), nil
}

// GetTransactionStatus returns the process status of a received transaction
func (s *simulator) GetTransactionStatus(txHash string) (transaction.TxStatus, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	result, ok := s.transactions[txHash]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTransactionNotFound, txHash)
	}

	return result.Status, nil
}

// GetTransaction returns a received transaction, with its smart contract results and logs if requested
func (s *simulator) GetTransaction(txHash string, withResults bool) (*transaction.ApiTransactionResult, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	result, ok := s.transactions[txHash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, txHash)
	}

	copied := *result
	if !withResults {
		copied.SmartContractResults = nil
		copied.Logs = nil
	}

	return &copied, nil
}

// ExecuteQuery runs a read-only call. Declared failures are reported through the return code of the output.
func (s *simulator) ExecuteQuery(request *data.VmValueRequest) (*vm.VMOutputApi, error) {
	if request == nil {
		return nil, ErrNilQuery
	}

	scAddress, err := s.addressConverter.Decode(request.Address)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidAddress, request.Address, err)
	}

	var caller []byte
	if len(request.CallerAddr) > 0 {
		caller, err = s.addressConverter.Decode(request.CallerAddr)
		if err != nil {
			return nil, fmt.Errorf("%w caller %s: %v", ErrInvalidAddress, request.CallerAddr, err)
		}
	}

	value, err := parseValue(request.CallValue)
	if err != nil {
		return nil, err
	}

	arguments, err := decodeHexParts(request.Args)
	if err != nil {
		return nil, err
	}

	s.mut.RLock()
	defer s.mut.RUnlock()

	acc, ok := s.accounts.getAccount(scAddress)
	if !ok || !acc.isContract() {
		return nil, fmt.Errorf("%w: %s", ErrNotAContract, request.Address)
	}

	output, failure := acc.contract.clone().execute(&contractCall{
		caller:    caller,
		owner:     acc.ownerAddress,
		function:  request.FuncName,
		arguments: arguments,
		value:     value,
		isQuery:   true,
	})
	if failure != nil {
		return &vm.VMOutputApi{
			ReturnCode:    failure.Code.String(),
			ReturnMessage: failure.Message,
		}, nil
	}

	return &vm.VMOutputApi{
		ReturnData: output.returnData,
		ReturnCode: vmcommon.Ok.String(),
	}, nil
}

// GenerateBlocks advances the simulated rounds
func (s *simulator) GenerateBlocks(numOfBlocks int) error {
	for i := 0; i < numOfBlocks; i++ {
		s.roundHandler.IncrementIndex()
	}

	return nil
}

// Close does nothing as the simulator holds no resources
func (s *simulator) Close() error {
	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (s *simulator) IsInterfaceNil() bool {
	return s == nil
}

func parseValue(value string) (*big.Int, error) {
	if len(value) == 0 {
		return big.NewInt(0), nil
	}

	parsed, ok := big.NewInt(0).SetString(value, 10)
	if !ok || parsed.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, value)
	}

	return parsed, nil
}

func computeTransactionHash(tx *transaction.FrontendTransaction) (string, error) {
	buff, err := json.Marshal(tx)
	if err != nil {
		return "", err
	}

	hash := blake2b.Sum256(buff)

	return hex.EncodeToString(hash[:]), nil
}
