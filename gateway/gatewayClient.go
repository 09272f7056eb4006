package gateway

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/pkg/errors"
)

const (
	networkConfigEndpoint   = "network/config"
	addressEndpoint         = "address/%s"
	sendTransactionEndpoint = "transaction/send"
	processStatusEndpoint   = "transaction/%s/process-status"
	transactionEndpoint     = "transaction/%s?withResults=true"
	vmValuesQueryEndpoint   = "vm-values/query"

	contentTypeJSON = "application/json"
)

var log = logger.GetOrCreate("gateway")

// ArgsGatewayClient is the DTO used to create a new gateway client
type ArgsGatewayClient struct {
	URL                   string
	RequestTimeout        time.Duration
	StatusPollingInterval time.Duration
}

type gatewayClient struct {
	baseURL               string
	httpClient            *http.Client
	statusPollingInterval time.Duration
}

// NewGatewayClient creates a client of the gateway REST API. RequestTimeout bounds each REST call, a zero value
// means no bound.
func NewGatewayClient(args ArgsGatewayClient) (*gatewayClient, error) {
	if len(args.URL) == 0 {
		return nil, ErrEmptyURL
	}
	if args.StatusPollingInterval <= 0 {
		return nil, ErrInvalidPollingInterval
	}

	return &gatewayClient{
		baseURL:               strings.TrimSuffix(args.URL, "/"),
		httpClient:            &http.Client{Timeout: args.RequestTimeout},
		statusPollingInterval: args.StatusPollingInterval,
	}, nil
}

// GetNetworkConfig returns the network parameters (chain ID, min gas price)
func (gc *gatewayClient) GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error) {
	response := &data.NetworkConfigResponse{}
	err := gc.doGet(ctx, networkConfigEndpoint, response)
	if err != nil {
		return nil, err
	}
	if response.Config == nil {
		return nil, errors.Wrap(ErrEmptyResponse, networkConfigEndpoint)
	}

	return response.Config, nil
}

// GetAccount returns the account found at the bech32 address
func (gc *gatewayClient) GetAccount(ctx context.Context, address string) (*data.Account, error) {
	endpoint := fmt.Sprintf(addressEndpoint, url.PathEscape(address))
	response := &data.AccountResponse{}
	err := gc.doGet(ctx, endpoint, response)
	if err != nil {
		return nil, err
	}
	if response.Account == nil {
		return nil, errors.Wrap(ErrEmptyResponse, endpoint)
	}

	return response.Account, nil
}

// SendTransaction broadcasts a signed transaction and returns its hash
func (gc *gatewayClient) SendTransaction(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
	if tx == nil {
		return "", ErrNilTransaction
	}

	response := &data.SendTransactionResponse{}
	err := gc.doPost(ctx, sendTransactionEndpoint, tx, response)
	if err != nil {
		return "", err
	}
	if len(response.TxHash) == 0 {
		return "", errors.Wrap(ErrEmptyResponse, sendTransactionEndpoint)
	}

	log.Debug("sent transaction", "hash", response.TxHash, "nonce", tx.Nonce, "receiver", tx.Receiver)

	return response.TxHash, nil
}

// GetTransactionStatus returns the process status of the transaction (pending, success, fail or invalid)
func (gc *gatewayClient) GetTransactionStatus(ctx context.Context, txHash string) (transaction.TxStatus, error) {
	endpoint := fmt.Sprintf(processStatusEndpoint, url.PathEscape(txHash))
	response := &data.ProcessStatusResponse{}
	err := gc.doGet(ctx, endpoint, response)
	if err != nil {
		return "", err
	}

	return transaction.TxStatus(response.Status), nil
}

// GetTransactionResult returns the transaction together with its smart contract results and logs
func (gc *gatewayClient) GetTransactionResult(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error) {
	endpoint := fmt.Sprintf(transactionEndpoint, url.PathEscape(txHash))
	response := &data.TransactionResponse{}
	err := gc.doGet(ctx, endpoint, response)
	if err != nil {
		return nil, err
	}
	if response.Transaction == nil {
		return nil, errors.Wrap(ErrEmptyResponse, endpoint)
	}

	return response.Transaction, nil
}

// WaitForTransaction polls the transaction status until it leaves the pending state, then returns its result.
// Only ctx bounds the wait.
func (gc *gatewayClient) WaitForTransaction(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error) {
	for {
		status, err := gc.GetTransactionStatus(ctx, txHash)
		if err != nil {
			return nil, err
		}

		if status != transaction.TxStatusPending && len(status) > 0 {
			log.Debug("transaction executed", "hash", txHash, "status", status)
			return gc.GetTransactionResult(ctx, txHash)
		}

		log.Trace("transaction pending", "hash", txHash)

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "while waiting for transaction %s", txHash)
		case <-time.After(gc.statusPollingInterval):
		}
	}
}

// ExecuteQuery runs a read-only contract call
func (gc *gatewayClient) ExecuteQuery(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error) {
	if query == nil {
		return nil, ErrNilQuery
	}

	args := make([]string, 0, len(query.Arguments))
	for _, arg := range query.Arguments {
		args = append(args, hex.EncodeToString(arg))
	}

	request := &data.VmValueRequest{
		Address:  scAddress,
		FuncName: query.Function,
		Args:     args,
	}

	response := &data.VmValuesResponse{}
	err := gc.doPost(ctx, vmValuesQueryEndpoint, request, response)
	if err != nil {
		return nil, err
	}
	if response.Data == nil {
		return nil, errors.Wrap(ErrEmptyResponse, vmValuesQueryEndpoint)
	}

	return response.Data, nil
}

func (gc *gatewayClient) doGet(ctx context.Context, endpoint string, target interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, gc.baseURL+"/"+endpoint, nil)
	if err != nil {
		return err
	}

	return gc.doRequest(request, endpoint, target)
}

func (gc *gatewayClient) doPost(ctx context.Context, endpoint string, payload interface{}, target interface{}) error {
	buff, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.baseURL+"/"+endpoint, bytes.NewReader(buff))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", contentTypeJSON)

	return gc.doRequest(request, endpoint, target)
}

func (gc *gatewayClient) doRequest(request *http.Request, endpoint string, target interface{}) error {
	response, err := gc.httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(err, "cannot reach gateway for %s", endpoint)
	}

	defer func() {
		errClose := response.Body.Close()
		if errClose != nil {
			log.Warn("cannot close response body", "endpoint", endpoint, "error", errClose.Error())
		}
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrapf(err, "cannot read gateway response for %s", endpoint)
	}

	genericResponse := &data.GenericAPIResponse{
		Data: target,
	}
	err = json.Unmarshal(body, genericResponse)
	if err != nil {
		return errors.Wrapf(err, "cannot decode gateway response for %s (http status %d)", endpoint, response.StatusCode)
	}

	if response.StatusCode != http.StatusOK || genericResponse.Code != data.ReturnCodeSuccess {
		return errors.Wrapf(ErrGatewayRequestFailed, "%s: http status %d, code %s, error %s",
			endpoint, response.StatusCode, genericResponse.Code, genericResponse.Error)
	}

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (gc *gatewayClient) IsInterfaceNil() bool {
	return gc == nil
}
