package chainSimulator

import (
	"bytes"
	"math/big"

	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const (
	percentageDivisor = 10_000

	functionInit             = "init"
	functionSetExactValueFee = "setExactValueFee"
	functionSetPercentageFee = "setPercentageFee"
	functionTransfer         = "transfer"
	functionClaimFees        = "claimFees"
	functionGetTokenFee      = "getTokenFee"
	functionGetPaidFees      = "getPaidFees"

	messageOnlyOwner          = "Endpoint can only be called by owner"
	messageNativeNotAllowed   = "EGLD transfers not allowed"
	messageFeePaymentMissing  = "Fee payment missing"
	messageWrongFeeToken      = "Wrong fee token"
	messageMismatchingPayment = "Mismatching payment for covering fees"
	messageNothingToClaim     = "There is nothing to claim"
	messageWrongNumArguments  = "wrong number of arguments"
	messageArgumentDecode     = "argument decode error"
	messageNotPayableNative   = "function does not accept EGLD payment"
	messageNotPayableESDT     = "function does not accept ESDT payment"
	messageFunctionNotFound   = "invalid function (not found)"
	messageReadOnlyFunction   = "function is read only"
)

var contractSerializer = abi.NewDefaultSerializer()

type paidFeeKey struct {
	tokenIdentifier string
	nonce           uint64
}

type contractCall struct {
	caller    []byte
	owner     []byte
	function  string
	arguments [][]byte
	payments  []data.EsdtPayment
	value     *big.Int
	isQuery   bool
}

type outputTransfer struct {
	destination []byte
	payments    []data.EsdtPayment
}

type contractOutput struct {
	returnData [][]byte
	transfers  []outputTransfer
}

// feeContract mimics the esdt transfer with fee contract: owner configured fees per token, fee collection on
// transfers and fee claiming
type feeContract struct {
	tokenFees    map[string]data.TokenFee
	paidFeesKeys []paidFeeKey
	paidFees     map[paidFeeKey]*big.Int
}

func newFeeContract() *feeContract {
	return &feeContract{
		tokenFees:    make(map[string]data.TokenFee),
		paidFeesKeys: make([]paidFeeKey, 0),
		paidFees:     make(map[paidFeeKey]*big.Int),
	}
}

func (fc *feeContract) clone() *feeContract {
	cloned := newFeeContract()
	for token, fee := range fc.tokenFees {
		cloned.tokenFees[token] = fee
	}
	for _, key := range fc.paidFeesKeys {
		cloned.paidFeesKeys = append(cloned.paidFeesKeys, key)
		cloned.paidFees[key] = big.NewInt(0).Set(fc.paidFees[key])
	}

	return cloned
}

func userError(message string) *data.DeclaredFailure {
	return data.NewDeclaredFailure(vmcommon.UserError, message)
}

func (fc *feeContract) execute(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	switch call.function {
	case functionInit:
		return fc.init(call)
	case functionSetExactValueFee:
		return fc.setExactValueFee(call)
	case functionSetPercentageFee:
		return fc.setPercentageFee(call)
	case functionTransfer:
		return fc.transfer(call)
	case functionClaimFees:
		return fc.claimFees(call)
	case functionGetTokenFee:
		return fc.getTokenFee(call)
	case functionGetPaidFees:
		return fc.getPaidFees(call)
	default:
		return nil, data.NewDeclaredFailure(vmcommon.FunctionNotFound, messageFunctionNotFound)
	}
}

func (fc *feeContract) init(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkEndpoint(call, 0, false)
	if failure != nil {
		return nil, failure
	}

	return &contractOutput{}, nil
}

func (fc *feeContract) setExactValueFee(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkOwnerEndpoint(call, 3)
	if failure != nil {
		return nil, failure
	}

	feeToken := &abi.StringValue{}
	feeAmount := &abi.BigUIntValue{}
	token := &abi.StringValue{}
	failure = decodeArguments(call.arguments, feeToken, feeAmount, token)
	if failure != nil {
		return nil, failure
	}

	fc.tokenFees[token.Value] = data.TokenFee{
		Type: data.FeeExactValue,
		Payment: &data.EsdtPayment{
			TokenIdentifier: feeToken.Value,
			Amount:          feeAmount.Value,
		},
	}

	return &contractOutput{}, nil
}

func (fc *feeContract) setPercentageFee(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkOwnerEndpoint(call, 2)
	if failure != nil {
		return nil, failure
	}

	feePercent := &abi.U32Value{}
	token := &abi.StringValue{}
	failure = decodeArguments(call.arguments, feePercent, token)
	if failure != nil {
		return nil, failure
	}

	fc.tokenFees[token.Value] = data.TokenFee{
		Type:    data.FeePercentage,
		Percent: feePercent.Value,
	}

	return &contractOutput{}, nil
}

// transfer forwards the payments to the destination after retaining the configured fees. A token with an exact
// value fee must be immediately followed by its fee payment.
func (fc *feeContract) transfer(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	if call.isQuery {
		return nil, userError(messageReadOnlyFunction)
	}
	if len(call.arguments) != 1 {
		return nil, userError(messageWrongNumArguments)
	}
	if call.value != nil && call.value.Sign() > 0 {
		return nil, userError(messageNativeNotAllowed)
	}

	destination := &abi.AddressValue{}
	failure := decodeArguments(call.arguments, destination)
	if failure != nil {
		return nil, failure
	}

	forwarded := make([]data.EsdtPayment, 0, len(call.payments))
	for i := 0; i < len(call.payments); i++ {
		payment := call.payments[i]
		fee := fc.tokenFees[payment.TokenIdentifier]

		switch fee.Type {
		case data.FeeExactValue:
			if i+1 >= len(call.payments) {
				return nil, userError(messageFeePaymentMissing)
			}
			i++
			feePayment := call.payments[i]
			if feePayment.TokenIdentifier != fee.Payment.TokenIdentifier || feePayment.Nonce != fee.Payment.Nonce {
				return nil, userError(messageWrongFeeToken)
			}
			if feePayment.Amount.Cmp(fee.Payment.Amount) < 0 {
				return nil, userError(messageMismatchingPayment)
			}

			fc.addPaidFee(feePayment.TokenIdentifier, feePayment.Nonce, fee.Payment.Amount)
			forwarded = append(forwarded, payment)
		case data.FeePercentage:
			feeAmount := big.NewInt(0).Mul(payment.Amount, big.NewInt(int64(fee.Percent)))
			feeAmount.Div(feeAmount, big.NewInt(percentageDivisor))
			fc.addPaidFee(payment.TokenIdentifier, payment.Nonce, feeAmount)

			forwarded = append(forwarded, data.EsdtPayment{
				TokenIdentifier: payment.TokenIdentifier,
				Nonce:           payment.Nonce,
				Amount:          big.NewInt(0).Sub(payment.Amount, feeAmount),
			})
		default:
			forwarded = append(forwarded, payment)
		}
	}

	return &contractOutput{
		transfers: []outputTransfer{{destination: destination.Value, payments: forwarded}},
	}, nil
}

func (fc *feeContract) claimFees(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkOwnerEndpoint(call, 0)
	if failure != nil {
		return nil, failure
	}
	if len(fc.paidFeesKeys) == 0 {
		return nil, userError(messageNothingToClaim)
	}

	fees := make([]data.EsdtPayment, 0, len(fc.paidFeesKeys))
	for _, key := range fc.paidFeesKeys {
		fees = append(fees, data.EsdtPayment{
			TokenIdentifier: key.tokenIdentifier,
			Nonce:           key.nonce,
			Amount:          fc.paidFees[key],
		})
	}

	fc.paidFeesKeys = make([]paidFeeKey, 0)
	fc.paidFees = make(map[paidFeeKey]*big.Int)

	return &contractOutput{
		transfers: []outputTransfer{{destination: call.caller, payments: fees}},
	}, nil
}

func (fc *feeContract) getTokenFee(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkEndpoint(call, 1, false)
	if failure != nil {
		return nil, failure
	}

	token := &abi.StringValue{}
	failure = decodeArguments(call.arguments, token)
	if failure != nil {
		return nil, failure
	}

	fee := fc.tokenFees[token.Value]
	value := abi.EnumValue{Discriminant: uint8(fee.Type)}
	switch fee.Type {
	case data.FeeExactValue:
		value.Fields = []abi.Field{{
			Name: "payment",
			Value: abi.StructValue{Fields: []abi.Field{
				{Name: "token_identifier", Value: abi.StringValue{Value: fee.Payment.TokenIdentifier}},
				{Name: "token_nonce", Value: abi.U64Value{Value: fee.Payment.Nonce}},
				{Name: "amount", Value: abi.BigUIntValue{Value: fee.Payment.Amount}},
			}},
		}}
	case data.FeePercentage:
		value.Fields = []abi.Field{{Name: "percent", Value: abi.U32Value{Value: fee.Percent}}}
	}

	return encodeResults(value)
}

func (fc *feeContract) getPaidFees(call *contractCall) (*contractOutput, *data.DeclaredFailure) {
	failure := checkEndpoint(call, 0, false)
	if failure != nil {
		return nil, failure
	}

	entries := make([]any, 0, len(fc.paidFeesKeys))
	for _, key := range fc.paidFeesKeys {
		entries = append(entries, abi.InputMultiValue{Items: []any{
			abi.StructValue{Fields: []abi.Field{
				{Name: "token_identifier", Value: abi.StringValue{Value: key.tokenIdentifier}},
				{Name: "token_nonce", Value: abi.U64Value{Value: key.nonce}},
			}},
			abi.BigUIntValue{Value: fc.paidFees[key]},
		}})
	}

	return encodeResults(abi.InputVariadicValues{Items: entries})
}

func (fc *feeContract) addPaidFee(tokenIdentifier string, nonce uint64, amount *big.Int) {
	key := paidFeeKey{tokenIdentifier: tokenIdentifier, nonce: nonce}
	current, ok := fc.paidFees[key]
	if !ok {
		current = big.NewInt(0)
		fc.paidFees[key] = current
		fc.paidFeesKeys = append(fc.paidFeesKeys, key)
	}

	current.Add(current, amount)
}

func checkOwnerEndpoint(call *contractCall, numArguments int) *data.DeclaredFailure {
	if call.isQuery {
		return userError(messageReadOnlyFunction)
	}
	if !bytes.Equal(call.caller, call.owner) {
		return userError(messageOnlyOwner)
	}

	return checkEndpoint(call, numArguments, false)
}

func checkEndpoint(call *contractCall, numArguments int, payable bool) *data.DeclaredFailure {
	if !payable && call.value != nil && call.value.Sign() > 0 {
		return userError(messageNotPayableNative)
	}
	if !payable && len(call.payments) > 0 {
		return userError(messageNotPayableESDT)
	}
	if len(call.arguments) != numArguments {
		return userError(messageWrongNumArguments)
	}

	return nil
}

func decodeArguments(arguments [][]byte, values ...any) *data.DeclaredFailure {
	err := contractSerializer.DeserializeParts(arguments, values)
	if err != nil {
		return userError(messageArgumentDecode)
	}

	return nil
}

func encodeResults(values ...any) (*contractOutput, *data.DeclaredFailure) {
	returnData, err := contractSerializer.SerializeToParts(values)
	if err != nil {
		return nil, data.NewDeclaredFailure(vmcommon.ExecutionFailed, err.Error())
	}

	return &contractOutput{returnData: returnData}, nil
}
