package interactor

import (
	"fmt"

	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

func newTokenPaymentStruct(token *abi.BytesValue, nonce *abi.U64Value, amount *abi.BigUIntValue) *abi.StructValue {
	return &abi.StructValue{
		Fields: []abi.Field{
			{Name: "token_identifier", Value: token},
			{Name: "token_nonce", Value: nonce},
			{Name: "amount", Value: amount},
		},
	}
}

func (ci *contractInteractor) decodeTokenFee(returnData [][]byte) (*data.TokenFee, error) {
	if len(returnData) == 0 {
		return &data.TokenFee{Type: data.FeeUnset}, nil
	}

	feeToken := &abi.BytesValue{}
	feeNonce := &abi.U64Value{}
	feeAmount := &abi.BigUIntValue{}
	percent := &abi.U32Value{}

	fee := &abi.EnumValue{
		FieldsProvider: func(discriminant uint8) []abi.Field {
			switch data.FeeType(discriminant) {
			case data.FeeExactValue:
				return []abi.Field{{Name: "payment", Value: newTokenPaymentStruct(feeToken, feeNonce, feeAmount)}}
			case data.FeePercentage:
				return []abi.Field{{Name: "percent", Value: percent}}
			default:
				return nil
			}
		},
	}

	err := ci.serializer.DeserializeParts(returnData[:1], []any{fee})
	if err != nil {
		return nil, err
	}

	feeType := data.FeeType(fee.Discriminant)
	switch feeType {
	case data.FeeUnset:
		return &data.TokenFee{Type: feeType}, nil
	case data.FeeExactValue:
		return &data.TokenFee{
			Type: feeType,
			Payment: &data.EsdtPayment{
				TokenIdentifier: string(feeToken.Value),
				Nonce:           feeNonce.Value,
				Amount:          feeAmount.Value,
			},
		}, nil
	case data.FeePercentage:
		return &data.TokenFee{
			Type:    feeType,
			Percent: percent.Value,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFeeType, fee.Discriminant)
	}
}

func (ci *contractInteractor) decodePaidFees(returnData [][]byte) ([]data.PaidFee, error) {
	entries := &abi.OutputVariadicValues{
		ItemCreator: func() any {
			return &abi.OutputMultiValue{
				Items: []any{
					&abi.StructValue{
						Fields: []abi.Field{
							{Name: "token_identifier", Value: &abi.BytesValue{}},
							{Name: "token_nonce", Value: &abi.U64Value{}},
						},
					},
					&abi.BigUIntValue{},
				},
			}
		},
	}

	err := ci.serializer.DeserializeParts(returnData, []any{entries})
	if err != nil {
		return nil, err
	}

	paidFees := make([]data.PaidFee, 0, len(entries.Items))
	for _, item := range entries.Items {
		pair := item.(*abi.OutputMultiValue)
		key := pair.Items[0].(*abi.StructValue)
		amount := pair.Items[1].(*abi.BigUIntValue)

		paidFees = append(paidFees, data.PaidFee{
			TokenIdentifier: string(key.Fields[0].Value.(*abi.BytesValue).Value),
			Nonce:           key.Fields[1].Value.(*abi.U64Value).Value,
			Amount:          amount.Value,
		})
	}

	return paidFees, nil
}
