package interactor

import (
	"context"
	"fmt"
	"math/big"

	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// ScenarioAction is the call exercised by a scenario after its setup
type ScenarioAction uint8

const (
	// ActionTransfer calls the transfer endpoint with the scenario payments and native value
	ActionTransfer ScenarioAction = iota
	// ActionClaim calls the claimFees endpoint
	ActionClaim
)

// Scenario is one row of the fee scenarios table
type Scenario struct {
	Name             string
	FeePolicy        *data.FeePolicy
	Action           ScenarioAction
	Payments         []data.EsdtPayment
	NativeValue      *big.Int
	Expected         *data.DeclaredFailure
	ExpectedPaidFees []data.PaidFee
	ClaimAfter       bool
}

// ScenarioTokens holds the token identifiers used to build the default scenarios table
type ScenarioTokens struct {
	Token    string
	FeeToken string
}

func userError(message string) *data.DeclaredFailure {
	return data.NewDeclaredFailure(vmcommon.UserError, message)
}

func policyPtr(policy data.FeePolicy) *data.FeePolicy {
	return &policy
}

// DefaultScenarios returns the fee scenarios: one success round trip per fee type and one row per declared failure
func DefaultScenarios(tokens ScenarioTokens) []Scenario {
	token := tokens.Token
	otherToken := tokens.FeeToken

	return []Scenario{
		{
			Name:      "exact value fee round trip",
			FeePolicy: policyPtr(data.NewExactValueFeePolicy(token, big.NewInt(1), token)),
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(1000)),
				data.NewFungiblePayment(token, big.NewInt(1)),
			},
			ExpectedPaidFees: []data.PaidFee{{TokenIdentifier: token, Amount: big.NewInt(1)}},
			ClaimAfter:       true,
		},
		{
			Name:      "fee payment missing",
			FeePolicy: policyPtr(data.NewExactValueFeePolicy(token, big.NewInt(1), token)),
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(1000)),
			},
			Expected: userError("Fee payment missing"),
		},
		{
			Name:      "wrong fee token",
			FeePolicy: policyPtr(data.NewExactValueFeePolicy(token, big.NewInt(1), token)),
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(1000)),
				data.NewFungiblePayment(otherToken, big.NewInt(2)),
			},
			Expected: userError("Wrong fee token"),
		},
		{
			Name:      "mismatching fee amount",
			FeePolicy: policyPtr(data.NewExactValueFeePolicy(token, big.NewInt(10), token)),
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(13)),
				data.NewFungiblePayment(token, big.NewInt(9)),
			},
			Expected: userError("Mismatching payment for covering fees"),
		},
		{
			Name:        "native transfer",
			FeePolicy:   policyPtr(data.NewExactValueFeePolicy(token, big.NewInt(1), token)),
			NativeValue: big.NewInt(1000),
			Expected:    userError("EGLD transfers not allowed"),
		},
		{
			Name:     "nothing to claim",
			Action:   ActionClaim,
			Expected: userError("There is nothing to claim"),
		},
		{
			Name:      "percentage fee round trip",
			FeePolicy: policyPtr(data.NewPercentageFeePolicy(10, token)),
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(1000)),
				data.NewFungiblePayment(token, big.NewInt(2)),
			},
			ExpectedPaidFees: []data.PaidFee{{TokenIdentifier: token, Amount: big.NewInt(1)}},
			ClaimAfter:       true,
		},
		{
			Name: "fee not set",
			Payments: []data.EsdtPayment{
				data.NewFungiblePayment(token, big.NewInt(1000)),
				data.NewFungiblePayment(token, big.NewInt(2)),
			},
			ExpectedPaidFees: make([]data.PaidFee, 0),
		},
	}
}

// RunScenario deploys a fresh contract, applies the scenario setup and checks the action outcome.
// A nil ExpectedPaidFees skips the paid fees check.
func (ci *contractInteractor) RunScenario(ctx context.Context, scenario Scenario) error {
	log.Info("running scenario", "name", scenario.Name)

	_, err := ci.Deploy(ctx)
	if err != nil {
		return err
	}

	if scenario.FeePolicy != nil {
		outcome, errSetup := ci.SetFeePolicy(ctx, *scenario.FeePolicy)
		if errSetup != nil {
			return errSetup
		}
		errSetup = ci.AssertExpected(outcome, nil)
		if errSetup != nil {
			return fmt.Errorf("%w: %s, setup: %v", ErrScenarioFailed, scenario.Name, errSetup)
		}
	}

	outcome, err := ci.runAction(ctx, scenario)
	if err != nil {
		return err
	}

	err = ci.AssertExpected(outcome, scenario.Expected)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScenarioFailed, scenario.Name, err)
	}

	if scenario.ExpectedPaidFees != nil {
		err = ci.checkPaidFees(ctx, scenario.Name, scenario.ExpectedPaidFees)
		if err != nil {
			return err
		}
	}

	if !scenario.ClaimAfter {
		return nil
	}

	outcome, err = ci.ClaimFees(ctx)
	if err != nil {
		return err
	}
	err = ci.AssertExpected(outcome, nil)
	if err != nil {
		return fmt.Errorf("%w: %s, claim: %v", ErrScenarioFailed, scenario.Name, err)
	}

	return ci.checkPaidFees(ctx, scenario.Name, make([]data.PaidFee, 0))
}

// RunScenarios runs all scenarios in order and stops at the first failing one
func (ci *contractInteractor) RunScenarios(ctx context.Context, scenarios []Scenario) error {
	for _, scenario := range scenarios {
		err := ci.RunScenario(ctx, scenario)
		if err != nil {
			return err
		}

		log.Info("scenario passed", "name", scenario.Name)
	}

	return nil
}

func (ci *contractInteractor) runAction(ctx context.Context, scenario Scenario) (*data.Outcome, error) {
	switch scenario.Action {
	case ActionClaim:
		return ci.ClaimFees(ctx)
	case ActionTransfer:
		if scenario.NativeValue != nil {
			return ci.TransferNative(ctx, scenario.NativeValue)
		}

		return ci.Transfer(ctx, scenario.Payments...)
	default:
		return nil, fmt.Errorf("%w: %s, unknown action %d", ErrScenarioFailed, scenario.Name, scenario.Action)
	}
}

func (ci *contractInteractor) checkPaidFees(ctx context.Context, name string, expected []data.PaidFee) error {
	paidFees, err := ci.PaidFees(ctx)
	if err != nil {
		return err
	}

	if !paidFeesEqual(paidFees, expected) {
		return fmt.Errorf("%w: %s, expected paid fees %v, got %v", ErrScenarioFailed, name, expected, paidFees)
	}

	return nil
}

func paidFeesEqual(first []data.PaidFee, second []data.PaidFee) bool {
	if len(first) != len(second) {
		return false
	}

	for i := range first {
		if first[i].TokenIdentifier != second[i].TokenIdentifier || first[i].Nonce != second[i].Nonce {
			return false
		}
		if amountOrZero(first[i].Amount).Cmp(amountOrZero(second[i].Amount)) != 0 {
			return false
		}
	}

	return true
}

func amountOrZero(amount *big.Int) *big.Int {
	if amount == nil {
		return big.NewInt(0)
	}

	return amount
}
