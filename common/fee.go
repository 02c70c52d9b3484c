package common

import (
	"fmt"
	"math/big"
	"strings"
)

// Fee is a chain-A coin. It is used both as the fee attached to submitted
// transactions and as a balance-sufficiency precondition during pre-flight
// checks. A zero amount means "pay nothing".
type Fee struct {
	Denom  string   `json:"denom"`
	Amount *big.Int `json:"amount"`
}

func NewFee(denom string, amount *big.Int) Fee {
	if amount == nil {
		amount = big.NewInt(0)
	}

	return Fee{Denom: denom, Amount: amount}
}

func (f Fee) IsZero() bool {
	return f.Amount == nil || f.Amount.Sign() == 0
}

func (f Fee) String() string {
	amount := f.Amount
	if amount == nil {
		amount = big.NewInt(0)
	}

	return fmt.Sprintf("%s%s", amount.String(), f.Denom)
}

// FeeListString renders a list of fees the way chain nodes report required
// minimum fees, for inclusion in operator-facing diagnostics.
func FeeListString(fees []Fee) string {
	parts := make([]string, len(fees))
	for i, fee := range fees {
		parts[i] = fee.String()
	}

	return strings.Join(parts, ", ")
}
