package cosmos

import (
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
)

var (
	// ErrNoTokens marks an account that exists but holds no tokens of any
	// kind. Such an account cannot pay even a zero fee.
	ErrNoTokens = errors.New("account has no tokens of any kind")

	// ErrInsufficientGas marks a submission rejected because the hardcoded
	// gas amount attached to it was too small.
	ErrInsufficientGas = errors.New("hardcoded gas amount insufficient")
)

// InsufficientFeesError is returned by broadcast implementations when the
// node rejects a submission because the attached fee is below its configured
// minimum. MinFees carries the node's reported minimums.
type InsufficientFeesError struct {
	MinFees []common.Fee
}

func (e *InsufficientFeesError) Error() string {
	return fmt.Sprintf("insufficient fees, minimum required is %s", common.FeeListString(e.MinFees))
}
