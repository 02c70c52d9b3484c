package common

import (
	"github.com/ethereum/go-ethereum/common"
)

func HexToAddress(s string) common.Address {
	return common.HexToAddress(s)
}
