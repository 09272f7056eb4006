package chainSimulator

import (
	"encoding/binary"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/hashing/keccak"
)

var wasmVMType = []byte{0x05, 0x00}

// newContractAddress derives the address of a contract deployed by creator at the provided nonce
func newContractAddress(creatorAddress []byte, creatorNonce uint64) []byte {
	buffNonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(buffNonce, creatorNonce)
	addressAndNonce := append(append(make([]byte, 0, len(creatorAddress)+len(buffNonce)), creatorAddress...), buffNonce...)
	base := keccak.NewKeccak().Compute(string(addressAndNonce))

	prefixMask := make([]byte, core.NumInitCharactersForScAddress-core.VMTypeLen)
	prefixMask = append(prefixMask, wasmVMType...)
	copy(base[:core.NumInitCharactersForScAddress], prefixMask)
	copy(base[len(base)-core.ShardIdentiferLen:], creatorAddress[len(creatorAddress)-core.ShardIdentiferLen:])

	return base
}
