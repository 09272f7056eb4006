package state

import (
	"fmt"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
)

var log = logger.GetOrCreate("state")

// stateRecord is the on-disk form of the persisted state
type stateRecord struct {
	ContractAddress string `toml:"contract_address,omitempty"`
}

type persistedState struct {
	mut              sync.RWMutex
	filePath         string
	addressConverter core.PubkeyConverter
	record           stateRecord
}

// LoadPersistedState loads the state found at filePath. A missing file yields an empty state,
// an unreadable or malformed one is an error.
func LoadPersistedState(filePath string, addressConverter core.PubkeyConverter) (*persistedState, error) {
	if len(filePath) == 0 {
		return nil, common.ErrEmptyFilePath
	}
	if check.IfNil(addressConverter) {
		return nil, ErrNilAddressConverter
	}

	ps := &persistedState{
		filePath:         filePath,
		addressConverter: addressConverter,
	}

	exists, err := common.FileExists(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedState, err.Error())
	}
	if !exists {
		log.Debug("no state file found, starting with an empty state", "path", filePath)
		return ps, nil
	}

	err = common.LoadTomlFile(&ps.record, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedState, err.Error())
	}

	if len(ps.record.ContractAddress) > 0 {
		_, err = addressConverter.Decode(ps.record.ContractAddress)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCorruptedState, err.Error())
		}
	}

	log.Debug("loaded state", "path", filePath, "contract address", ps.record.ContractAddress)

	return ps, nil
}

// SetAddress records the address of a newly deployed contract, replacing any previous one
func (ps *persistedState) SetAddress(address string) error {
	if len(address) == 0 {
		return ErrEmptyAddress
	}

	_, err := ps.addressConverter.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, err.Error())
	}

	ps.mut.Lock()
	ps.record.ContractAddress = address
	ps.mut.Unlock()

	return nil
}

// CurrentAddress returns the persisted contract address or ErrNotDeployed
func (ps *persistedState) CurrentAddress() (string, error) {
	ps.mut.RLock()
	defer ps.mut.RUnlock()

	if len(ps.record.ContractAddress) == 0 {
		return "", ErrNotDeployed
	}

	return ps.record.ContractAddress, nil
}

// HasAddress returns true if a contract address is recorded
func (ps *persistedState) HasAddress() bool {
	ps.mut.RLock()
	defer ps.mut.RUnlock()

	return len(ps.record.ContractAddress) > 0
}

// Save writes the state to its file, replacing the previous content
func (ps *persistedState) Save() error {
	ps.mut.RLock()
	record := ps.record
	ps.mut.RUnlock()

	err := common.SaveTomlFileAtomically(&record, ps.filePath)
	if err != nil {
		return err
	}

	log.Debug("saved state", "path", ps.filePath, "contract address", record.ContractAddress)

	return nil
}

// Close persists the state
func (ps *persistedState) Close() error {
	return ps.Save()
}

// IsInterfaceNil returns true if there is no value under the interface
func (ps *persistedState) IsInterfaceNil() bool {
	return ps == nil
}
