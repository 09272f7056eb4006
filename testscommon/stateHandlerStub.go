package testscommon

// StateHandlerStub -
type StateHandlerStub struct {
	SetAddressCalled     func(address string) error
	CurrentAddressCalled func() (string, error)
	CloseCalled          func() error
}

// SetAddress -
func (stub *StateHandlerStub) SetAddress(address string) error {
	if stub.SetAddressCalled != nil {
		return stub.SetAddressCalled(address)
	}

	return nil
}

// CurrentAddress -
func (stub *StateHandlerStub) CurrentAddress() (string, error) {
	if stub.CurrentAddressCalled != nil {
		return stub.CurrentAddressCalled()
	}

	return "", nil
}

// Close -
func (stub *StateHandlerStub) Close() error {
	if stub.CloseCalled != nil {
		return stub.CloseCalled()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StateHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
