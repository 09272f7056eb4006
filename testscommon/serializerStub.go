package testscommon

// SerializerStub -
type SerializerStub struct {
	SerializeToPartsCalled func(inputValues []any) ([][]byte, error)
	DeserializePartsCalled func(parts [][]byte, outputValues []any) error
}

// SerializeToParts -
func (stub *SerializerStub) SerializeToParts(inputValues []any) ([][]byte, error) {
	if stub.SerializeToPartsCalled != nil {
		return stub.SerializeToPartsCalled(inputValues)
	}

	return make([][]byte, 0), nil
}

// DeserializeParts -
func (stub *SerializerStub) DeserializeParts(parts [][]byte, outputValues []any) error {
	if stub.DeserializePartsCalled != nil {
		return stub.DeserializePartsCalled(parts, outputValues)
	}

	return nil
}

// IsInterfaceNil -
func (stub *SerializerStub) IsInterfaceNil() bool {
	return stub == nil
}
