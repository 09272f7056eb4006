package txBuilder

// ArgumentsSerializer converts typed values into raw call arguments
type ArgumentsSerializer interface {
	SerializeToParts(inputValues []any) ([][]byte, error)
	IsInterfaceNil() bool
}
