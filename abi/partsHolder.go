package abi

import "fmt"

type partsHolder struct {
	parts            [][]byte
	focusedPartIndex uint32
}

func newPartsHolder(parts [][]byte) *partsHolder {
	return &partsHolder{
		parts:            parts,
		focusedPartIndex: 0,
	}
}

func newEmptyPartsHolder() *partsHolder {
	return &partsHolder{
		parts:            [][]byte{},
		focusedPartIndex: 0,
	}
}

func (holder *partsHolder) getParts() [][]byte {
	return holder.parts
}

func (holder *partsHolder) getNumParts() uint32 {
	return uint32(len(holder.parts))
}

func (holder *partsHolder) readWholeFocusedPart() ([]byte, error) {
	if holder.isFocusedBeyondLastPart() {
		return nil, fmt.Errorf("%w: cannot read part %d, parts: %d", errNoMoreParts, holder.focusedPartIndex, holder.getNumParts())
	}

	return holder.parts[holder.focusedPartIndex], nil
}

func (holder *partsHolder) focusOnNextPart() error {
	if holder.isFocusedBeyondLastPart() {
		return fmt.Errorf("%w: cannot focus on next part, parts: %d", errNoMoreParts, holder.getNumParts())
	}

	holder.focusedPartIndex++
	return nil
}

func (holder *partsHolder) isFocusedBeyondLastPart() bool {
	return holder.focusedPartIndex >= holder.getNumParts()
}

func (holder *partsHolder) appendToLastPart(data []byte) error {
	if len(holder.parts) == 0 {
		return fmt.Errorf("%w: cannot write, since there is no part", errNoMoreParts)
	}

	lastIndex := len(holder.parts) - 1
	holder.parts[lastIndex] = append(holder.parts[lastIndex], data...)
	return nil
}

func (holder *partsHolder) appendEmptyPart() {
	holder.parts = append(holder.parts, []byte{})
}
