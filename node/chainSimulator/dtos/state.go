package dtos

// AddressState will hold the state of one simulator account
type AddressState struct {
	Address      string            `json:"address"`
	Nonce        uint64            `json:"nonce,omitempty"`
	Balance      string            `json:"balance,omitempty"`
	Code         string            `json:"code,omitempty"`
	CodeMetadata string            `json:"codeMetadata,omitempty"`
	Owner        string            `json:"owner,omitempty"`
	ESDTBalances map[string]string `json:"esdtBalances,omitempty"`
}
