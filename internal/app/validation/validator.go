package validation

import (
	"strings"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// Validation messages returned to API clients.
const (
	MsgAddressRequired      = "Address is required and must be a string"
	MsgInvalidAddressFormat = "Invalid Ethereum address format"
)

// Validator checks request inputs before any upstream call is made.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	chains port.ChainRegistry
}

// NewValidator creates a Validator bound to the given chain registry.
func NewValidator(chains port.ChainRegistry) *Validator {
	return &Validator{chains: chains}
}

// ValidateAddress checks that input is a 0x-prefixed 20-byte hex address and
// returns its EIP-55 checksum form. Mixed-case input must already carry a
// valid checksum; all-lower and all-upper hex are accepted as is.
func (v *Validator) ValidateAddress(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &entity.ValidationError{Kind: entity.ErrInvalidInput, Message: MsgAddressRequired}
	}

	if !strings.HasPrefix(trimmed, "0x") || !common.IsHexAddress(trimmed) {
		return "", invalidFormat()
	}

	checksummed := common.HexToAddress(trimmed).Hex()
	hexPart := trimmed[2:]
	if hexPart != strings.ToLower(hexPart) && hexPart != strings.ToUpper(hexPart) && trimmed != checksummed {
		return "", invalidFormat()
	}

	return checksummed, nil
}

// ValidateChainID resolves input against the registry. The lookup is exact:
// "01" or " 1" are not chain 1.
func (v *Validator) ValidateChainID(input string) (entity.ChainDefinition, error) {
	if def, ok := v.chains.Lookup(input); ok {
		return def, nil
	}

	supported := v.chains.All()
	ids := make([]string, 0, len(supported))
	for _, def := range supported {
		ids = append(ids, def.ChainIDString())
	}

	return entity.ChainDefinition{}, &entity.ValidationError{
		Kind:    entity.ErrUnsupportedChain,
		Message: "Chain ID " + input + " not supported. Supported: " + strings.Join(ids, ", "),
	}
}

func invalidFormat() error {
	return &entity.ValidationError{Kind: entity.ErrInvalidFormat, Message: MsgInvalidAddressFormat}
}
