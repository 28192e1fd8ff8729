package bindings

import (
	"bytes"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/samber/lo"
)

var knownABIs = lo.Map([]*bind.MetaData{
	&IERC20MetaData,
	&IMiningRewardPoolFacetMetaData,
	&IVerificationRewardPoolFacetMetaData,
	&SignVerificationMetaData,
	&IPartialVotingProposalFacetMetaData,
	&IGovernanceStructureMetaData,
}, func(m *bind.MetaData, _ int) *abi.ABI {
	parsed, err := m.ParseABI()
	if err != nil {
		panic("invalid ABI " + m.ID + ": " + err.Error())
	}
	return parsed
})

// MethodName returns the name of the method a calldata payload invokes.
// Plain value transfers (empty data) are reported as "transfer"; calls to
// methods outside the known contracts return an empty string.
func MethodName(data []byte) string {
	if len(data) == 0 {
		return "transfer"
	}
	if len(data) < 4 {
		return ""
	}
	for _, parsed := range knownABIs {
		for _, method := range parsed.Methods {
			if bytes.Equal(method.ID, data[:4]) {
				return method.Name
			}
		}
	}
	return ""
}
