package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChainID(t *testing.T) {
	chain, err := ParseChainID(" sn_main ")
	require.NoError(t, err)
	assert.Equal(t, ChainMainnet, chain)

	chain, err = ParseChainID("SN_SEPOLIA")
	require.NoError(t, err)
	assert.Equal(t, ChainSepolia, chain)

	_, err = ParseChainID("SN_GOERLI")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestChainID_Felt(t *testing.T) {
	assert.Equal(t, "0x534e5f5345504f4c4941", ChainSepolia.Felt().String())
}

func TestLookupDeployment(t *testing.T) {
	d, err := LookupDeployment(DefaultDeployment)
	require.NoError(t, err)
	assert.Equal(t, "walls", d.Name)
	assert.Equal(t, "0x2c5ecb4bd05fb50fc0da17a804a4e9fa22272796c4e942b5d45d5513ea3888e", d.ContractAddress.String())

	_, err = LookupDeployment("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "legacy, walls")
}

func TestDeploymentNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"legacy", "walls"}, DeploymentNames())
}

func TestSubmissionRejectedError_Is(t *testing.T) {
	var err error = &SubmissionRejectedError{Code: 41, Reason: "Transaction execution error"}

	assert.True(t, errors.Is(err, ErrSubmissionRejected))
	assert.False(t, errors.Is(err, ErrNetwork))
	assert.Contains(t, err.Error(), "code 41")
}
