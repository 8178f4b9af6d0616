package common_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		value    string
		decimals int32
		want     string
	}{
		{"10", 18, "10000000000000000000"},
		{"0.5", 3, "500"},
		{" 1.25 ", 2, "125"},
		{"0", 18, "0"},
	}
	for _, tc := range tests {
		got, err := gelatocommon.ParseUnits(tc.value, tc.decimals)
		require.NoError(t, err, tc.value)
		assert.Equal(t, tc.want, got.String(), tc.value)
	}

	for _, bad := range []string{"", "abc", "-1", "0.0001", "1e3", "1E3", "2.5e-1"} {
		_, err := gelatocommon.ParseUnits(bad, 3)
		assert.Error(t, err, bad)
	}
}

func TestParseEtherAndFormat(t *testing.T) {
	wei, err := gelatocommon.ParseEther("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", wei.String())
	assert.Equal(t, "1.5", gelatocommon.FormatUnits(wei, 18))
	assert.Equal(t, "11", gelatocommon.FormatUnits(big.NewInt(1100), 2))
	assert.Equal(t, "0", gelatocommon.FormatUnits(nil, 18))
}

func TestGweiToWei(t *testing.T) {
	assert.Equal(t, "1500000000", gelatocommon.GweiToWei(1.5).String())
	assert.Equal(t, "0", gelatocommon.GweiToWei(0).String())
}
