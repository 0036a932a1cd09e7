package types

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func validGenesis() *GenesisDoc {
	return &GenesisDoc{
		WalletID:             "wallet-1",
		ConsensusRatio:       67,
		MinLimitForConsensus: 2,
		Owners: []Owner{
			{Address: common.HexToAddress("0x00000000000000000000000000000000000000a1"), Vote: VoteLevelTwo},
			{Address: common.HexToAddress("0x00000000000000000000000000000000000000b2"), Vote: VoteLevelOne},
		},
	}
}

func TestGenesisValidate(t *testing.T) {
	genDoc := validGenesis()
	require.NoError(t, genDoc.ValidateAndComplete())
	require.False(t, genDoc.GenesisTime.IsZero())
}

func TestGenesisValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GenesisDoc)
	}{
		{"empty wallet id", func(g *GenesisDoc) { g.WalletID = "" }},
		{"zero ratio", func(g *GenesisDoc) { g.ConsensusRatio = 0 }},
		{"ratio above 100", func(g *GenesisDoc) { g.ConsensusRatio = 101 }},
		{"no owners", func(g *GenesisDoc) { g.Owners = nil }},
		{"zero address owner", func(g *GenesisDoc) { g.Owners[0].Address = common.Address{} }},
		{"invalid vote level", func(g *GenesisDoc) { g.Owners[0].Vote = VoteLevel(9) }},
		{"duplicate owner", func(g *GenesisDoc) { g.Owners[1] = g.Owners[0] }},
		{"votes below min limit", func(g *GenesisDoc) { g.MinLimitForConsensus = 10 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			genDoc := validGenesis()
			tc.mutate(genDoc)
			require.Error(t, genDoc.ValidateAndComplete())
		})
	}
}

func TestGenesisSaveLoad(t *testing.T) {
	genDoc := validGenesis()
	file := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, ExportGenesisFile(genDoc, file))

	loaded, err := LoadGenesisDoc(file)
	require.NoError(t, err)
	require.Equal(t, genDoc.WalletID, loaded.WalletID)
	require.Equal(t, genDoc.Owners, loaded.Owners)
	require.Equal(t, genDoc.ConsensusRatio, loaded.ConsensusRatio)
}
