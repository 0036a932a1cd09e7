package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// GenesisDoc defines the initial conditions of a custody wallet: the weighted
// owner set and the immutable consensus parameters.
type GenesisDoc struct {
	GenesisTime          time.Time        `json:"genesis_time"`
	WalletID             string           `json:"wallet_id"`
	ConsensusRatio       uint64           `json:"consensus_ratio"`
	MinLimitForConsensus uint64           `json:"min_limit_for_consensus"`
	Owners               []Owner          `json:"owners"`
	ContractAddresses    []common.Address `json:"contract_addresses,omitempty"`
}

// SaveAs is a utility method for saving GenesisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func LoadGenesisDoc(file string) (*GenesisDoc, error) {
	dat, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	genDoc := new(GenesisDoc)
	if err := json.Unmarshal(dat, genDoc); err != nil {
		return nil, fmt.Errorf("unmarshal genesis doc: %w", err)
	}
	return genDoc, nil
}

func (genDoc *GenesisDoc) ValidateAndComplete() error {
	if genDoc.WalletID == "" {
		return errors.New("genesis doc must include non-empty wallet_id")
	}

	if genDoc.ConsensusRatio == 0 || genDoc.ConsensusRatio > 100 {
		return fmt.Errorf("consensus_ratio must be within (0,100], got %v", genDoc.ConsensusRatio)
	}

	if len(genDoc.Owners) == 0 {
		return errors.New("genesis doc must include at least one owner")
	}

	var total uint64
	seen := make(map[common.Address]bool)
	for _, o := range genDoc.Owners {
		if o.Address == (common.Address{}) {
			return errors.New("zero address can not be an owner")
		}
		if !o.Vote.Valid() {
			return fmt.Errorf("owner %s has invalid vote level %d", o.Address.Hex(), o.Vote)
		}
		if seen[o.Address] {
			return fmt.Errorf("duplicate owner %s", o.Address.Hex())
		}
		seen[o.Address] = true
		total += uint64(o.Vote)
	}

	// The wallet must never start in a state from which no action can
	// reach quorum.
	if total < genDoc.MinLimitForConsensus {
		return fmt.Errorf("total owner votes %d below min limit for consensus %d", total, genDoc.MinLimitForConsensus)
	}

	if genDoc.GenesisTime.IsZero() {
		genDoc.GenesisTime = time.Now().Round(0).UTC()
	}

	return nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}
