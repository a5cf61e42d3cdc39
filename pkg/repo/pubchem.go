package repo

import "context"

// CompoundInfo is the subset of PubChem compound data shown when a CAS
// number is looked up while filling in a reagent.
type CompoundInfo struct {
	Name             string `json:"name"`
	MolecularFormula string `json:"molecular_formula"`
	SMILES           string `json:"smiles"`
}

type PubChemRepo interface {
	GetCompoundByCAS(ctx context.Context, cas string) (*CompoundInfo, error)
}
