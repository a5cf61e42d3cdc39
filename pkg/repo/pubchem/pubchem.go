package pubchem

import (
	// 外部依赖
	"context"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	code "github.com/chemstack/labstock/pkg/common/code"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	repo "github.com/chemstack/labstock/pkg/repo"
)

type property struct {
	Title            string `json:"Title"`
	MolecularFormula string `json:"MolecularFormula"`
	IUPACName        string `json:"IUPACName"`
	IsomericSMILES   string `json:"IsomericSMILES"`
	CanonicalSMILES  string `json:"CanonicalSMILES"`
	SMILES           string `json:"SMILES"`
}

type propertyResponse struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemImpl struct {
	client *resty.Client
}

func NewPubChemRepo() repo.PubChemRepo {
	return &pubchemImpl{
		client: resty.New().
			SetTimeout(30*time.Second).
			SetBaseURL(config.Global().PubChem.Addr).
			SetHeader("Content-Type", "application/json"),
	}
}

func (p *pubchemImpl) GetCompoundByCAS(ctx context.Context, cas string) (*repo.CompoundInfo, error) {
	propResp := &propertyResponse{}
	res, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"cas":   cas,
			"props": "Title,MolecularFormula,IUPACName,IsomericSMILES,CanonicalSMILES,SMILES",
		}).
		SetResult(propResp).
		Get("/rest/pug/compound/name/{cas}/property/{props}/JSON")
	if err != nil {
		logger.Errorf(ctx, "pubchem property request err: %+v", err)
		return nil, code.CASQueryErr.WithErr(err)
	}

	if res.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode() != http.StatusOK {
		return nil, code.CASQueryErr.WithMsgf("pubchem property query failed: status %d", res.StatusCode())
	}
	if len(propResp.PropertyTable.Properties) == 0 {
		return nil, nil
	}

	propData := propResp.PropertyTable.Properties[0]

	name := propData.Title
	if name == "" {
		name = propData.IUPACName
	}
	smiles := propData.IsomericSMILES
	if smiles == "" {
		smiles = propData.CanonicalSMILES
	}
	if smiles == "" {
		smiles = propData.SMILES
	}

	return &repo.CompoundInfo{
		Name:             name,
		MolecularFormula: propData.MolecularFormula,
		SMILES:           smiles,
	}, nil
}
