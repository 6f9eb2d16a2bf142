package enhanced

import (
	"encoding/json"

	"github.com/hedeqiang/courier/codec"
)

// TokenBalance is one contract's balance for an owner. TokenBalance carries
// the raw hex quantity the wire returns.
type TokenBalance struct {
	ContractAddress string `json:"contractAddress"`
	TokenBalance    string `json:"tokenBalance"`
	Error           string `json:"error,omitempty"`
}

// Decimal returns the balance as a decimal string.
func (b TokenBalance) Decimal() (string, error) {
	return codec.DecodeInt("uint256", b.TokenBalance)
}

// TokenBalances is the alchemy_getTokenBalances result.
type TokenBalances struct {
	Address       string         `json:"address"`
	TokenBalances []TokenBalance `json:"tokenBalances"`
}

// TokenMetadata is the alchemy_getTokenMetadata result.
type TokenMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Logo     string `json:"logo,omitempty"`
}

// AssetTransfersQuery narrows an alchemy_getAssetTransfers scan. Block
// bounds take any form codec.FormatBlock accepts.
type AssetTransfersQuery struct {
	FromBlock         interface{} `json:"-"`
	ToBlock           interface{} `json:"-"`
	FromAddress       string      `json:"fromAddress,omitempty"`
	ToAddress         string      `json:"toAddress,omitempty"`
	ContractAddresses []string    `json:"contractAddresses,omitempty"`
	Category          []string    `json:"category,omitempty"`
	MaxCount          string      `json:"maxCount,omitempty"`
	PageKey           string      `json:"pageKey,omitempty"`
	WithMetadata      bool        `json:"withMetadata,omitempty"`
}

// wireParams renders the query with canonical block bounds.
func (q AssetTransfersQuery) wireParams() (map[string]interface{}, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	params := map[string]interface{}{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	if q.FromBlock != nil {
		block, err := codec.FormatBlock(q.FromBlock)
		if err != nil {
			return nil, err
		}
		params["fromBlock"] = block
	}
	if q.ToBlock != nil {
		block, err := codec.FormatBlock(q.ToBlock)
		if err != nil {
			return nil, err
		}
		params["toBlock"] = block
	}
	return params, nil
}

// Transfer is one asset transfer record.
type Transfer struct {
	BlockNum    string          `json:"blockNum"`
	Hash        string          `json:"hash"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Value       json.Number     `json:"value"`
	Asset       string          `json:"asset"`
	Category    string          `json:"category"`
	RawContract json.RawMessage `json:"rawContract,omitempty"`
}

// AssetTransfers is the alchemy_getAssetTransfers result page.
type AssetTransfers struct {
	Transfers []Transfer `json:"transfers"`
	PageKey   string     `json:"pageKey,omitempty"`
}

// TransactionReceipts is the alchemy_getTransactionReceipts result. Receipts
// stay raw; callers pick the fields they need.
type TransactionReceipts struct {
	Receipts []json.RawMessage `json:"receipts"`
}

// NFT is one owned token in a getNFTs result.
type NFT struct {
	Contract struct {
		Address string `json:"address"`
	} `json:"contract"`
	ID struct {
		TokenID string `json:"tokenId"`
	} `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	TokenURI    struct {
		Raw     string `json:"raw,omitempty"`
		Gateway string `json:"gateway,omitempty"`
	} `json:"tokenUri,omitempty"`
}

// NFTs is the getNFTs result page.
type NFTs struct {
	OwnedNFTs  []NFT  `json:"ownedNfts"`
	PageKey    string `json:"pageKey,omitempty"`
	TotalCount int    `json:"totalCount"`
}

// NFTMetadata is the getNFTMetadata result.
type NFTMetadata struct {
	NFT
	Metadata json.RawMessage `json:"metadata,omitempty"`
}
