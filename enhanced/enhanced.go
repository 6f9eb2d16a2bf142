// Package enhanced provides typed wrappers for the provider's enhanced API:
// token balances, asset transfers, NFT lookups and the extended subscription
// kinds, all mapped over the courier dispatch layer.
package enhanced

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hedeqiang/courier"
	"github.com/hedeqiang/courier/codec"
	"github.com/hedeqiang/courier/internal/hex"
	"github.com/hedeqiang/courier/subscribe"
)

// API issues enhanced-API calls through a courier client.
type API struct {
	c *courier.Client
}

// New wraps c with the enhanced method catalogue.
func New(c *courier.Client) *API {
	return &API{c: c}
}

// call dispatches one JSON-RPC method and unmarshals its result into out.
func (a *API) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	raw, err := a.c.Call(ctx, method, params...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("enhanced: %s: unmarshal result: %w", method, err)
	}
	return nil
}

// GetTokenBalances returns owner's ERC-20 balances, restricted to the given
// contracts when any are named.
func (a *API) GetTokenBalances(ctx context.Context, owner string, contracts ...string) (*TokenBalances, error) {
	addr, err := hex.Checksum(owner)
	if err != nil {
		return nil, fmt.Errorf("enhanced: getTokenBalances: %w", err)
	}

	params := []interface{}{addr}
	if len(contracts) > 0 {
		params = append(params, contracts)
	} else {
		params = append(params, "erc20")
	}

	var out TokenBalances
	if err := a.call(ctx, &out, "alchemy_getTokenBalances", params...); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTokenMetadata returns the metadata of an ERC-20 contract.
func (a *API) GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error) {
	var out TokenMetadata
	if err := a.call(ctx, &out, "alchemy_getTokenMetadata", contract); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssetTransfers returns one page of historical transfers matching the
// query.
func (a *API) GetAssetTransfers(ctx context.Context, q AssetTransfersQuery) (*AssetTransfers, error) {
	params, err := q.wireParams()
	if err != nil {
		return nil, fmt.Errorf("enhanced: getAssetTransfers: %w", err)
	}

	var out AssetTransfers
	if err := a.call(ctx, &out, "alchemy_getAssetTransfers", params); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTransactionReceipts returns all receipts of one block. The block takes
// any form codec.FormatBlock accepts.
func (a *API) GetTransactionReceipts(ctx context.Context, block interface{}) (*TransactionReceipts, error) {
	canonical, err := codec.FormatBlock(block)
	if err != nil {
		return nil, fmt.Errorf("enhanced: getTransactionReceipts: %w", err)
	}

	var out TransactionReceipts
	if err := a.call(ctx, &out, "alchemy_getTransactionReceipts", map[string]interface{}{
		"blockNumber": canonical,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// MaxPriorityFeePerGas returns the suggested priority fee as a decimal wei
// string.
func (a *API) MaxPriorityFeePerGas(ctx context.Context) (string, error) {
	var quantity string
	if err := a.call(ctx, &quantity, "eth_maxPriorityFeePerGas"); err != nil {
		return "", err
	}
	return codec.DecodeInt("uint256", quantity)
}

// GetNFTs returns one page of NFTs owned by owner through the REST surface,
// optionally restricted to the given contract addresses.
func (a *API) GetNFTs(ctx context.Context, owner string, contractAddresses ...string) (*NFTs, error) {
	r := a.c.REST()
	if r == nil {
		return nil, courier.ErrNoRESTEndpoint
	}

	params := map[string]interface{}{"owner": owner}
	if len(contractAddresses) > 0 {
		params["contractAddresses"] = contractAddresses
	}

	raw, err := r.Get(ctx, "getNFTs", params)
	if err != nil {
		return nil, err
	}
	var out NFTs
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("enhanced: getNFTs: unmarshal result: %w", err)
	}
	return &out, nil
}

// GetNFTMetadata returns the metadata of one token through the REST surface.
func (a *API) GetNFTMetadata(ctx context.Context, contract, tokenID string) (*NFTMetadata, error) {
	r := a.c.REST()
	if r == nil {
		return nil, courier.ErrNoRESTEndpoint
	}

	raw, err := r.Get(ctx, "getNFTMetadata", map[string]interface{}{
		"contractAddress": contract,
		"tokenId":         tokenID,
	})
	if err != nil {
		return nil, err
	}
	var out NFTMetadata
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("enhanced: getNFTMetadata: unmarshal result: %w", err)
	}
	return &out, nil
}

// FullPendingTransactions subscribes to the full-pending-transaction feed.
func (a *API) FullPendingTransactions(ctx context.Context, sink subscribe.Sink) (*subscribe.Handle, error) {
	return a.c.Subscribe(ctx, subscribe.FullPendingTransactions, sink)
}

// FilteredFullPendingTransactions subscribes to the filtered
// full-pending-transaction feed with the given filter options.
func (a *API) FilteredFullPendingTransactions(ctx context.Context, sink subscribe.Sink, opts ...subscribe.Option) (*subscribe.Handle, error) {
	return a.c.Subscribe(ctx, subscribe.FilteredFullPendingTransactions, sink, opts...)
}

// NewHeads subscribes to new block headers.
func (a *API) NewHeads(ctx context.Context, sink subscribe.Sink) (*subscribe.Handle, error) {
	return a.c.Subscribe(ctx, subscribe.NewHeads, sink)
}
