// Command enhanced queries token balances over JSON-RPC and owned NFTs over
// the REST surface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hedeqiang/courier"
	"github.com/hedeqiang/courier/enhanced"
)

func main() {
	apiKey := os.Getenv("ALCHEMY_API_KEY")
	owner := os.Getenv("OWNER_ADDRESS")
	if apiKey == "" || owner == "" {
		log.Fatal("ALCHEMY_API_KEY and OWNER_ADDRESS must be set")
	}

	c := courier.Dial(courier.EthMainnet, apiKey)
	defer c.Close()
	api := enhanced.New(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	balances, err := api.GetTokenBalances(ctx, owner)
	if err != nil {
		log.Fatalf("token balances: %v", err)
	}
	for _, b := range balances.TokenBalances {
		dec, err := b.Decimal()
		if err != nil {
			continue
		}
		fmt.Printf("%s: %s\n", b.ContractAddress, dec)
	}

	nfts, err := api.GetNFTs(ctx, owner)
	if err != nil {
		log.Fatalf("nfts: %v", err)
	}
	fmt.Printf("owns %d NFTs\n", nfts.TotalCount)
	for _, n := range nfts.OwnedNFTs {
		fmt.Printf("  %s #%s %s\n", n.Contract.Address, n.ID.TokenID, n.Title)
	}
}
