// Command subscribe streams the filtered full-pending-transaction feed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hedeqiang/courier"
	"github.com/hedeqiang/courier/subscribe"
)

func main() {
	apiKey := os.Getenv("ALCHEMY_API_KEY")
	if apiKey == "" {
		log.Fatal("ALCHEMY_API_KEY not set")
	}

	c := courier.Dial(courier.EthMainnet, apiKey)
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink := subscribe.NewCallback(func(payload json.RawMessage) {
		fmt.Println("pending tx:", string(payload))
	})

	handle, err := c.Subscribe(ctx, subscribe.FilteredFullPendingTransactions, sink,
		subscribe.WithToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		subscribe.WithHashesOnly(true),
	)
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	defer handle.Unsubscribe()

	select {
	case <-ctx.Done():
	case err := <-handle.Err():
		log.Printf("subscription lost: %v", err)
	}
}
