// Command basic issues a synchronous and an asynchronous JSON-RPC call.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hedeqiang/courier"
	"github.com/hedeqiang/courier/middleware"
)

func main() {
	apiKey := os.Getenv("ALCHEMY_API_KEY")
	if apiKey == "" {
		log.Fatal("ALCHEMY_API_KEY not set")
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	c := courier.Dial(courier.EthMainnet, apiKey,
		courier.WithLogger(logger),
		courier.WithMaxRetries(5),
		courier.WithMiddleware(middleware.NewLogger(logger)),
	)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	head, err := c.Call(ctx, "eth_blockNumber")
	if err != nil {
		log.Fatalf("eth_blockNumber: %v", err)
	}
	fmt.Println("head:", string(head))

	// The same call as a future, consumed through a callback.
	call := c.CallAsync(ctx, "eth_chainId")
	call.OnDone(func(err error, result json.RawMessage) {
		if err != nil {
			log.Printf("eth_chainId: %v", err)
			return
		}
		fmt.Println("chain:", string(result))
	})
	<-call.Done()
}
