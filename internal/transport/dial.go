package transport

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"ChainPort/internal/errors"
)

// Dial walks the fallback sequence and returns a client for the first entry
// that accepts a connection, together with the entry that won. Every dial
// failure advances to the next entry; exhausting the sequence is a hard
// failure carrying the per-endpoint causes. Retry or backoff across the
// whole sequence belongs to the caller, not here.
func Dial(ctx context.Context, c Chain) (*ethclient.Client, Entry, error) {
	if c.Len() == 0 {
		return nil, Entry{}, errors.New(errors.CodeNoTransportAvailable,
			fmt.Sprintf("链 %d 的传输序列为空", c.ChainID))
	}

	var causes []error
	for _, entry := range c.Entries {
		if err := ctx.Err(); err != nil {
			return nil, Entry{}, errors.Wrap(errors.CodeTimeout, err, "拨号被上层取消")
		}
		rpcClient, err := gethrpc.DialContext(ctx, entry.URL)
		if err != nil {
			causes = append(causes, fmt.Errorf("%s: %w", entry.Provider, err))
			continue
		}
		return ethclient.NewClient(rpcClient), entry, nil
	}

	return nil, Entry{}, errors.Wrap(errors.CodeTransportExhausted, stdErrors.Join(causes...),
		fmt.Sprintf("链 %d 的 %d 个端点全部失败", c.ChainID, c.Len()))
}
