package ipc

import (
	"context"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"layoutkit/internal/layout"
)

var _ layout.Store = (*RemoteItem)(nil)

// Client provides RPC access to a property server.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, req, resp any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	call := c.client.Go(serviceName+"."+method, req, resp, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case done := <-call.Done:
		return done.Error
	}
}

// Get reads one property of one item.
func (c *Client) Get(ctx context.Context, itemID, key string) (string, error) {
	var resp GetResponse
	if err := c.call(ctx, "Get", GetRequest{ItemID: itemID, Key: key}, &resp); err != nil {
		return "", err
	}
	return resp.Value, nil
}

// Set writes one property of one item.
func (c *Client) Set(ctx context.Context, itemID, key, value string) error {
	var resp SetResponse
	return c.call(ctx, "Set", SetRequest{ItemID: itemID, Key: key, Value: value}, &resp)
}

// Items lists the items the server knows about.
func (c *Client) Items(ctx context.Context) ([]ItemInfo, error) {
	var resp ItemsResponse
	if err := c.call(ctx, "Items", ItemsRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Item returns a layout.Store bound to one remote item.
func (c *Client) Item(id string) *RemoteItem {
	return &RemoteItem{client: c, id: id}
}

// RemoteItem is a layout.Store backed by a property server. Server-side
// errors cross the socket as rpc.ServerError text, so sentinels such as
// propstore.ErrNotFound are not preserved; match on the message instead.
type RemoteItem struct {
	client *Client
	id     string
}

// Get implements layout.Store.
func (r *RemoteItem) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, r.id, key)
}

// Set implements layout.Store.
func (r *RemoteItem) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.id, key, value)
}
