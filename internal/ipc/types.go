package ipc

import "time"

// GetRequest reads one property of one item.
type GetRequest struct {
	ItemID string `json:"item_id"`
	Key    string `json:"key"`
}

// GetResponse carries the stored value, "" when unset.
type GetResponse struct {
	Value string `json:"value"`
}

// SetRequest writes one property of one item.
type SetRequest struct {
	ItemID string `json:"item_id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// SetResponse acknowledges a write.
type SetResponse struct {
	Written bool `json:"written"`
}

// ItemsRequest lists the items known to the server.
type ItemsRequest struct{}

// ItemInfo is the wire form of a stored item.
type ItemInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemsResponse contains every item in creation order.
type ItemsResponse struct {
	Items []ItemInfo `json:"items"`
}
