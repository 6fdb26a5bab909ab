package domain

import "encoding/json"

// OrderLine is one frozen line of an order: name and unit price are
// captured at placement and persisted as-is.
type OrderLine struct {
	ItemID   string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // minor units
	Quantity int    `json:"quantity"`
}

// DecodeLines parses the serialized `[{id,name,price,quantity}]` array
// used on the wire and in the orders table. The payload comes from old
// clients and hand-edited rows too, so it parses defensively: empty or
// malformed input yields zero lines, never an error. Lines with a
// non-positive quantity are dropped.
func DecodeLines(raw []byte) []OrderLine {
	if len(raw) == 0 {
		return nil
	}
	var lines []OrderLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		out = append(out, l)
	}
	return out
}

// EncodeLines is the inverse of DecodeLines. A nil slice encodes as an
// empty array so stored payloads always parse back.
func EncodeLines(lines []OrderLine) []byte {
	if lines == nil {
		lines = []OrderLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return []byte("[]")
	}
	return b
}
