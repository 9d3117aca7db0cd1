package rpc

import (
	"encoding/json"
	"fmt"
)

// jsonCodec carries plain Go structs over the Connect protocol. It replaces
// Connect's protojson codec under the same name, so clients send
// "application/json" (or "application/connect+json" for streams) as usual.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
