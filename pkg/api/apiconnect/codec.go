package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals the api message structs as JSON. It registers under the
// "json" name so Connect serves and sends it as application/json.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
