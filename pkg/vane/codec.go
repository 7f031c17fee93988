package vane

import "encoding/json"

// Codec converts between byte sequences and structured values. It is a
// capability with exactly two operations so alternate serialization
// formats can be bound without touching the client or the builder.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// JSONCodec is the default codec, backed by encoding/json.
type JSONCodec struct{}

// Encode marshals v to JSON.
func (JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Decode unmarshals JSON data into v.
func (JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
