package wshub

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns server messages into websocket frames.
type Codec interface {
	Name() string
	Encode(v any) ([]byte, error)
	MessageType() websocket.MessageType
}

var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// CodecFor returns the codec registered under name, falling back to JSON.
func CodecFor(name string) Codec {
	if name == Msgpack.Name() {
		return Msgpack
	}
	return JSON
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) MessageType() websocket.MessageType { return websocket.MessageText }
func (jsonCodec) Encode(v any) ([]byte, error)       { return json.Marshal(v) }

// msgpackCodec reuses the json struct tags so both encodings share one set
// of short field names.
type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) MessageType() websocket.MessageType { return websocket.MessageBinary }

func (msgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetOmitEmpty(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeClientMessage reads an inbound frame. Binary frames are msgpack,
// text frames are JSON.
func DecodeClientMessage(typ websocket.MessageType, data []byte) (ClientMessage, error) {
	var msg ClientMessage
	var err error
	if typ == websocket.MessageBinary {
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		err = dec.Decode(&msg)
	} else {
		err = json.Unmarshal(data, &msg)
	}
	if err != nil {
		return ClientMessage{}, fmt.Errorf("decoding client message: %w", err)
	}
	return msg, nil
}
