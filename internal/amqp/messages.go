package amqp

import (
	"encoding/json"
	"time"
)

// DocumentoEmitidoMessage is the lightweight archival job published when a
// receipt is issued. It carries only the receipt ID and version; the worker
// fetches the full entities from the database before rendering.
type DocumentoEmitidoMessage struct {
	ReciboID  int64     `json:"recibo_id"`
	Versao    int64     `json:"versao"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDocumentoEmitidoMessage creates an archival job for a receipt.
func NewDocumentoEmitidoMessage(reciboID, versao int64) *DocumentoEmitidoMessage {
	return &DocumentoEmitidoMessage{
		ReciboID:  reciboID,
		Versao:    versao,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DocumentoEmitidoMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentoEmitidoMessageFromJSON creates a message from JSON bytes
func DocumentoEmitidoMessageFromJSON(data []byte) (*DocumentoEmitidoMessage, error) {
	var msg DocumentoEmitidoMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
