package amqp

import (
	"testing"
	"time"
)

func TestDocumentoEmitidoMessageRoundTrip(t *testing.T) {
	msg := NewDocumentoEmitidoMessage(42, 3)
	if msg.ReciboID != 42 || msg.Versao != 3 {
		t.Fatalf("message fields: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := DocumentoEmitidoMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ReciboID != msg.ReciboID || got.Versao != msg.Versao {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, msg)
	}
	if got.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp drift: %s vs %s", got.Timestamp, msg.Timestamp)
	}
}

func TestDocumentoEmitidoMessageFromJSONInvalid(t *testing.T) {
	if _, err := DocumentoEmitidoMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
