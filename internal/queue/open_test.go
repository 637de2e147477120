package queue

import (
	"context"
	"testing"

	"github.com/sangkips/registration-service/internal/config"
)

func TestOpen_NoneReturnsNilTransport(t *testing.T) {
	tr, err := Open(context.Background(), &config.Config{NotifyDriver: config.NotifyDriverNone})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tr != nil {
		t.Errorf("Expected nil transport, got %T", tr)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), &config.Config{NotifyDriver: "kafka"}); err == nil {
		t.Fatal("Expected error for unknown driver")
	}
}

func TestOpen_InvalidRedisURL(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{NotifyDriver: config.NotifyDriverRedis, RedisURL: "http://not-redis"})
	if err == nil {
		t.Fatal("Expected error for invalid redis URL")
	}
}

func TestMessage_NilCallbacksAreNoops(t *testing.T) {
	msg := NewMessage("clientes-topic", []byte("{}"), nil, nil)
	if err := msg.Ack(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
	if err := msg.Reject(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestMessage_Callbacks(t *testing.T) {
	var acked, rejected bool
	msg := NewMessage("clientes-topic", nil,
		func() error { acked = true; return nil },
		func() error { rejected = true; return nil },
	)
	msg.Ack()
	msg.Reject()
	if !acked || !rejected {
		t.Errorf("Expected both callbacks to run, got ack=%v reject=%v", acked, rejected)
	}
}
