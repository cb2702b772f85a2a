package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
)

type fakeClient struct {
	mu     sync.Mutex
	msgs   [][]byte
	closed bool
	fail   bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.msgs = append(f.msgs, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.msgs...)
}

func TestHub_PublishStock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(8)
	go h.Run(ctx)

	ok := &fakeClient{}
	broken := &fakeClient{fail: true}
	h.Register(ok)
	h.Register(broken)
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h.PublishStock(dto.StockEvent{ProductID: 1, Direction: "IN", Quantity: 30, Stock: 130})

	require.Eventually(t, func() bool { return len(ok.received()) == 1 }, time.Second, 5*time.Millisecond)
	var got dto.StockEvent
	require.NoError(t, json.Unmarshal(ok.received()[0], &got))
	assert.Equal(t, "stock_update", got.Type)
	assert.Equal(t, int64(130), got.Stock)

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond,
		"el cliente que falla al escribir se descarta")
}

func TestHub_PublishSinRunNoBloquea(t *testing.T) {
	h := NewHub(1)
	done := make(chan struct{})
	go func() {
		h.PublishStock(dto.StockEvent{ProductID: 1})
		h.PublishStock(dto.StockEvent{ProductID: 2}) // cola llena: se descarta
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PublishStock bloqueó con la cola llena")
	}
}

func TestHub_DetenidoNoBloqueaAltasNiBajas(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(1)
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	open := &fakeClient{}
	h.Register(open)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped

	late := &fakeClient{}
	done := make(chan struct{})
	go func() {
		h.Unregister(open)
		h.Register(late)
		h.Unregister(late)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister bloquearon con el hub detenido")
	}

	assert.Zero(t, h.ClientCount())
	late.mu.Lock()
	assert.True(t, late.closed, "un alta tardía se cierra en el acto")
	late.mu.Unlock()
	open.mu.Lock()
	assert.True(t, open.closed)
	open.mu.Unlock()
}
