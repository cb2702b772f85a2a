// Package ws difunde eventos de stock a clientes websocket conectados.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
)

// Client destino de los mensajes del hub; *websocket.Conn lo satisface.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub registro de clientes y cola de difusión.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{} // cerrado cuando Run termina
	mu         sync.Mutex
}

// NewHub crea el hub; bufferSize acota los mensajes pendientes antes de descartar.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, bufferSize),
		done:       make(chan struct{}),
	}
}

// Run atiende altas, bajas y difusión hasta que ctx termine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			log.Debug().Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register añade un cliente (bloquea hasta que Run lo atienda).
// Con el hub detenido el cliente se cierra en el acto.
func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	}
}

// Unregister retira y cierra un cliente. Con el hub detenido no hace nada: Run ya cerró a todos.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishStock encola el evento sin bloquear: si la cola está llena el evento se descarta.
func (h *Hub) PublishStock(event dto.StockEvent) {
	if event.Type == "" {
		event.Type = "stock_update"
	}
	msg, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("serializar evento ws")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Int64("product_id", event.ProductID).Msg("cola ws llena, evento descartado")
	}
}
