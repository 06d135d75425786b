package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// Notifier publica avisos grosseiros de mudança por coleção ("clients",
// "products", ...). O front-end assinante refaz o fetch da coleção inteira,
// como no feed de mudanças do backend hospedado original. Sem diffs, sem
// garantia de entrega.
type Notifier struct {
	rdb *redis.Client
}

// New retorna nil quando addr é vazio; todos os métodos toleram receiver nil,
// então o feed é opcional por configuração.
func New(addr string) *Notifier {
	if addr == "" {
		return nil
	}

	return &Notifier{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func channelFor(shopID uint) string {
	return fmt.Sprintf("otica:changes:%d", shopID)
}

// Publish avisa que uma coleção da loja mudou.
func (n *Notifier) Publish(ctx context.Context, shopID uint, collection string) {
	if n == nil {
		return
	}

	if err := n.rdb.Publish(ctx, channelFor(shopID), collection).Err(); err != nil {
		log.Println("notify error:", err)
	}
}

// Subscribe entrega nomes de coleção alterados até o contexto encerrar.
func (n *Notifier) Subscribe(ctx context.Context, shopID uint) (<-chan string, func()) {
	if n == nil {
		return nil, func() {}
	}

	pubsub := n.rdb.Subscribe(ctx, channelFor(shopID))

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = pubsub.Close() }
}

func (n *Notifier) Enabled() bool {
	return n != nil
}
