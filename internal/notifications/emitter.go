package notifications

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
)

// Emitter is the fire-and-forget notification side channel. Notify hands
// the message to a buffered queue drained by a background worker; a full
// queue or a failing sink costs the notification, never the order
// operation that produced it.
type Emitter struct {
	col   *mongo.Collection
	queue chan models.Notification
	done  chan struct{}
}

func NewEmitter(db *mongo.Database, buffer int) *Emitter {
	if buffer <= 0 {
		buffer = 64
	}
	e := &Emitter{
		col:   db.Collection("notifications"),
		queue: make(chan models.Notification, buffer),
		done:  make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Emitter) Notify(n models.Notification) {
	n.CreatedAt = time.Now()
	select {
	case e.queue <- n:
	default:
		log.Println("[NOTIFY] [WARN] queue full, notification dropped for:", n.RecipientID.Hex())
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for n := range e.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := e.col.InsertOne(ctx, n)
		cancel()
		if err != nil {
			log.Println("[NOTIFY] [ERROR] insert failed:", err)
		}
	}
}

// Close drains the queue and stops the worker.
func (e *Emitter) Close() {
	close(e.queue)
	<-e.done
}
