package cartdoc

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
)

// Listener holds a dedicated Postgres connection on the cart change channel
// and fans notifications out to per-customer subscribers. Subscribers receive
// the latest full snapshot; slow consumers see only the most recent one.
type Listener struct {
	connString string
	repo       Repository
	logger     *log.Logger

	mu   sync.Mutex
	subs map[string]map[chan []domain.CartItem]struct{}
}

func NewListener(connString string, repo Repository, logger *log.Logger) *Listener {
	return &Listener{
		connString: connString,
		repo:       repo,
		logger:     logger,
		subs:       make(map[string]map[chan []domain.CartItem]struct{}),
	}
}

// Run blocks listening for notifications until ctx is cancelled, reconnecting
// on connection failures.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.Printf("cart listener: %v, reconnecting", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.dispatch(ctx, notification.Payload)
	}
}

func (l *Listener) dispatch(ctx context.Context, customerID string) {
	l.mu.Lock()
	targets := make([]chan []domain.CartItem, 0, len(l.subs[customerID]))
	for ch := range l.subs[customerID] {
		targets = append(targets, ch)
	}
	l.mu.Unlock()
	if len(targets) == 0 {
		return
	}

	items, err := l.repo.Get(ctx, customerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		l.logger.Printf("cart listener: fetch cart %s: %v", customerID, err)
		return
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	for _, ch := range targets {
		// latest snapshot wins: drop a stale pending one if the buffer is full
		select {
		case ch <- items:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- items:
			default:
			}
		}
	}
}

// Subscribe registers for snapshots of one customer's cart. The returned
// cancel func must be called to release the channel.
func (l *Listener) Subscribe(customerID string) (<-chan []domain.CartItem, func()) {
	ch := make(chan []domain.CartItem, 1)

	l.mu.Lock()
	if l.subs[customerID] == nil {
		l.subs[customerID] = make(map[chan []domain.CartItem]struct{})
	}
	l.subs[customerID][ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		delete(l.subs[customerID], ch)
		if len(l.subs[customerID]) == 0 {
			delete(l.subs, customerID)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}
