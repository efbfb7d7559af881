package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// cartStreamHandler pushes the customer's cart over a websocket: one snapshot
// on connect, then a fresh snapshot whenever the stored cart changes. The
// read side only watches for the client closing the connection.
func cartStreamHandler(stream CartStream, carts CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		updates, cancel := stream.Subscribe(customer.ID)
		defer cancel()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		items, err := carts.Get(c.Request.Context(), cartsvc.Identity{CustomerID: customer.ID})
		if err != nil {
			logger.Printf("cart stream: initial snapshot for %s: %v", customer.ID, err)
			items = nil
		}
		if err := writeSnapshot(conn, carts, items); err != nil {
			return
		}

		for {
			select {
			case items, ok := <-updates:
				if !ok {
					return
				}
				if err := writeSnapshot(conn, carts, items); err != nil {
					return
				}
			case <-closed:
				return
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, carts CartService, items []domain.CartItem) error {
	return conn.WriteJSON(toCartResponse(carts, items))
}
