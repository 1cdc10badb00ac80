package kds

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event types
const (
	EventOrderCreated   = "order_created"
	EventMenuItemUpdate = "menu_item_update"
	EventLowStock       = "low_stock"
	EventStaffNotif     = "staff_notification"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub holds every connected kitchen display / cashier screen.
type KDSHub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

// client owns one connection. Only its writePump goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	role string
	send chan []byte
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]*client),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	cl := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}

	kdsHub.mutex.Lock()
	kdsHub.clients[conn] = cl
	kdsHub.mutex.Unlock()

	go cl.writePump()
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	removeLocked(conn)
}

// removeLocked must be called with the hub mutex held.
func removeLocked(conn *websocket.Conn) {
	cl, ok := kdsHub.clients[conn]
	if !ok {
		return
	}
	delete(kdsHub.clients, conn)
	close(cl.send)
	conn.Close()
}

func (cl *client) writePump() {
	for data := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Dropping client with role %s: %v", cl.role, err)
			UnregisterClient(cl.conn)
			// drain so nothing blocks on a removed client
			for range cl.send {
			}
			return
		}
	}
}

// ClientCount returns the number of connected screens.
func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

// BroadcastOrderCreated -> order baru masuk ke dapur
func BroadcastOrderCreated(receipt models.Receipt) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  receipt,
	})
}

// BroadcastMenuItemUpdate -> harga atau stok berubah
func BroadcastMenuItemUpdate(item models.MenuItem) {
	broadcast(Message{
		Event: EventMenuItemUpdate,
		Data:  item,
	})
}

// BroadcastLowStock -> stok menipis
func BroadcastLowStock(items []models.MenuItem) {
	broadcast(Message{
		Event: EventLowStock,
		Data:  items,
	})
}

// BroadcastStaffNotification -> notifikasi untuk staff
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// Publisher forwards committed orders to connected screens.
type Publisher struct{}

func (Publisher) PublishOrderCreated(_ context.Context, receipt *models.Receipt) error {
	BroadcastOrderCreated(*receipt)
	BroadcastStaffNotification("Order " + receipt.OrderNumber + " for " + receipt.CustomerName +
		" (" + utils.FormatCurrency(receipt.TotalAmount) + ")")
	return nil
}

// broadcast -> fungsi internal untuk mengirim pesan. Never blocks on a
// screen: a client whose buffer is full is dropped.
func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":   msg.Event,
		"clients": len(kdsHub.clients),
	}).Debug("Broadcasting message")

	for conn, cl := range kdsHub.clients {
		select {
		case cl.send <- data:
		default:
			utils.ErrorLogger.Printf("Client with role %s is too slow, dropping it", cl.role)
			removeLocked(conn)
		}
	}
}
