package server

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/teerapatch/rodhai/db"
	"github.com/teerapatch/rodhai/models"
	"github.com/teerapatch/rodhai/search"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans notifications out to every connected websocket client. It backs
// the toast banners in the UI and implements the fallback store's Notifier.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Notify broadcasts one toast. A client whose write fails is dropped.
func (h *Hub) Notify(title, description, severity string) {
	msg := models.Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("dropping notification client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// notify forwards to the hub when one is wired.
func (s *Server) notify(title, description, severity string) {
	if s.Hub != nil {
		s.Hub.Notify(title, description, severity)
	}
}

// handleNotificationsWS upgrades the connection and keeps it registered
// until the client goes away. Clients only listen; inbound frames are
// drained and ignored.
func (s *Server) handleNotificationsWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}

		s.Hub.register(conn)
		defer s.Hub.unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

type searchInput struct {
	Type  string `json:"type"` // term, status or page
	Value string `json:"value"`
}

type searchOutput struct {
	Data        []models.LostCar `json:"data"`
	TotalCount  int64            `json:"total_count"`
	TotalPages  int              `json:"total_pages"`
	Page        int              `json:"page"`
	Pages       []string         `json:"pages"`
	ScrollToTop bool             `json:"scroll_to_top"`
	Error       string           `json:"error,omitempty"`
}

// handleSearchWS runs a live listing session over one socket: the client
// streams term/status/page edits, the server answers with result pages.
// Edits are debounced and a stale answer is dropped before it is written.
func (s *Server) handleSearchWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		coordinator := search.NewCoordinator(func(q search.Query) ([]models.LostCar, int64, error) {
			cars, err := s.LostCarService.Search(db.SearchFilter{
				Term:   q.Term,
				Status: q.Status,
				Page:   q.Page,
			})
			if err != nil {
				return nil, 0, err
			}
			return cars.Data, cars.TotalCount, nil
		}, 0)
		defer coordinator.Stop()

		go func() {
			for result := range coordinator.Results() {
				out := searchOutput{
					Data:        result.Cars,
					TotalCount:  result.Total,
					Page:        result.Query.Page,
					ScrollToTop: result.ScrollToTop,
				}
				if result.Err != nil {
					out.Error = result.Err.Error()
				} else {
					out.TotalPages = int((result.Total + db.DefaultPageSize - 1) / db.DefaultPageSize)
					out.Pages = PageNumbers(out.TotalPages, result.Query.Page)
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			}
		}()

		coordinator.Refresh()
		for {
			var input searchInput
			if err := conn.ReadJSON(&input); err != nil {
				return
			}
			switch input.Type {
			case "term":
				coordinator.SetTerm(input.Value)
			case "status":
				coordinator.SetStatus(input.Value)
			case "page":
				page, err := strconv.Atoi(input.Value)
				if err != nil || page < 1 {
					continue
				}
				coordinator.SetPage(page)
			}
		}
	}
}
