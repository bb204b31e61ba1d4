package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"aimrange/internal/analytics"
	"aimrange/internal/broadcast"
	"aimrange/internal/config"
	"aimrange/internal/db"
	"aimrange/internal/events"
	"aimrange/internal/ledger"
	"aimrange/internal/metrics"
	"aimrange/internal/modes"
	"aimrange/internal/sessions"
	"aimrange/internal/stats"
	"aimrange/internal/wshub"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Sessions    *sessions.Store
	Hub         *wshub.Hub
	Broadcaster *broadcast.Broadcaster
	Ledger      ledger.Store
	Analytics   *analytics.Service
	Modes       []modes.Mode
	DB          *db.DB // nil if no database configured
	// Encoding is the default outbound codec, "json" or "msgpack".
	Encoding string
}

func New(tun config.Tuning, store ledger.Store, bus *events.Bus, opts sessions.Options) *Server {
	return &Server{
		Sessions:    sessions.NewStore(tun, bus, opts),
		Hub:         wshub.NewHub(),
		Broadcaster: broadcast.NewBroadcaster(bus),
		Ledger:      store,
		Analytics:   analytics.NewService(store),
		Modes:       modes.List(modes.Catalog(tun)),
		Encoding:    "json",
	}
}

// announce runs once a round is in the ledger: badges are awarded and the
// recap goes to the SSE feed and every connected range.
func (s *Server) announce(ctx context.Context, sum stats.Summary) {
	recap := s.Analytics.Recap(ctx, sum)
	s.Broadcaster.RoundEnded(recap)
	s.Hub.Broadcast(wshub.ServerMessage{Type: wshub.TypeFeed, PlayerID: sum.PlayerID, Payload: recap})
}

// handleWS upgrades to a WebSocket and runs one player's range until either
// side goes away. Query params: id and name identify the player, enc picks
// the snapshot codec.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	q := r.URL.Query()
	encoding := s.Encoding
	if enc := q.Get("enc"); enc != "" {
		encoding = enc
	}

	sess := s.Sessions.Create(q.Get("id"), q.Get("name"))
	client := wshub.NewClient(sess.ID, conn, wshub.CodecFor(encoding))
	client.PlayerID = sess.PlayerID
	client.Name = sess.PlayerName
	s.Hub.Register(client)
	metrics.ActiveSessions.Inc()
	log.Printf("[WS] %s connected as %s (%s)\n", sess.ID, sess.PlayerName, client.Codec.Name())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		client.WritePump(ctx)
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		return sess.Run(ctx, client)
	})
	eg.Go(func() error {
		defer sess.Close()
		return readLoop(ctx, conn, sess)
	})
	if err := eg.Wait(); err != nil {
		log.Printf("[WS] %s: %v\n", sess.ID, err)
	}

	// The session loop has exited, so nothing enqueues to the client anymore.
	s.Hub.Unregister(sess.ID)
	s.Sessions.Delete(sess.ID)
	metrics.ActiveSessions.Dec()
	conn.Close(websocket.StatusNormalClosure, "")
	log.Printf("[WS] %s disconnected\n", sess.ID)
}

func readLoop(ctx context.Context, conn *websocket.Conn, sess *sessions.Session) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading: %w", err)
		}
		msg, err := wshub.DecodeClientMessage(typ, data)
		if err != nil {
			log.Printf("[WS] %s: %v\n", sess.ID, err)
			continue
		}
		sess.Submit(msg)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	msgChan := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(msgChan)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			fmt.Fprintf(w, "data: %s\n\n", msg.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Modes)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"sessions": s.Sessions.Len(),
		"database": s.DB != nil,
	}
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			status["status"] = "db_error"
			status["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encoding response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
