// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/quizroom/quizroom/internal/broadcast"
	"github.com/quizroom/quizroom/internal/coordinator"
)

// BadSubprotocolError closes a connection that negotiated the wrong
// websocket subprotocol.
const BadSubprotocolError = 3000

// WSHandler upgrades the connection and runs the session event loop.
// Each connection subscribes to session channels via joinRoom messages;
// all other events mutate session state through the coordinator, which
// fans the resulting updates back out to the room. Failures on this
// path are logged and swallowed so one bad event cannot tear down a
// shared connection.
func WSHandler(logger *logrus.Logger, coord *coordinator.Coordinator, hub *broadcast.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"quizroom"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "quizroom" {
			c.Close(BadSubprotocolError, "client must speak the quizroom subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		sub := broadcast.NewSubscriber(logger)
		logger.WithFields(logrus.Fields{
			"subscriber": sub.ID,
			"remote":     r.RemoteAddr,
		}).Info("websocket connected")

		go writePump(ctx, c, sub, logger)

		readPump(ctx, c, sub, coord, hub, logger)

		// Disconnect: drop subscriptions only, session state stays put.
		hub.UnsubscribeAll(sub)
		logger.WithField("subscriber", sub.ID).Info("websocket disconnected")
	}
}

// readPump consumes client events until the connection closes.
func readPump(ctx context.Context, c *websocket.Conn, sub *broadcast.Subscriber, coord *coordinator.Coordinator, hub *broadcast.Hub, logger *logrus.Logger) {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus != websocket.StatusNormalClosure && closeStatus != websocket.StatusGoingAway && ctx.Err() == nil {
				logger.Warnf("websocket read error for %s: %v", sub.ID, err)
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var packet map[string]interface{}
		if err := json.Unmarshal(msg, &packet); err != nil {
			logger.Warnf("invalid json from %s: %v", sub.ID, err)
			sub.WriteError("Invalid JSON format")
			continue
		}

		handleSessionMessage(ctx, packet, sub, coord, hub, logger)
	}
}

// handleSessionMessage interprets the "type" field of one client event.
func handleSessionMessage(ctx context.Context, packet map[string]interface{}, sub *broadcast.Subscriber, coord *coordinator.Coordinator, hub *broadcast.Hub, logger *logrus.Logger) {
	action, _ := packet["type"].(string)
	code, _ := packet["code"].(string)
	if code == "" {
		sub.WriteError("missing session code")
		return
	}

	switch action {
	case "joinRoom":
		hub.Subscribe(code, sub)
		if err := coord.AnnounceRoster(ctx, code); err != nil {
			logger.Warnf("joinRoom for %s failed: %v", code, err)
		}
	case "playerReady":
		playerName, _ := packet["playerName"].(string)
		ready, _ := packet["ready"].(bool)
		if err := coord.SetReady(ctx, code, playerName, ready); err != nil {
			logger.Warnf("playerReady for %s failed: %v", code, err)
		}
	case "endTurn":
		if err := coord.EndTurn(ctx, code); err != nil {
			logger.Warnf("endTurn for %s failed: %v", code, err)
		}
	case "startGame":
		if err := coord.StartGame(ctx, code); err != nil {
			logger.Warnf("startGame for %s failed: %v", code, err)
		}
	case "getActivePlayer":
		// Answer goes to the caller only, never the room.
		player, ok, err := coord.ActivePlayer(ctx, code)
		resp := map[string]interface{}{
			"type":             "activePlayer",
			"activePlayerName": nil,
		}
		if err != nil {
			logger.Warnf("getActivePlayer for %s failed: %v", code, err)
		} else if ok {
			resp["activePlayerName"] = player.Name
		}
		sub.Write(resp)
	default:
		logger.Warnf("unknown action %q from %s", action, sub.ID)
		sub.WriteError("Unknown action type: " + action)
	}
}

// writePump drains the subscriber's channel onto the wire.
func writePump(ctx context.Context, c *websocket.Conn, sub *broadcast.Subscriber, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing msg for %s: %v", sub.ID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("websocket write error for %s: %v", sub.ID, err)
				return
			}
		}
	}
}
