package connectionhub

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"

	wsmodels "fleet-tools-backend/models/ws"
)

type clientSession struct {
	conn *websocket.Conn

	// Outbound events, buffered.
	sendCh chan wsmodels.StatusEvent
	stop   func()
}

func newSession(conn *websocket.Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := clientSession{
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan wsmodels.StatusEvent, 8),
	}
	go sess.startSend(ctx)
	return sess
}

func (s clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case event, opened := <-s.sendCh:
			if !opened {
				return
			}
			if err := s.conn.WriteJSON(event); err != nil {
				log.WithError(err).Error("status event send error")
			}
		}
	}
}

func (s clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		log.WithError(err).Debug("ws connection close error")
	}
}
