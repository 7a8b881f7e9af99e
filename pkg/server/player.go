package server

import (
	"encoding/gob"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"emberhold/pkg/inventory"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
	"emberhold/pkg/storage"
)

// outboxSize bounds the packets waiting for a slow client. A client that
// falls this far behind is disconnected.
const outboxSize = 256

type Player struct {
	EntityID  ecs.Entity
	Username  string
	SessionID uuid.UUID
	Inventory *inventory.Inventory

	// save holds the fields of the player record the world does not own.
	save storage.PlayerSaveData
	log  logrus.FieldLogger

	// Guarded by the server lock.
	dirty       bool
	needsGround bool
	notices     []string
	unsubscribe func()

	conn      net.Conn
	out       chan protocol.Packet
	done      chan struct{}
	closeOnce sync.Once
}

func newPlayer(id ecs.Entity, save storage.PlayerSaveData, inv *inventory.Inventory, conn net.Conn, log logrus.FieldLogger) *Player {
	session := uuid.New()
	return &Player{
		EntityID:  id,
		Username:  save.Username,
		SessionID: session,
		Inventory: inv,
		save:      save,
		log: log.WithFields(logrus.Fields{
			"player":  save.Username,
			"session": session.String(),
		}),
		conn: conn,
		out:  make(chan protocol.Packet, outboxSize),
		done: make(chan struct{}),
	}
}

// Send queues pkt for delivery without blocking. It reports false when the
// outbox is full or the player is gone.
func (p *Player) Send(pkt protocol.Packet) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.out <- pkt:
		return true
	default:
		return false
	}
}

func (p *Player) notify(msg string) {
	p.notices = append(p.notices, msg)
}

// writeLoop owns the encoder once login has completed.
func (p *Player) writeLoop(enc *gob.Encoder) {
	for {
		select {
		case <-p.done:
			return
		case pkt := <-p.out:
			if err := enc.Encode(pkt); err != nil {
				p.log.WithError(err).Debug("Write failed, closing connection.")
				p.close()
				return
			}
		}
	}
}

func (p *Player) close() {
	p.closeOnce.Do(func() {
		close(p.done)
		if p.conn != nil {
			p.conn.Close()
		}
	})
}
