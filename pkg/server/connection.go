package server

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net"
	"time"

	"emberhold/pkg/inventory"
	"emberhold/pkg/server/systems"
	"emberhold/pkg/shared/config"
	protocol "emberhold/pkg/shared/network"
	"emberhold/pkg/storage"
)

var (
	errBadCredentials = errors.New("invalid credentials")
	errWrongPassword  = errors.New("wrong password")
	errAlreadyOnline  = errors.New("already logged in")
)

// HandleConnection authenticates a client and then turns its packets into
// commands for the tick loop.
func (s *GameServer) HandleConnection(conn net.Conn) {
	defer conn.Close()
	decoder := gob.NewDecoder(conn)
	encoder := gob.NewEncoder(conn)

	var player *Player
	for player == nil {
		var packet protocol.Packet
		if err := decoder.Decode(&packet); err != nil {
			s.log.WithError(err).Debug("Connection closed before login.")
			return
		}
		req, ok := packet.Data.(protocol.LoginPacket)
		if packet.Type != protocol.PacketLogin || !ok {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		p, resp, err := s.Login(ctx, conn, req)
		cancel()
		if err != nil {
			s.log.WithField("player", req.Username).WithError(err).Info("Login rejected.")
		}
		if err := encoder.Encode(protocol.Packet{Type: protocol.PacketLoginResponse, Data: resp}); err != nil {
			if p != nil {
				s.RemovePlayer(p.EntityID)
			}
			return
		}
		player = p
	}

	go player.writeLoop(encoder)

	for {
		var packet protocol.Packet
		if err := decoder.Decode(&packet); err != nil {
			player.log.WithError(err).Debug("Disconnected.")
			s.RemovePlayer(player.EntityID)
			return
		}

		cmd := Command{Player: player.EntityID}
		switch data := packet.Data.(type) {
		case protocol.InputPacket:
			cmd.Type = CommandInput
			cmd.Input = data.Input
		case protocol.InventoryActionPacket:
			cmd.Type = CommandInventory
			cmd.Inventory = data
		case protocol.UpdateUIStatePacket:
			cmd.Type = CommandUIState
			cmd.OpenMenus = data.OpenMenus
		default:
			player.log.Debugf("Ignoring packet type %d.", packet.Type)
			continue
		}
		if !s.Enqueue(cmd) {
			player.log.Warn("Command queue full, dropping command.")
		}
	}
}

// Login loads or creates the player record and spawns the player. Unknown
// usernames get a new account with the starter kit. The response is always
// usable; err explains a failed login. conn may be nil for players without
// a transport.
func (s *GameServer) Login(ctx context.Context, conn net.Conn, req protocol.LoginPacket) (*Player, protocol.LoginResponsePacket, error) {
	fail := func(err error) (*Player, protocol.LoginResponsePacket, error) {
		return nil, protocol.LoginResponsePacket{Success: false, Error: err.Error()}, err
	}
	if !storage.ValidUsername(req.Username) || req.Password == "" {
		return fail(errBadCredentials)
	}

	isNew := false
	saved, err := s.store.Load(ctx, req.Username)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		isNew = true
		saved = &storage.PlayerSaveData{
			Username: req.Username,
			Password: req.Password,
			X:        config.ArenaWidth / 2,
			Y:        config.ArenaHeight / 2,
			Health:   100,
		}
	case err != nil:
		return fail(fmt.Errorf("load player: %w", err))
	case saved.Password != req.Password:
		return fail(errWrongPassword)
	}

	s.Mutex.Lock()
	if _, online := s.online[req.Username]; online {
		s.Mutex.Unlock()
		return fail(errAlreadyOnline)
	}

	id := s.World.NewEntity()
	inv := s.newInventory()
	player := newPlayer(id, *saved, inv, conn, s.log)

	if isNew {
		if err := systems.GrantStarterKit(inv, s.cfg.Inventory.StarterKit, s.cfg.Inventory.StarterGold); err != nil {
			player.log.WithError(err).Warn("Starter kit incomplete.")
		}
	} else {
		for _, err := range systems.RestoreInventory(inv.Store(), saved.Inventory) {
			player.log.WithError(err).Warn("Dropped inventory entry while loading.")
		}
	}

	s.spawnPlayer(id, *saved, inv)
	s.attachInventory(player)
	player.dirty = true
	player.needsGround = true
	s.Players[id] = player
	s.online[req.Username] = id

	var initial storage.PlayerSaveData
	if isNew {
		initial, _ = s.PersistenceSystem.Snapshot(id, player.save)
	}
	s.Mutex.Unlock()

	if isNew {
		if err := s.PersistenceSystem.Save(ctx, initial); err != nil {
			player.log.WithError(err).Error("Failed to create account.")
		}
		player.log.Info("New player created.")
	}
	player.log.Info("Player logged in.")

	return player, protocol.LoginResponsePacket{
		Success:        true,
		SessionID:      player.SessionID.String(),
		PlayerEntityID: id,
		PlayerX:        saved.X,
		PlayerY:        saved.Y,
		Keybindings:    saved.Keybindings,
		OpenMenus:      saved.OpenMenus,
	}, nil
}

// attachInventory wires inventory notifications to the player's sync state
// and to the world. Runs under the server lock.
func (s *GameServer) attachInventory(p *Player) {
	unsubscribe := p.Inventory.Subscribe(func(inventory.Change) {
		p.dirty = true
	})
	p.Inventory.OnDiscard(func(it inventory.Item) {
		s.spawnGroundItem(p.EntityID, it.Kind(), it.Quantity())
	})
	p.unsubscribe = unsubscribe
}

