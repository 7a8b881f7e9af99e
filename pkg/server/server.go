package server

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"emberhold/pkg/inventory"
	"emberhold/pkg/network"
	"emberhold/pkg/server/systems"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
	"emberhold/pkg/storage"
)

const commandQueueLimit = 4096

type GameServer struct {
	World   *ecs.World
	Players map[ecs.Entity]*Player
	Mutex   sync.Mutex

	MovementSystem    *systems.MovementSystem
	NetworkSystem     *systems.NetworkSystem
	PersistenceSystem *systems.PersistenceSystem

	cfg      *config.Config
	store    storage.Store
	log      logrus.FieldLogger
	commands *commandQueue

	// online maps usernames to their entity. Guarded by Mutex.
	online      map[string]ecs.Entity
	groundDirty bool
}

func NewGameServer(cfg *config.Config, store storage.Store, log logrus.FieldLogger) *GameServer {
	worldECS := ecs.NewWorld()

	gs := &GameServer{
		World:    worldECS,
		Players:  make(map[ecs.Entity]*Player),
		cfg:      cfg,
		store:    store,
		log:      log,
		commands: newCommandQueue(commandQueueLimit),
		online:   make(map[string]ecs.Entity),
	}

	gs.MovementSystem = systems.NewMovementSystem(worldECS, config.ArenaWidth, config.ArenaHeight)
	gs.NetworkSystem = systems.NewNetworkSystem(worldECS)
	gs.PersistenceSystem = systems.NewPersistenceSystem(worldECS, store, log)

	return gs
}

// Run serves TCP and websocket clients and ticks the world until ctx is
// cancelled. Online players are saved before it returns.
func (s *GameServer) Run(ctx context.Context) error {
	protocol.RegisterGobTypes()
	listener, err := net.Listen("tcp", s.cfg.Server.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.TCPAddr, err)
	}
	s.log.Infof("Server listening on %s", s.cfg.Server.TCPAddr)

	ws := network.NewWebSocketServer(s.cfg.Server.WSAddr, s.HandleConnection)
	go func() {
		s.log.Infof("WebSocket Server listening on %s/ws", s.cfg.Server.WSAddr)
		if err := ws.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("WebSocket server stopped.")
		}
	}()

	go s.GameLoop(ctx)

	go func() {
		<-ctx.Done()
		listener.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ws.Shutdown(shutdownCtx)
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.log.WithError(err).Warn("Failed to accept connection.")
			continue
		}
		go s.HandleConnection(conn)
	}

	s.log.Info("Shutting down, saving players.")
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(saveCtx)
}

func (s *GameServer) GameLoop(ctx context.Context) {
	interval := s.cfg.Server.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(interval.Seconds())
		}
	}
}

type outgoing struct {
	player *Player
	packet protocol.Packet
}

// Tick applies queued commands, advances the world and delivers the
// resulting updates. All inventory mutation happens here, on one goroutine.
func (s *GameServer) Tick(dt float64) {
	cmds := s.commands.Drain()

	s.Mutex.Lock()
	for _, cmd := range cmds {
		s.apply(cmd)
	}
	s.MovementSystem.Update(dt)
	s.World.Update(dt)
	out := s.collectOutgoing()
	s.Mutex.Unlock()

	for _, o := range out {
		if !o.player.Send(o.packet) {
			o.player.log.Warn("Outbox full, disconnecting.")
			o.player.close()
		}
	}
}

func (s *GameServer) apply(cmd Command) {
	player, ok := s.Players[cmd.Player]
	if !ok {
		return
	}
	switch cmd.Type {
	case CommandInput:
		s.World.AddComponent(cmd.Player, cmd.Input)
	case CommandInventory:
		s.HandleInventoryAction(player, cmd.Inventory)
	case CommandUIState:
		s.World.AddComponent(cmd.Player, components.UIStateComponent{OpenMenus: cmd.OpenMenus})
	}
}

func (s *GameServer) collectOutgoing() []outgoing {
	var out []outgoing
	state := s.NetworkSystem.PrepareStateUpdate()

	var ground protocol.Packet
	haveGround := false
	for _, p := range s.Players {
		if s.groundDirty || p.needsGround {
			if !haveGround {
				ground = s.NetworkSystem.PrepareGroundItems()
				haveGround = true
			}
			out = append(out, outgoing{p, ground})
			p.needsGround = false
		}
		if p.dirty {
			out = append(out, outgoing{p, systems.PrepareInventorySync(p.Inventory)})
			p.dirty = false
		}
		for _, msg := range p.notices {
			out = append(out, outgoing{p, protocol.Packet{Type: protocol.PacketNotice, Data: protocol.NoticePacket{Message: msg}}})
		}
		p.notices = nil
		out = append(out, outgoing{p, state})
	}
	s.groundDirty = false
	return out
}

// Enqueue stages a command for the next tick.
func (s *GameServer) Enqueue(cmd Command) bool {
	return s.commands.Enqueue(cmd)
}

func (s *GameServer) newInventory() *inventory.Inventory {
	ic := s.cfg.Inventory
	return inventory.New(inventory.Config{
		GridWidth:   ic.GridWidth,
		GridHeight:  ic.GridHeight,
		QuickSlots:  ic.QuickSlots,
		ManagedKind: ic.ManagedKind,
	})
}

func (s *GameServer) spawnPlayer(id ecs.Entity, saved storage.PlayerSaveData, inv *inventory.Inventory) {
	s.World.AddComponent(id, components.TransformComponent{X: saved.X, Y: saved.Y})
	s.World.AddComponent(id, components.PhysicsComponent{Speed: config.DefaultSpeed})
	s.World.AddComponent(id, components.SpriteComponent{Width: config.PlayerSize, Height: config.PlayerSize, Color: color.RGBA{R: 0, G: 255, B: 0, A: 255}})
	s.World.AddComponent(id, components.StatsComponent{MaxHealth: 100, CurrentHealth: saved.Health})
	s.World.AddComponent(id, components.InputComponent{MouseX: saved.X, MouseY: saved.Y})
	s.World.AddComponent(id, components.InventoryComponent{Inventory: inv})

	openMenus := saved.OpenMenus
	if openMenus == nil {
		openMenus = make(map[string]bool)
	}
	s.World.AddComponent(id, components.UIStateComponent{OpenMenus: openMenus})
}

// RemovePlayer settles any open drag, saves the player and drops them from
// the world.
func (s *GameServer) RemovePlayer(id ecs.Entity) {
	s.Mutex.Lock()
	player, ok := s.Players[id]
	if !ok {
		s.Mutex.Unlock()
		return
	}
	player.Inventory.Engine().Cancel()
	data, saveable := s.PersistenceSystem.Snapshot(id, player.save)
	if player.unsubscribe != nil {
		player.unsubscribe()
	}
	delete(s.Players, id)
	delete(s.online, player.Username)
	s.World.RemoveEntity(id)
	s.Mutex.Unlock()

	player.close()
	player.log.Info("Player left.")
	if saveable {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.PersistenceSystem.Save(ctx, data); err != nil {
			player.log.WithError(err).Error("Failed to save player.")
		}
	}
}

// Shutdown saves every online player.
func (s *GameServer) Shutdown(ctx context.Context) error {
	s.Mutex.Lock()
	var pending []storage.PlayerSaveData
	for id, player := range s.Players {
		player.Inventory.Engine().Cancel()
		if data, ok := s.PersistenceSystem.Snapshot(id, player.save); ok {
			pending = append(pending, data)
		}
	}
	s.Mutex.Unlock()

	var errs []error
	for _, data := range pending {
		s.log.WithField("player", data.Username).Info("Saving player on shutdown.")
		if err := s.PersistenceSystem.Save(ctx, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
