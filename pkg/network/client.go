package network

import (
	"encoding/gob"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"emberhold/pkg/inventory"
	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/ecs"
	"emberhold/pkg/shared/network"
)

var errNotConnected = errors.New("not connected")

// NetworkClient keeps the latest server view for the renderer. Packets are
// decoded on ListenLoop's goroutine and read through the Get methods.
type NetworkClient struct {
	Conn           net.Conn
	Encoder        *gob.Encoder
	Decoder        *gob.Decoder
	PlayerEntityID ecs.Entity
	State          network.StateUpdatePacket
	Inventory      network.InventorySyncPacket
	Ground         network.GroundItemsSyncPacket
	Notices        []string
	Mutex          sync.RWMutex

	log    logrus.FieldLogger
	sendMu sync.Mutex
}

func NewNetworkClient(log logrus.FieldLogger) *NetworkClient {
	return &NetworkClient{log: log}
}

// Connect dials the server and logs in. On success the listen loop is
// already running.
func (c *NetworkClient) Connect(address, username, password string) (network.LoginResponsePacket, error) {
	network.RegisterGobTypes()
	conn, err := Dial(address)
	if err != nil {
		return network.LoginResponsePacket{}, fmt.Errorf("dial %s: %w", address, err)
	}

	c.Conn = conn
	c.Encoder = gob.NewEncoder(conn)
	c.Decoder = gob.NewDecoder(conn)

	login := network.Packet{
		Type: network.PacketLogin,
		Data: network.LoginPacket{Username: username, Password: password},
	}
	if err := c.Encoder.Encode(login); err != nil {
		conn.Close()
		return network.LoginResponsePacket{}, fmt.Errorf("send login: %w", err)
	}

	var response network.Packet
	if err := c.Decoder.Decode(&response); err != nil {
		conn.Close()
		return network.LoginResponsePacket{}, fmt.Errorf("read login response: %w", err)
	}
	resp, ok := response.Data.(network.LoginResponsePacket)
	if response.Type != network.PacketLoginResponse || !ok {
		conn.Close()
		return network.LoginResponsePacket{}, fmt.Errorf("unexpected packet type: %d", response.Type)
	}
	if !resp.Success {
		conn.Close()
		return resp, fmt.Errorf("login failed: %s", resp.Error)
	}

	c.PlayerEntityID = resp.PlayerEntityID
	c.log.WithField("entity", c.PlayerEntityID).Info("Logged in.")

	go c.ListenLoop()
	return resp, nil
}

func (c *NetworkClient) ListenLoop() {
	for {
		var packet network.Packet
		if err := c.Decoder.Decode(&packet); err != nil {
			c.log.WithError(err).Warn("Disconnected from server.")
			return
		}
		c.handle(packet)
	}
}

func (c *NetworkClient) handle(packet network.Packet) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	switch data := packet.Data.(type) {
	case network.StateUpdatePacket:
		c.State = data
	case network.InventorySyncPacket:
		c.Inventory = data
	case network.GroundItemsSyncPacket:
		c.Ground = data
	case network.NoticePacket:
		c.Notices = append(c.Notices, data.Message)
	default:
		c.log.Debugf("Ignoring packet type %d.", packet.Type)
	}
}

func (c *NetworkClient) Close() {
	c.sendMu.Lock()
	if c.Conn != nil {
		c.Conn.Close()
		c.Conn = nil
	}
	c.Encoder = nil
	c.sendMu.Unlock()

	c.Mutex.Lock()
	c.Inventory = network.InventorySyncPacket{}
	c.Ground = network.GroundItemsSyncPacket{}
	c.State = network.StateUpdatePacket{}
	c.Notices = nil
	c.Mutex.Unlock()
}

func (c *NetworkClient) send(packet network.Packet) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.Encoder == nil {
		return errNotConnected
	}
	return c.Encoder.Encode(packet)
}

func (c *NetworkClient) SendInput(input components.InputComponent) {
	// Input is resent every frame, a lost packet does not matter.
	_ = c.send(network.Packet{
		Type: network.PacketInput,
		Data: network.InputPacket{Input: input},
	})
}

// SendInventoryAction sends one step of a drag or a use/pickup request.
func (c *NetworkClient) SendInventoryAction(action string, slot inventory.SlotRef, target ecs.Entity) error {
	return c.send(network.Packet{
		Type: network.PacketInventoryAction,
		Data: network.InventoryActionPacket{ActionType: action, Slot: slot, Target: target},
	})
}

func (c *NetworkClient) SendUIState(openMenus map[string]bool) error {
	return c.send(network.Packet{
		Type: network.PacketUpdateUIState,
		Data: network.UpdateUIStatePacket{OpenMenus: openMenus},
	})
}

func (c *NetworkClient) GetState() network.StateUpdatePacket {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()
	return c.State
}

func (c *NetworkClient) GetInventory() network.InventorySyncPacket {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()
	return c.Inventory
}

func (c *NetworkClient) GetGround() network.GroundItemsSyncPacket {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()
	return c.Ground
}

// TakeNotices returns and clears the notices received since the last call.
func (c *NetworkClient) TakeNotices() []string {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	n := c.Notices
	c.Notices = nil
	return n
}
