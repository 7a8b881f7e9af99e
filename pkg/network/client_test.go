package network

import (
	"encoding/gob"
	"net"
	"testing"

	"emberhold/pkg/inventory"
	"emberhold/pkg/logging"
	"emberhold/pkg/shared/network"
)

func TestClientHandlesPackets(t *testing.T) {
	c := NewNetworkClient(logging.Discard())

	c.handle(network.Packet{Type: network.PacketInventorySync, Data: network.InventorySyncPacket{Width: 6, Gold: 12}})
	c.handle(network.Packet{Type: network.PacketGroundItemsSync, Data: network.GroundItemsSyncPacket{Items: []network.GroundItem{{ID: 4}}}})
	c.handle(network.Packet{Type: network.PacketNotice, Data: network.NoticePacket{Message: "Inventory full"}})
	c.handle(network.Packet{Type: network.PacketNotice, Data: network.NoticePacket{Message: "again"}})

	if inv := c.GetInventory(); inv.Width != 6 || inv.Gold != 12 {
		t.Fatalf("inventory not stored: %+v", inv)
	}
	if g := c.GetGround(); len(g.Items) != 1 {
		t.Fatalf("ground not stored: %+v", g)
	}
	if n := c.TakeNotices(); len(n) != 2 || n[0] != "Inventory full" {
		t.Fatalf("unexpected notices %v", n)
	}
	if n := c.TakeNotices(); len(n) != 0 {
		t.Fatalf("notices not cleared: %v", n)
	}
}

func TestSendInventoryAction(t *testing.T) {
	network.RegisterGobTypes()
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := NewNetworkClient(logging.Discard())
	if err := c.SendInventoryAction(network.ActionDrop, inventory.QuickSlot(2), 0); err == nil {
		t.Fatalf("send without a connection succeeded")
	}
	c.Encoder = gob.NewEncoder(client)

	got := make(chan network.Packet, 1)
	go func() {
		var p network.Packet
		if err := gob.NewDecoder(server).Decode(&p); err == nil {
			got <- p
		}
		close(got)
	}()

	if err := c.SendInventoryAction(network.ActionDrop, inventory.QuickSlot(2), 0); err != nil {
		t.Fatalf("send: %v", err)
	}
	p, ok := <-got
	if !ok {
		t.Fatalf("nothing received")
	}
	action, ok := p.Data.(network.InventoryActionPacket)
	if !ok || action.ActionType != network.ActionDrop || action.Slot != inventory.QuickSlot(2) {
		t.Fatalf("unexpected packet %+v", p)
	}
}
