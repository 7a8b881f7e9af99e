package server

import (
	"sync"

	"emberhold/pkg/shared/components"
	"emberhold/pkg/shared/ecs"
	protocol "emberhold/pkg/shared/network"
)

// CommandType enumerates what a connection can ask of the simulation.
type CommandType int

const (
	CommandInput CommandType = iota + 1
	CommandInventory
	CommandUIState
)

// Command is a client intent captured by a connection goroutine and applied
// on the next tick.
type Command struct {
	Player    ecs.Entity
	Type      CommandType
	Input     components.InputComponent
	Inventory protocol.InventoryActionPacket
	OpenMenus map[string]bool
}

// commandQueue stages commands between connection goroutines and the tick.
// Commands keep their arrival order.
type commandQueue struct {
	mu    sync.Mutex
	buf   []Command
	limit int
}

func newCommandQueue(limit int) *commandQueue {
	return &commandQueue{limit: limit}
}

// Enqueue stages cmd. It reports false when the queue is full.
func (q *commandQueue) Enqueue(cmd Command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.limit > 0 && len(q.buf) >= q.limit {
		return false
	}
	q.buf = append(q.buf, cmd)
	return true
}

// Drain returns every staged command and empties the queue.
func (q *commandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.buf
	q.buf = nil
	return cmds
}

func (q *commandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}
