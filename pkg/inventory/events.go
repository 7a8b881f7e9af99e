package inventory

// Reason tells a listener what kind of mutation produced a Change.
type Reason int

const (
	ReasonInsert Reason = iota + 1
	ReasonPlace
	ReasonMerge
	ReasonRemove
	ReasonConsume
	ReasonGold
	ReasonClear
)

func (r Reason) String() string {
	switch r {
	case ReasonInsert:
		return "insert"
	case ReasonPlace:
		return "place"
	case ReasonMerge:
		return "merge"
	case ReasonRemove:
		return "remove"
	case ReasonConsume:
		return "consume"
	case ReasonGold:
		return "gold"
	case ReasonClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Change is raised after every successful mutation of the store. It is
// enough for a UI to decide whether to redraw; it does not describe the
// new contents.
type Change struct {
	Reason Reason
	// Slots lists the slots touched. Empty for gold changes and Clear.
	Slots []SlotRef
	// Gold is the counter after the mutation.
	Gold int
}

// Listener receives store changes synchronously on the mutating goroutine.
type Listener func(Change)

type listenerSet struct {
	nextID int
	order  []int
	byID   map[int]Listener
}

func (ls *listenerSet) add(l Listener) func() {
	if ls.byID == nil {
		ls.byID = make(map[int]Listener)
	}
	ls.nextID++
	id := ls.nextID
	ls.byID[id] = l
	ls.order = append(ls.order, id)
	return func() {
		if _, ok := ls.byID[id]; !ok {
			return
		}
		delete(ls.byID, id)
		for i, v := range ls.order {
			if v == id {
				ls.order = append(ls.order[:i], ls.order[i+1:]...)
				break
			}
		}
	}
}

func (ls *listenerSet) emit(c Change) {
	// Copy so listeners may unsubscribe while being notified.
	ids := append([]int(nil), ls.order...)
	for _, id := range ids {
		if l, ok := ls.byID[id]; ok {
			l(c)
		}
	}
}
