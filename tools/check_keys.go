package main

import (
	"fmt"
	"sort"

	"emberhold/pkg/client"
)

// Prints the default keybindings as the integers stored in player saves.
func main() {
	keys := client.DefaultKeys(10)
	actions := make([]string, 0, len(keys))
	for action := range keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		fmt.Printf("%-10s %-4d %s\n", action, int(keys[action]), keys[action].String())
	}
}
