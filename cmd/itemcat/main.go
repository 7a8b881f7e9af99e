// Command itemcat validates an item catalog and prints the item table the
// server would run with.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"emberhold/pkg/items"
)

func main() {
	catalog := flag.String("catalog", "", "YAML item catalog to check")
	flag.Parse()

	if *catalog != "" {
		n, err := items.LoadCatalog(*catalog)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d items ok\n\n", *catalog, n)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tMAX STACK\tHEAL\tDAMAGE")
	for _, id := range items.IDs() {
		def, _ := items.Get(id)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%g\n", def.ID, def.Name, def.Type, def.MaxStack, def.HealAmount, def.Damage)
	}
	w.Flush()
}
