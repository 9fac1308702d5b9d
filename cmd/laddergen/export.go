package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/veldt/laddergen/pkg/ladder"
)

// exportChain writes a chain record in the persistence schema consumed by
// the editor tooling. Chains with validation problems are still written;
// blocking on them is the editor's call, not ours.
func exportChain(chain *ladder.Chain, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(chain)
}
