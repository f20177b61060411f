// main is the entry point for the moodmixer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/moodmixer/cmd"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/iocache"
)

func main() {
	defer iocache.CloseStore()
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		fmt.Println("❌", err)
		iocache.CloseStore()
		os.Exit(1)
	}
}
