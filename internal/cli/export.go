package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/memomap/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export memories as JSON",
		Long:  "Export the whole collection as a JSON array, to stdout or to a dated file with --file.",
		Run:   runExport,
	}

	cmd.Flags().BoolP("file", "F", false, "Write to memories-<date>.json instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	toFile, _ := cmd.Flags().GetBool("file")

	db, err := openDB()
	if err != nil {
		exitErr("open store", err)
	}
	defer db.Close()

	memories, err := store.NewMemoryStore(db).ExportAll()
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(memories, "", "  ")
	if !toFile {
		fmt.Println(string(b))
		return
	}

	name := fmt.Sprintf("memories-%s.json", time.Now().Format("2006-01-02"))
	if err := os.WriteFile(name, append(b, '\n'), 0o644); err != nil {
		exitErr("write file", err)
	}
	fmt.Printf("wrote %d memories to %s\n", len(memories), name)
}
