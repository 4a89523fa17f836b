package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/memomap/internal/memory"
	"github.com/iammorganparry/memomap/internal/models"
	"github.com/iammorganparry/memomap/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import memories from JSON",
		Long:  "Replace the whole collection with a JSON array of memories, read from a file or stdin. On any invalid record the prior collection is kept.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var records []*models.Memory
	if err := json.Unmarshal(data, &records); err != nil {
		exitErr("parse json: input must be a JSON array of memories", err)
	}

	db, err := openDB()
	if err != nil {
		exitErr("open store", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc, err := memory.NewService(store.NewMemoryStore(db), logger)
	if err != nil {
		exitErr("init service", err)
	}

	n, err := svc.Import(records)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf("imported %d memories\n", n)
}
