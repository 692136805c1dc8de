package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/infrastructure/database/repository/directoryrepo"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
)

var treeCmd = &cobra.Command{
	Use:   "tree [id]",
	Short: "Print the directory forest",
	Long:  `Print every directory tree, or only the subtree rooted at id.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().Bool("ids", false, "Print directory ids next to names")
}

func runTree(cmd *cobra.Command, args []string) error {
	showIDs, _ := cmd.Flags().GetBool("ids")

	db, _, closeDB, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	repo := directoryrepo.NewDirectoryGormRepository(transaction.NewDatabase(db))
	all, err := repo.ListAll(cmd.Context())
	if err != nil {
		return err
	}
	forest := directory.NewForest(all)

	rootID := ""
	if len(args) == 1 {
		rootID = args[0]
	}
	return renderTree(cmd.OutOrStdout(), forest, rootID, showIDs)
}

// renderTree prints the subtree at rootID, or every root when rootID is empty.
func renderTree(w io.Writer, forest *directory.Forest, rootID string, showIDs bool) error {
	var roots []directory.Directory
	if rootID == "" {
		roots = forest.Roots()
	} else {
		root, ok := forest.Get(rootID)
		if !ok {
			return fmt.Errorf("directory %s not found", rootID)
		}
		roots = []directory.Directory{root}
	}

	seen := map[string]bool{}
	var walk func(d directory.Directory, depth int)
	walk = func(d directory.Directory, depth int) {
		if seen[d.ID] {
			return
		}
		seen[d.ID] = true
		line := strings.Repeat("  ", depth) + d.Name
		if showIDs {
			line += " (" + d.ID + ")"
		}
		fmt.Fprintln(w, line)
		for _, child := range forest.Children(d.ID) {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return nil
}
