package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// Shared item field flags for add/edit.
var (
	flagName     string
	flagPrepared string
	flagExpires  string
	flagLocation int64
	flagPhoto    string
	flagNotes    string
	flagAmount   float64
	flagUnit     string
	flagLinks    []string
	flagTags     []string
	flagClear    bool
)

func itemFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagName, "name", "n", "", "container contents, e.g. \"Chili\"")
	cmd.Flags().StringVarP(&flagPrepared, "prepared", "p", "", "date prepared (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVarP(&flagExpires, "expires", "e", "", "expiration date (YYYY-MM-DD, default: prepared + 7 days)")
	cmd.Flags().Int64VarP(&flagLocation, "location", "l", 1, "storage location id (see: shramba locations list)")
	cmd.Flags().StringVar(&flagPhoto, "photo", "", "photo reference")
	cmd.Flags().StringVar(&flagNotes, "notes", "", "free-text notes")
	cmd.Flags().Float64Var(&flagAmount, "amount", 0, "quantity amount")
	cmd.Flags().StringVar(&flagUnit, "unit", "", "quantity unit, e.g. \"g\" or \"portions\"")
	cmd.Flags().StringArrayVar(&flagLinks, "link", nil, "attached URL, optionally \"url|label\" (repeatable)")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a container",
	RunE: func(cmd *cobra.Command, args []string) error {
		prepared := flagPrepared
		if prepared == "" {
			prepared = time.Now().Format(model.DateLayout)
		}

		snap := model.Snapshot{
			Name:           flagName,
			DatePrepared:   prepared,
			ExpirationDate: flagExpires,
			LocationID:     flagLocation,
			PhotoRef:       flagPhoto,
			Notes:          flagNotes,
			AmountUnit:     flagUnit,
			Links:          parseLinks(flagLinks),
		}
		if cmd.Flags().Changed("amount") {
			snap.Amount = &flagAmount
		}

		item, err := store.CreateItem(cmd.Context(), database, snap)
		if err != nil {
			return err
		}

		for _, tag := range flagTags {
			if err := store.TagItem(cmd.Context(), database, item.PublicID, tag); err != nil {
				return err
			}
		}

		if flagJSON {
			return printJSON(item)
		}
		fmt.Printf("Added %s\n", item.PublicID)
		fmt.Printf("Label URL: %s\n", itemURL(item.PublicID))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List containers (current state)",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetInt64("location")
		deleted, _ := cmd.Flags().GetBool("deleted")

		revisions, err := store.ListCurrentStates(cmd.Context(), database, model.Filter{
			Query:          query,
			LocationID:     location,
			IncludeDeleted: deleted,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			if revisions == nil {
				revisions = []model.Revision{}
			}
			return printJSON(revisions)
		}
		if len(revisions) == 0 {
			fmt.Println("No containers found.")
			return nil
		}
		for _, rev := range revisions {
			printRevisionLine(rev)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <public-id>",
	Short: "Show a container's current state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rev, err := store.GetCurrentState(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		tags, err := store.ItemTags(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(struct {
				*model.Revision
				Tags []model.Tag `json:"tags,omitempty"`
			}{rev, tags})
		}
		printRevision(rev, tags)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <public-id>",
	Short: "Edit a container (fields not given are kept unchanged)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd model.ItemUpdate
		if cmd.Flags().Changed("name") {
			upd.Name = &flagName
		}
		if cmd.Flags().Changed("prepared") {
			upd.DatePrepared = &flagPrepared
		}
		if cmd.Flags().Changed("expires") {
			upd.ExpirationDate = &flagExpires
		}
		if cmd.Flags().Changed("location") {
			upd.LocationID = &flagLocation
		}
		if cmd.Flags().Changed("photo") {
			upd.PhotoRef = &flagPhoto
		}
		if cmd.Flags().Changed("notes") {
			upd.Notes = &flagNotes
		}
		if cmd.Flags().Changed("amount") {
			upd.Amount = &flagAmount
		}
		if cmd.Flags().Changed("unit") {
			upd.AmountUnit = &flagUnit
		}
		if cmd.Flags().Changed("link") || flagClear {
			upd.ReplaceLinks = true
			upd.Links = parseLinks(flagLinks)
		}

		if err := store.EditItem(cmd.Context(), database, args[0], upd); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <public-id>",
	Short: "Soft-delete a container (history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteItem(cmd.Context(), database, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s (restore with: shramba restore %s)\n", args[0], args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <public-id>",
	Short: "Restore a deleted container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.RestoreItem(cmd.Context(), database, args[0]); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <public-id>",
	Short: "Show a container's full revision history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		revisions, err := store.History(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(revisions)
		}
		for _, rev := range revisions {
			fmt.Printf("#%d  %s", rev.RevisionNum, rev.CreatedAt.Format(time.DateTime))
			if rev.Deleted {
				fmt.Print("  [deleted]")
			}
			fmt.Println()
			printRevisionLine(rev)
		}
		return nil
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <public-id>",
	Short: "Print the address a container's code points to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := store.GetItem(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		fmt.Println(itemURL(item.PublicID))
		return nil
	},
}

func init() {
	itemFieldFlags(addCmd)
	addCmd.Flags().StringArrayVarP(&flagTags, "tag", "t", nil, "tag to attach (repeatable)")

	itemFieldFlags(editCmd)
	editCmd.Flags().BoolVar(&flagClear, "clear-links", false, "remove all links")

	listCmd.Flags().StringP("query", "q", "", "search names")
	listCmd.Flags().Int64P("location", "l", 0, "filter by storage location id")
	listCmd.Flags().Bool("deleted", false, "include deleted containers")
}

// parseLinks turns "url" or "url|label" flag values into links.
func parseLinks(values []string) []model.Link {
	var links []model.Link
	for _, v := range values {
		url, label, _ := strings.Cut(v, "|")
		links = append(links, model.Link{URL: strings.TrimSpace(url), Label: strings.TrimSpace(label)})
	}
	return links
}
