package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/store"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage storage locations",
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List storage locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := store.ListLocations(cmd.Context(), database)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(locations)
		}
		for _, loc := range locations {
			fmt.Printf("%d\t%s\n", loc.ID, loc.Name)
		}
		return nil
	},
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a storage location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := store.AddLocation(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added location %d: %s\n", loc.ID, loc.Name)
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage the tag catalog",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := store.ListTags(cmd.Context(), database)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(tags)
		}
		for _, tag := range tags {
			if tag.IsDefault {
				fmt.Printf("%s (default)\n", tag.Name)
			} else {
				fmt.Println(tag.Name)
			}
		}
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := store.AddTag(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added tag: %s\n", tag.Name)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <public-id> <tag-name>",
	Short: "Attach a tag to a container",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.TagItem(cmd.Context(), database, args[0], args[1])
	},
}

var untagCmd = &cobra.Command{
	Use:   "untag <public-id> <tag-name>",
	Short: "Detach a tag from a container",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.UntagItem(cmd.Context(), database, args[0], args[1])
	},
}

func init() {
	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsAddCmd)
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
}
