package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/erazemk/shramba/internal/model"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRevisionLine prints a one-line summary used by list and history.
func printRevisionLine(rev model.Revision) {
	line := fmt.Sprintf("%s  %-20s %s", rev.PublicID, rev.Name, rev.LocationName)
	if rev.ExpirationDate != "" {
		line += "  expires " + rev.ExpirationDate
	}
	if rev.Deleted {
		line += "  [deleted]"
	}
	fmt.Println(line)
}

// printRevision prints a container's full current state.
func printRevision(rev *model.Revision, tags []model.Tag) {
	fmt.Printf("%s (revision %d)\n", rev.Name, rev.RevisionNum)
	fmt.Printf("  Id:        %s\n", rev.PublicID)
	fmt.Printf("  Location:  %s\n", rev.LocationName)
	fmt.Printf("  Prepared:  %s\n", rev.DatePrepared)
	if rev.ExpirationDate != "" {
		fmt.Printf("  Expires:   %s\n", rev.ExpirationDate)
	}
	if rev.Amount != nil {
		fmt.Printf("  Amount:    %g %s\n", *rev.Amount, rev.AmountUnit)
	}
	if rev.Notes != "" {
		fmt.Printf("  Notes:     %s\n", rev.Notes)
	}
	if rev.PhotoRef != "" {
		fmt.Printf("  Photo:     %s\n", rev.PhotoRef)
	}
	for _, link := range rev.Links {
		if link.Label != "" {
			fmt.Printf("  Link:      %s (%s)\n", link.URL, link.Label)
		} else {
			fmt.Printf("  Link:      %s\n", link.URL)
		}
	}
	for _, tag := range tags {
		fmt.Printf("  Tag:       %s\n", tag.Name)
	}
	if rev.Deleted {
		fmt.Println("  Status:    deleted")
	}
}
