package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quartermaster-app/linkgraph/global"
	"github.com/quartermaster-app/linkgraph/internal/domain"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Inspect stored links",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var linksListCmd = &cobra.Command{
	Use:   "list [entityType:entityId]",
	Short: "List links, all of them or those touching one entity",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var ref domain.EntityRef
		if len(args) == 1 {
			var err error
			ref, err = parseEntityRef(args[0])
			if err != nil {
				bootstrapLogger.Fatal("bad entity reference", zap.Error(err))
			}
		}

		a := newApp()
		defer a.Close()
		ctx := context.Background()

		var links []*domain.Link
		var err error
		if len(args) == 1 {
			links, err = a.LinkService.LinksFor(ctx, ref)
		} else {
			links, err = a.LinkService.All(ctx)
		}
		if err != nil {
			global.Log().Fatal("list links failed", zap.Error(err))
		}

		for _, link := range links {
			fmt.Printf("%s  %s  %s -> %s\n", link.ID, link.Type, link.Source, link.Target)
		}
		fmt.Printf("%d links\n", len(links))
	},
}

var linksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump every stored link as JSON to stdout",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.Close()

		links, err := a.LinkService.All(context.Background())
		if err != nil {
			global.Log().Fatal("export links failed", zap.Error(err))
		}

		data, err := sonic.MarshalIndent(links, "", "  ")
		if err != nil {
			global.Log().Fatal("encode links failed", zap.Error(err))
		}
		os.Stdout.Write(data)
		fmt.Println()
	},
}

var linksEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the link audit trail",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.Close()

		events, err := a.EventRepo.List(context.Background())
		if err != nil {
			global.Log().Fatal("list events failed", zap.Error(err))
		}

		for _, event := range events {
			fmt.Printf("%s  %s  %s  %s -> %s\n",
				event.Timestamp, event.Kind, event.LinkType, event.Source, event.Target)
		}
		fmt.Printf("%d events\n", len(events))
	},
}

func parseEntityRef(s string) (domain.EntityRef, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			t := domain.EntityType(s[:i])
			if !t.Valid() {
				return domain.EntityRef{}, fmt.Errorf("unknown entity type %q", s[:i])
			}
			if s[i+1:] == "" {
				return domain.EntityRef{}, fmt.Errorf("missing entity id in %q", s)
			}
			return domain.EntityRef{Type: t, ID: s[i+1:]}, nil
		}
	}
	return domain.EntityRef{}, fmt.Errorf("expected entityType:entityId, got %q", s)
}

func init() {
	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksExportCmd)
	linksCmd.AddCommand(linksEventsCmd)
	rootCmd.AddCommand(linksCmd)
}
