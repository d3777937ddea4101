package service

import (
	"context"
	"fmt"

	"github.com/quartermaster-app/linkgraph/internal/domain"
)

// ruleFunc is a per-link-type semantic cross-check against the referenced
// entities' own fields. Mismatches come back as warnings, never hard
// failures: a link may represent a relationship broader than, or
// temporarily inconsistent with, an entity's own primary reference field.
type ruleFunc func(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error)

// businessRules dispatches on link type. Types without an entry pass with
// no warnings; this tier is default-permissive, the hard gates are
// compatibility and existence.
var businessRules = map[domain.LinkType]ruleFunc{
	domain.LinkTaskAtSite:               checkTaskSite,
	domain.LinkItemLocatedAtSite:        checkItemSite,
	domain.LinkItemPossessedByCharacter: checkItemHolder,
	domain.LinkItemInSale:               checkItemInSale,
	domain.LinkSaleIncludesItem:         checkSaleIncludesItem,
	domain.LinkAccountOwnsPlayer:        checkPlayerAccount,
	domain.LinkFinancialRecordForSale:   checkRecordSale,
	domain.LinkPlayerHasCharacter:       checkCharacterPlayerTarget,
	domain.LinkCharacterBelongsToPlayer: checkCharacterPlayerSource,
}

// checkBusinessRules runs the rule registered for the link type, if any.
// An endpoint that is no longer readable is skipped silently; existence
// was already validated and this tier must not add hard failures.
func checkBusinessRules(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	rule, ok := businessRules[link.Type]
	if !ok {
		return nil, nil
	}
	return rule(ctx, entities, link)
}

func fetchTask(ctx context.Context, entities domain.EntityRepository, id string) (*domain.Task, bool) {
	e, ok, err := entities.Get(ctx, domain.EntityTask, id)
	if err != nil || !ok {
		return nil, false
	}
	task, ok := e.(*domain.Task)
	return task, ok
}

func fetchItem(ctx context.Context, entities domain.EntityRepository, id string) (*domain.Item, bool) {
	e, ok, err := entities.Get(ctx, domain.EntityItem, id)
	if err != nil || !ok {
		return nil, false
	}
	item, ok := e.(*domain.Item)
	return item, ok
}

func fetchSale(ctx context.Context, entities domain.EntityRepository, id string) (*domain.Sale, bool) {
	e, ok, err := entities.Get(ctx, domain.EntitySale, id)
	if err != nil || !ok {
		return nil, false
	}
	sale, ok := e.(*domain.Sale)
	return sale, ok
}

func fetchPlayer(ctx context.Context, entities domain.EntityRepository, id string) (*domain.Player, bool) {
	e, ok, err := entities.Get(ctx, domain.EntityPlayer, id)
	if err != nil || !ok {
		return nil, false
	}
	player, ok := e.(*domain.Player)
	return player, ok
}

func fetchCharacter(ctx context.Context, entities domain.EntityRepository, id string) (*domain.Character, bool) {
	e, ok, err := entities.Get(ctx, domain.EntityCharacter, id)
	if err != nil || !ok {
		return nil, false
	}
	character, ok := e.(*domain.Character)
	return character, ok
}

func fetchRecord(ctx context.Context, entities domain.EntityRepository, id string) (*domain.FinancialRecord, bool) {
	e, ok, err := entities.Get(ctx, domain.EntityFinancialRecord, id)
	if err != nil || !ok {
		return nil, false
	}
	record, ok := e.(*domain.FinancialRecord)
	return record, ok
}

func checkTaskSite(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	task, ok := fetchTask(ctx, entities, link.Source.ID)
	if !ok || task.SiteID == "" || task.SiteID == link.Target.ID {
		return nil, nil
	}
	return []string{fmt.Sprintf("task %q names site %q as its own site, link targets site %q",
		task.ID, task.SiteID, link.Target.ID)}, nil
}

func checkItemSite(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	item, ok := fetchItem(ctx, entities, link.Source.ID)
	if !ok || item.SiteID == "" || item.SiteID == link.Target.ID {
		return nil, nil
	}
	return []string{fmt.Sprintf("item %q names site %q as its own site, link targets site %q",
		item.ID, item.SiteID, link.Target.ID)}, nil
}

func checkItemHolder(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	item, ok := fetchItem(ctx, entities, link.Source.ID)
	if !ok || item.HolderID == "" || item.HolderID == link.Target.ID {
		return nil, nil
	}
	return []string{fmt.Sprintf("item %q names character %q as its holder, link targets character %q",
		item.ID, item.HolderID, link.Target.ID)}, nil
}

func checkItemInSale(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	return checkSaleLines(ctx, entities, link.Target.ID, link.Source.ID)
}

func checkSaleIncludesItem(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	return checkSaleLines(ctx, entities, link.Source.ID, link.Target.ID)
}

func checkSaleLines(ctx context.Context, entities domain.EntityRepository, saleID, itemID string) ([]string, error) {
	sale, ok := fetchSale(ctx, entities, saleID)
	if !ok || len(sale.Lines) == 0 {
		return nil, nil
	}
	for _, line := range sale.Lines {
		if line.ItemID == itemID {
			return nil, nil
		}
	}
	return []string{fmt.Sprintf("sale %q has no line item for item %q", saleID, itemID)}, nil
}

func checkPlayerAccount(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	player, ok := fetchPlayer(ctx, entities, link.Target.ID)
	if !ok || player.AccountID == "" || player.AccountID == link.Source.ID {
		return nil, nil
	}
	return []string{fmt.Sprintf("player %q names account %q as its own account, link sources account %q",
		player.ID, player.AccountID, link.Source.ID)}, nil
}

func checkRecordSale(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	record, ok := fetchRecord(ctx, entities, link.Source.ID)
	if !ok || record.SaleID == "" || record.SaleID == link.Target.ID {
		return nil, nil
	}
	return []string{fmt.Sprintf("financial record %q names sale %q, link targets sale %q",
		record.ID, record.SaleID, link.Target.ID)}, nil
}

func checkCharacterPlayerTarget(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	return checkCharacterPlayer(ctx, entities, link.Target.ID, link.Source.ID)
}

func checkCharacterPlayerSource(ctx context.Context, entities domain.EntityRepository, link *domain.Link) ([]string, error) {
	return checkCharacterPlayer(ctx, entities, link.Source.ID, link.Target.ID)
}

func checkCharacterPlayer(ctx context.Context, entities domain.EntityRepository, characterID, playerID string) ([]string, error) {
	character, ok := fetchCharacter(ctx, entities, characterID)
	if !ok || character.PlayerID == "" || character.PlayerID == playerID {
		return nil, nil
	}
	return []string{fmt.Sprintf("character %q names player %q as its own player, link names player %q",
		character.ID, character.PlayerID, playerID)}, nil
}
