package domain

import "sort"

// LinkType is the closed set of relationship kinds.
type LinkType string

const (
	LinkTaskCreatedItem     LinkType = "task-created-item"
	LinkItemCreatedByTask   LinkType = "item-created-by-task"
	LinkSaleCreatedTask     LinkType = "sale-created-task"
	LinkTaskCreatedFromSale LinkType = "task-created-from-sale"

	LinkItemLocatedAtSite        LinkType = "item-located-at-site"
	LinkSiteContainsItem         LinkType = "site-contains-item"
	LinkItemPossessedByCharacter LinkType = "item-possessed-by-character"
	LinkCharacterPossessesItem   LinkType = "character-possesses-item"
	LinkItemInSale               LinkType = "item-in-sale"
	LinkSaleIncludesItem         LinkType = "sale-includes-item"
	LinkItemComponentOfItem      LinkType = "item-component-of-item"
	LinkItemReservedForContract  LinkType = "item-reserved-for-contract"

	LinkAccountOwnsPlayer         LinkType = "account-owns-player"
	LinkPlayerOwnedByAccount      LinkType = "player-owned-by-account"
	LinkPlayerHasCharacter        LinkType = "player-has-character"
	LinkCharacterBelongsToPlayer  LinkType = "character-belongs-to-player"
	LinkCharacterMentorsCharacter LinkType = "character-mentors-character"

	LinkContractInvolvesCharacter  LinkType = "contract-involves-character"
	LinkContractInvolvesItem       LinkType = "contract-involves-item"
	LinkContractHeldByAccount      LinkType = "contract-held-by-account"
	LinkContractAtSite             LinkType = "contract-at-site"
	LinkContractSupersedesContract LinkType = "contract-supersedes-contract"

	LinkTaskAssignedToCharacter     LinkType = "task-assigned-to-character"
	LinkTaskAtSite                  LinkType = "task-at-site"
	LinkTaskForContract             LinkType = "task-for-contract"
	LinkTaskDependsOnTask           LinkType = "task-depends-on-task"
	LinkTaskProducedFinancialRecord LinkType = "task-produced-financial-record"

	LinkSaleRecordedInFinancialRecord LinkType = "sale-recorded-in-financial-record"
	LinkFinancialRecordForSale        LinkType = "financial-record-for-sale"
	LinkFinancialRecordForContract    LinkType = "financial-record-for-contract"
	LinkFinancialRecordForBusiness    LinkType = "financial-record-for-business"
	LinkSaleAtSite                    LinkType = "sale-at-site"
	LinkSaleByCharacter               LinkType = "sale-by-character"
	LinkSaleToAccount                 LinkType = "sale-to-account"

	LinkBusinessOwnsSite          LinkType = "business-owns-site"
	LinkSiteOwnedByBusiness       LinkType = "site-owned-by-business"
	LinkBusinessOwnsItem          LinkType = "business-owns-item"
	LinkCharacterWorksForBusiness LinkType = "character-works-for-business"
	LinkBusinessEmploysCharacter  LinkType = "business-employs-character"
	LinkPlayerRunsBusiness        LinkType = "player-runs-business"
	LinkAccountFundsBusiness      LinkType = "account-funds-business"
	LinkSiteConnectedToSite       LinkType = "site-connected-to-site"
)

// linkTypeSpec declares one link type: which entity types may stand on each
// side, and the canonical counterpart when this type is the reverse phrasing
// of an existing relationship family.
type linkTypeSpec struct {
	sources   []EntityType
	targets   []EntityType
	canonical LinkType
}

// linkTypeSpecs is the compatibility matrix plus the canonical-pair table.
// It is populated once here and never mutated; exact enum equality only, no
// wildcards or subtype matching.
var linkTypeSpecs = map[LinkType]linkTypeSpec{
	LinkTaskCreatedItem:     {sources: []EntityType{EntityTask}, targets: []EntityType{EntityItem}},
	LinkItemCreatedByTask:   {sources: []EntityType{EntityItem}, targets: []EntityType{EntityTask}, canonical: LinkTaskCreatedItem},
	LinkSaleCreatedTask:     {sources: []EntityType{EntitySale}, targets: []EntityType{EntityTask}},
	LinkTaskCreatedFromSale: {sources: []EntityType{EntityTask}, targets: []EntityType{EntitySale}, canonical: LinkSaleCreatedTask},

	LinkItemLocatedAtSite:        {sources: []EntityType{EntityItem}, targets: []EntityType{EntitySite}},
	LinkSiteContainsItem:         {sources: []EntityType{EntitySite}, targets: []EntityType{EntityItem}, canonical: LinkItemLocatedAtSite},
	LinkItemPossessedByCharacter: {sources: []EntityType{EntityItem}, targets: []EntityType{EntityCharacter}},
	LinkCharacterPossessesItem:   {sources: []EntityType{EntityCharacter}, targets: []EntityType{EntityItem}, canonical: LinkItemPossessedByCharacter},
	LinkItemInSale:               {sources: []EntityType{EntityItem}, targets: []EntityType{EntitySale}},
	LinkSaleIncludesItem:         {sources: []EntityType{EntitySale}, targets: []EntityType{EntityItem}, canonical: LinkItemInSale},
	LinkItemComponentOfItem:      {sources: []EntityType{EntityItem}, targets: []EntityType{EntityItem}},
	LinkItemReservedForContract:  {sources: []EntityType{EntityItem}, targets: []EntityType{EntityContract}},

	LinkAccountOwnsPlayer:         {sources: []EntityType{EntityAccount}, targets: []EntityType{EntityPlayer}},
	LinkPlayerOwnedByAccount:      {sources: []EntityType{EntityPlayer}, targets: []EntityType{EntityAccount}, canonical: LinkAccountOwnsPlayer},
	LinkPlayerHasCharacter:        {sources: []EntityType{EntityPlayer}, targets: []EntityType{EntityCharacter}},
	LinkCharacterBelongsToPlayer:  {sources: []EntityType{EntityCharacter}, targets: []EntityType{EntityPlayer}, canonical: LinkPlayerHasCharacter},
	LinkCharacterMentorsCharacter: {sources: []EntityType{EntityCharacter}, targets: []EntityType{EntityCharacter}},

	LinkContractInvolvesCharacter:  {sources: []EntityType{EntityContract}, targets: []EntityType{EntityCharacter}},
	LinkContractInvolvesItem:       {sources: []EntityType{EntityContract}, targets: []EntityType{EntityItem}},
	LinkContractHeldByAccount:      {sources: []EntityType{EntityContract}, targets: []EntityType{EntityAccount}},
	LinkContractAtSite:             {sources: []EntityType{EntityContract}, targets: []EntityType{EntitySite}},
	LinkContractSupersedesContract: {sources: []EntityType{EntityContract}, targets: []EntityType{EntityContract}},

	// A task can be assigned either to a concrete character or directly to
	// the player behind it.
	LinkTaskAssignedToCharacter:     {sources: []EntityType{EntityTask}, targets: []EntityType{EntityCharacter, EntityPlayer}},
	LinkTaskAtSite:                  {sources: []EntityType{EntityTask}, targets: []EntityType{EntitySite}},
	LinkTaskForContract:             {sources: []EntityType{EntityTask}, targets: []EntityType{EntityContract}},
	LinkTaskDependsOnTask:           {sources: []EntityType{EntityTask}, targets: []EntityType{EntityTask}},
	LinkTaskProducedFinancialRecord: {sources: []EntityType{EntityTask}, targets: []EntityType{EntityFinancialRecord}},

	LinkSaleRecordedInFinancialRecord: {sources: []EntityType{EntitySale}, targets: []EntityType{EntityFinancialRecord}},
	LinkFinancialRecordForSale:        {sources: []EntityType{EntityFinancialRecord}, targets: []EntityType{EntitySale}, canonical: LinkSaleRecordedInFinancialRecord},
	LinkFinancialRecordForContract:    {sources: []EntityType{EntityFinancialRecord}, targets: []EntityType{EntityContract}},
	LinkFinancialRecordForBusiness:    {sources: []EntityType{EntityFinancialRecord}, targets: []EntityType{EntityBusiness, EntitySite}},
	LinkSaleAtSite:                    {sources: []EntityType{EntitySale}, targets: []EntityType{EntitySite}},
	LinkSaleByCharacter:               {sources: []EntityType{EntitySale}, targets: []EntityType{EntityCharacter}},
	LinkSaleToAccount:                 {sources: []EntityType{EntitySale}, targets: []EntityType{EntityAccount}},

	LinkBusinessOwnsSite:          {sources: []EntityType{EntityBusiness}, targets: []EntityType{EntitySite}},
	LinkSiteOwnedByBusiness:       {sources: []EntityType{EntitySite}, targets: []EntityType{EntityBusiness}, canonical: LinkBusinessOwnsSite},
	LinkBusinessOwnsItem:          {sources: []EntityType{EntityBusiness}, targets: []EntityType{EntityItem}},
	LinkCharacterWorksForBusiness: {sources: []EntityType{EntityCharacter}, targets: []EntityType{EntityBusiness}},
	LinkBusinessEmploysCharacter:  {sources: []EntityType{EntityBusiness}, targets: []EntityType{EntityCharacter}, canonical: LinkCharacterWorksForBusiness},
	LinkPlayerRunsBusiness:        {sources: []EntityType{EntityPlayer}, targets: []EntityType{EntityBusiness}},
	LinkAccountFundsBusiness:      {sources: []EntityType{EntityAccount}, targets: []EntityType{EntityBusiness}},
	LinkSiteConnectedToSite:       {sources: []EntityType{EntitySite}, targets: []EntityType{EntitySite}},
}

// reverseTypes indexes the canonical-pair table the other way around, so
// a canonical type can find its reverse phrasing.
var reverseTypes = func() map[LinkType]LinkType {
	out := make(map[LinkType]LinkType)
	for t, spec := range linkTypeSpecs {
		if spec.canonical != "" {
			out[spec.canonical] = t
		}
	}
	return out
}()

// LinkTypes returns all known link types, sorted for stable iteration.
func LinkTypes() []LinkType {
	out := make([]LinkType, 0, len(linkTypeSpecs))
	for t := range linkTypeSpecs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool {
	_, ok := linkTypeSpecs[t]
	return ok
}

// AllowedSources returns the entity types allowed on the source side.
func (t LinkType) AllowedSources() []EntityType {
	spec, ok := linkTypeSpecs[t]
	if !ok {
		return nil
	}
	out := make([]EntityType, len(spec.sources))
	copy(out, spec.sources)
	return out
}

// AllowedTargets returns the entity types allowed on the target side.
func (t LinkType) AllowedTargets() []EntityType {
	spec, ok := linkTypeSpecs[t]
	if !ok {
		return nil
	}
	out := make([]EntityType, len(spec.targets))
	copy(out, spec.targets)
	return out
}

// AllowsSource reports whether et may stand on the source side of t.
func (t LinkType) AllowsSource(et EntityType) bool {
	spec, ok := linkTypeSpecs[t]
	if !ok {
		return false
	}
	for _, allowed := range spec.sources {
		if et == allowed {
			return true
		}
	}
	return false
}

// AllowsTarget reports whether et may stand on the target side of t.
func (t LinkType) AllowsTarget(et EntityType) bool {
	spec, ok := linkTypeSpecs[t]
	if !ok {
		return false
	}
	for _, allowed := range spec.targets {
		if et == allowed {
			return true
		}
	}
	return false
}

// CanonicalType returns the canonical counterpart when t is the reverse
// phrasing of a relationship family. Links are unidirectional by
// convention: only the canonical direction may be persisted, lookup from
// either end is symmetric regardless.
func (t LinkType) CanonicalType() (LinkType, bool) {
	spec, ok := linkTypeSpecs[t]
	if !ok || spec.canonical == "" {
		return "", false
	}
	return spec.canonical, true
}

// ReverseType returns the reverse phrasing when t is the canonical type of
// a relationship family.
func (t LinkType) ReverseType() (LinkType, bool) {
	reverse, ok := reverseTypes[t]
	return reverse, ok
}
