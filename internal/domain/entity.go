// Package domain defines domain models and interfaces
package domain

// EntityType is the closed set of entity kinds that can take part in a link.
type EntityType string

const (
	EntityTask            EntityType = "task"
	EntityItem            EntityType = "item"
	EntitySale            EntityType = "sale"
	EntityFinancialRecord EntityType = "financial-record"
	EntityCharacter       EntityType = "character"
	EntityPlayer          EntityType = "player"
	EntitySite            EntityType = "site"
	EntityAccount         EntityType = "account"
	EntityContract        EntityType = "contract"
	EntityBusiness        EntityType = "business"
)

var entityTypes = []EntityType{
	EntityTask,
	EntityItem,
	EntitySale,
	EntityFinancialRecord,
	EntityCharacter,
	EntityPlayer,
	EntitySite,
	EntityAccount,
	EntityContract,
	EntityBusiness,
}

// EntityTypes returns all known entity types.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(entityTypes))
	copy(out, entityTypes)
	return out
}

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	for _, known := range entityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Entity is the tagged union over the closed entity-type set. Each variant
// exposes only the fields the link layer's business rules read; everything
// else an entity carries belongs to its own repository and stays opaque here.
type Entity interface {
	EntityType() EntityType
	EntityID() string
}

// Task is a unit of work. SiteID is the task's own site reference,
// cross-checked against task-at-site links.
type Task struct {
	ID     string `json:"id"`
	SiteID string `json:"siteId,omitempty"`
	Status string `json:"status,omitempty"`
}

func (e *Task) EntityType() EntityType { return EntityTask }
func (e *Task) EntityID() string       { return e.ID }

// Item is a tracked inventory item.
type Item struct {
	ID           string `json:"id"`
	SiteID       string `json:"siteId,omitempty"`
	HolderID     string `json:"holderId,omitempty"`
	OriginTaskID string `json:"originTaskId,omitempty"`
}

func (e *Item) EntityType() EntityType { return EntityItem }
func (e *Item) EntityID() string       { return e.ID }

// SaleLine is one line item of a sale.
type SaleLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Sale is a recorded sale with its line items.
type Sale struct {
	ID     string     `json:"id"`
	SiteID string     `json:"siteId,omitempty"`
	Lines  []SaleLine `json:"lines,omitempty"`
}

func (e *Sale) EntityType() EntityType { return EntitySale }
func (e *Sale) EntityID() string       { return e.ID }

// FinancialRecord is a bookkeeping entry.
type FinancialRecord struct {
	ID         string `json:"id"`
	SaleID     string `json:"saleId,omitempty"`
	ContractID string `json:"contractId,omitempty"`
	Amount     int64  `json:"amount,omitempty"`
}

func (e *FinancialRecord) EntityType() EntityType { return EntityFinancialRecord }
func (e *FinancialRecord) EntityID() string       { return e.ID }

// Character is an in-game character.
type Character struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId,omitempty"`
	BusinessID string `json:"businessId,omitempty"`
}

func (e *Character) EntityType() EntityType { return EntityCharacter }
func (e *Character) EntityID() string       { return e.ID }

// Player is a player profile.
type Player struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId,omitempty"`
}

func (e *Player) EntityType() EntityType { return EntityPlayer }
func (e *Player) EntityID() string       { return e.ID }

// Site is a physical or virtual location.
type Site struct {
	ID         string `json:"id"`
	BusinessID string `json:"businessId,omitempty"`
}

func (e *Site) EntityType() EntityType { return EntitySite }
func (e *Site) EntityID() string       { return e.ID }

// Account is a user account.
type Account struct {
	ID string `json:"id"`
}

func (e *Account) EntityType() EntityType { return EntityAccount }
func (e *Account) EntityID() string       { return e.ID }

// Contract is an agreement between parties.
type Contract struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId,omitempty"`
	SiteID    string `json:"siteId,omitempty"`
}

func (e *Contract) EntityType() EntityType { return EntityContract }
func (e *Contract) EntityID() string       { return e.ID }

// Business is an owned business venture.
type Business struct {
	ID string `json:"id"`
}

func (e *Business) EntityType() EntityType { return EntityBusiness }
func (e *Business) EntityID() string       { return e.ID }

// NewEntity returns an empty entity value for the given type, for decoding
// stored records into the right variant. The second return is false for an
// unknown type.
func NewEntity(t EntityType) (Entity, bool) {
	switch t {
	case EntityTask:
		return &Task{}, true
	case EntityItem:
		return &Item{}, true
	case EntitySale:
		return &Sale{}, true
	case EntityFinancialRecord:
		return &FinancialRecord{}, true
	case EntityCharacter:
		return &Character{}, true
	case EntityPlayer:
		return &Player{}, true
	case EntitySite:
		return &Site{}, true
	case EntityAccount:
		return &Account{}, true
	case EntityContract:
		return &Contract{}, true
	case EntityBusiness:
		return &Business{}, true
	}
	return nil, false
}
