package access

import "gorm.io/gorm"

// Action is always supplied explicitly by the handler. The engine never
// infers it from an HTTP verb.
type Action string

const (
	ActionCreate   Action = "create"
	ActionRetrieve Action = "retrieve"
	ActionList     Action = "list"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// Decision is tri-state so the transport layer can keep "you may not see
// this" (404) apart from "you may see this but not touch it" (403).
type Decision int

const (
	Allow Decision = iota
	DenyHidden  // indistinguishable from "does not exist"
	DenyVisible // existence already disclosed; plain forbidden
)

type Principal struct {
	ID        uint
	Moderator bool
}

// Owned is any catalog resource carrying a nullable owner reference.
type Owned interface {
	OwnedBy() *uint
}

// Policy selects read visibility for non-owners. OwnerOnly hides foreign
// rows entirely; OwnerOrReadOnly lets anyone read but reserves mutation
// and deletion for the owner.
type Policy struct {
	ReadPermissive bool
}

var (
	OwnerOnly       = Policy{}
	OwnerOrReadOnly = Policy{ReadPermissive: true}
)

// Decide runs the object-level check. res is nil for collection-level
// create. Moderator denial of create/destroy wins over every allow path:
// moderators review and edit, they never originate or remove content.
func (p Policy) Decide(pr Principal, action Action, res Owned) Decision {
	if pr.Moderator {
		switch action {
		case ActionCreate, ActionDestroy:
			return DenyVisible
		default:
			return Allow
		}
	}

	if action == ActionCreate {
		return Allow
	}

	if p.ReadPermissive && (action == ActionRetrieve || action == ActionList) {
		return Allow
	}

	if res != nil {
		if owner := res.OwnedBy(); owner != nil && *owner == pr.ID {
			return Allow
		}
	}
	return DenyHidden
}

// OwnedScope is the queryset-level mirror of the strict rule: moderators
// see every row, everyone else only rows they own. Direct-by-id lookups
// through this scope come back as record-not-found for foreign rows,
// which is what makes unauthorized access read as 404 rather than 403.
func OwnedScope(pr Principal) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pr.Moderator {
			return db
		}
		return db.Where("owner_id = ?", pr.ID)
	}
}
