package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ownedStub struct {
	owner *uint
}

func (o ownedStub) OwnedBy() *uint { return o.owner }

func owned(id uint) ownedStub {
	return ownedStub{owner: &id}
}

func TestDecideOwnerOnly(t *testing.T) {
	user := Principal{ID: 1}
	stranger := Principal{ID: 2}
	res := owned(1)

	assert.Equal(t, Allow, OwnerOnly.Decide(user, ActionRetrieve, res))
	assert.Equal(t, Allow, OwnerOnly.Decide(user, ActionUpdate, res))
	assert.Equal(t, Allow, OwnerOnly.Decide(user, ActionDestroy, res))

	// Non-owners must not learn the resource exists.
	assert.Equal(t, DenyHidden, OwnerOnly.Decide(stranger, ActionRetrieve, res))
	assert.Equal(t, DenyHidden, OwnerOnly.Decide(stranger, ActionUpdate, res))
	assert.Equal(t, DenyHidden, OwnerOnly.Decide(stranger, ActionDestroy, res))
}

func TestDecideOwnerOrReadOnly(t *testing.T) {
	stranger := Principal{ID: 2}
	res := owned(1)

	assert.Equal(t, Allow, OwnerOrReadOnly.Decide(stranger, ActionRetrieve, res))
	assert.Equal(t, Allow, OwnerOrReadOnly.Decide(stranger, ActionList, res))
	assert.Equal(t, DenyHidden, OwnerOrReadOnly.Decide(stranger, ActionUpdate, res))
	assert.Equal(t, DenyHidden, OwnerOrReadOnly.Decide(stranger, ActionDestroy, res))
}

func TestDecideModerator(t *testing.T) {
	mod := Principal{ID: 9, Moderator: true}
	res := owned(1)

	assert.Equal(t, Allow, OwnerOnly.Decide(mod, ActionRetrieve, res))
	assert.Equal(t, Allow, OwnerOnly.Decide(mod, ActionList, res))
	assert.Equal(t, Allow, OwnerOnly.Decide(mod, ActionUpdate, res))

	// Moderators review content, they never create or remove it. The
	// denial is visible: a 403, never a 404.
	assert.Equal(t, DenyVisible, OwnerOnly.Decide(mod, ActionCreate, nil))
	assert.Equal(t, DenyVisible, OwnerOnly.Decide(mod, ActionDestroy, res))
	assert.Equal(t, DenyVisible, OwnerOrReadOnly.Decide(mod, ActionDestroy, res))
}

func TestDecideCreate(t *testing.T) {
	user := Principal{ID: 1}
	assert.Equal(t, Allow, OwnerOnly.Decide(user, ActionCreate, nil))
	assert.Equal(t, Allow, OwnerOrReadOnly.Decide(user, ActionCreate, nil))
}

func TestDecideOrphanResource(t *testing.T) {
	// A row with no owner is visible to moderators only under the
	// strict policy.
	user := Principal{ID: 1}
	res := ownedStub{}

	assert.Equal(t, DenyHidden, OwnerOnly.Decide(user, ActionRetrieve, res))
	assert.Equal(t, Allow, OwnerOrReadOnly.Decide(user, ActionRetrieve, res))
	assert.Equal(t, Allow, OwnerOnly.Decide(Principal{ID: 9, Moderator: true}, ActionRetrieve, res))
}
