package domain

import "errors"

// ErrEmptyUserID signals a cart without an owner.
var ErrEmptyUserID = errors.New("cart user id cannot be empty")

// Cart is an ordered set of listing identifiers owned by one user. Membership
// is set-semantic: adding a present identifier and removing an absent one are
// no-ops. Version increments only on effective mutations.
type Cart struct {
	userID  string
	items   []string
	index   map[string]struct{}
	version uint64
}

// NewCart constructs an empty cart for a user.
func NewCart(userID string) (*Cart, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Cart{
		userID: userID,
		index:  map[string]struct{}{},
	}, nil
}

// UserID returns the owning user identifier.
func (c *Cart) UserID() string { return c.userID }

// Version returns the mutation counter. Stale reads carry an older value.
func (c *Cart) Version() uint64 { return c.version }

// Len returns the number of distinct items.
func (c *Cart) Len() int { return len(c.items) }

// Items returns the listing identifiers in insertion order.
func (c *Cart) Items() []string {
	return append([]string{}, c.items...)
}

// Contains reports membership.
func (c *Cart) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Add appends an identifier unless already present. Returns true when the
// cart changed.
func (c *Cart) Add(id string) bool {
	if id == "" || c.Contains(id) {
		return false
	}
	c.items = append(c.items, id)
	c.index[id] = struct{}{}
	c.version++
	return true
}

// Remove drops an identifier if present. Returns true when the cart changed.
func (c *Cart) Remove(id string) bool {
	if !c.Contains(id) {
		return false
	}
	delete(c.index, id)
	for i, existing := range c.items {
		if existing == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.version++
	return true
}

// Replace swaps the whole membership, deduplicating while preserving the
// first occurrence order. Used when reconciling against the remote store.
func (c *Cart) Replace(ids []string) {
	c.items = c.items[:0]
	c.index = map[string]struct{}{}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.index[id]; ok {
			continue
		}
		c.items = append(c.items, id)
		c.index[id] = struct{}{}
	}
	c.version++
}

// Clear removes every item. Returns true when the cart was non-empty.
func (c *Cart) Clear() bool {
	if len(c.items) == 0 {
		return false
	}
	c.items = c.items[:0]
	c.index = map[string]struct{}{}
	c.version++
	return true
}
