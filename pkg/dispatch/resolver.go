package dispatch

import (
	"context"
	"sort"
	"strings"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

// AllSentinel in an explicit address list expands the list to every contact
// the user owns. Matched case-insensitively.
const AllSentinel = "ALL"

// Resolver turns an AddressSpec into a deduplicated, lower-cased recipient
// set. Read-only against the contact and group stores.
type Resolver struct {
	contacts contact.Repository
	groups   group.Repository
}

// NewResolver creates the resolver.
func NewResolver(contacts contact.Repository, groups group.Repository) *Resolver {
	return &Resolver{contacts: contacts, groups: groups}
}

// Resolve produces the sorted recipient set for the user's addressing
// input, or ErrNoRecipients when it is empty.
//
// Explicit addresses are trusted as-is; no existence check against the
// contact store. Group ids that are malformed, unknown, or owned by another
// user contribute nothing and never fail the request, as do stale member
// references inside a group. Only an entirely empty result is an error.
func (r *Resolver) Resolve(ctx context.Context, userID kernel.UserID, spec AddressSpec) ([]string, error) {
	set := make(map[string]struct{})
	includeAll := spec.SendToAll

	explicit := make([]string, 0, len(spec.Explicit))
	for _, raw := range spec.Explicit {
		addr := strings.TrimSpace(raw)
		if addr == "" {
			continue
		}
		if strings.EqualFold(addr, AllSentinel) {
			includeAll = true
			explicit = nil
			break
		}
		explicit = append(explicit, addr)
	}
	for _, addr := range explicit {
		set[strings.ToLower(addr)] = struct{}{}
	}

	for _, raw := range spec.GroupIDs {
		gid, ok := kernel.ParseGroupID(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		g, err := r.groups.FindByID(ctx, gid, userID)
		if errx.IsCode(err, group.ErrNotFound) {
			// Unknown or foreign group: skip, never fail.
			continue
		}
		if err != nil {
			return nil, err
		}
		members, err := r.contacts.FindByIDs(ctx, g.ContactIDs, userID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			set[strings.ToLower(m.Email)] = struct{}{}
		}
	}

	if includeAll {
		emails, err := r.contacts.EmailsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, e := range emails {
			set[strings.ToLower(e)] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil, NewNoRecipientsError()
	}

	out := make([]string, 0, len(set))
	for addr := range set {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out, nil
}
