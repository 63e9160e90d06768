// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// CommunityKind enumerates the platform categories a discussion community
// can belong to.
type CommunityKind string

const (
	KindReddit        CommunityKind = "reddit"
	KindDiscord       CommunityKind = "discord"
	KindSlack         CommunityKind = "slack"
	KindForum         CommunityKind = "forum"
	KindFacebookGroup CommunityKind = "facebook-group"
	KindLinkedInGroup CommunityKind = "linkedin-group"
)

// CommunityKinds lists every kind in a stable order for iteration.
var CommunityKinds = []CommunityKind{
	KindReddit, KindDiscord, KindSlack, KindForum,
	KindFacebookGroup, KindLinkedInGroup,
}

// CommunityMap maps a platform kind to its candidate community identifiers:
// subreddit names, URLs, or free-text names. Identifiers are unique per kind
// after normalization, preserving first-seen order. Built fresh per
// discovery request; never persisted by the pipeline core.
type CommunityMap map[CommunityKind][]string

// NewCommunityMap returns a map with an empty slot for every kind.
func NewCommunityMap() CommunityMap {
	m := make(CommunityMap, len(CommunityKinds))
	for _, k := range CommunityKinds {
		m[k] = nil
	}
	return m
}

// Add appends id under kind unless an already-present identifier normalizes
// to the same value. It reports whether the identifier was added.
func (m CommunityMap) Add(kind CommunityKind, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	norm := normalizeCommunity(id)
	for _, existing := range m[kind] {
		if normalizeCommunity(existing) == norm {
			return false
		}
	}
	m[kind] = append(m[kind], id)
	return true
}

// Merge adds every identifier from src, keeping m's first-seen order.
func (m CommunityMap) Merge(src CommunityMap) {
	for _, kind := range CommunityKinds {
		for _, id := range src[kind] {
			m.Add(kind, id)
		}
	}
}

// Total returns the number of identifiers across all kinds.
func (m CommunityMap) Total() int {
	n := 0
	for _, ids := range m {
		n += len(ids)
	}
	return n
}

// normalizeCommunity lowercases an identifier and strips subreddit-style
// prefixes so "r/WebDev", "/r/webdev", and "webdev" compare equal.
func normalizeCommunity(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "r/")
	s = strings.TrimPrefix(s, "u/")
	return strings.TrimRight(s, "/")
}
