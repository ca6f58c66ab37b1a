package models

import "github.com/google/uuid"

// Clone helpers produce deep copies for responses that cross the actor
// boundary. The actor keeps mutating its own records after responding, so
// callers must never see live pointers.

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Badges = append([]string{}, u.Badges...)
	return &out
}

func (c *Community) Clone() *Community {
	if c == nil {
		return nil
	}
	out := *c
	if c.ParentID != nil {
		parentID := *c.ParentID
		out.ParentID = &parentID
	}
	out.Members = cloneSet(c.Members)
	out.Posts = make([]*Post, len(c.Posts))
	for i, p := range c.Posts {
		out.Posts[i] = p.Clone()
	}
	return &out
}

func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	out := *p
	out.LikedBy = cloneSet(p.LikedBy)
	out.Comments = make([]*Comment, len(p.Comments))
	for i, cm := range p.Comments {
		out.Comments[i] = cm.Clone()
	}
	return &out
}

func (cm *Comment) Clone() *Comment {
	if cm == nil {
		return nil
	}
	out := *cm
	out.LikedBy = cloneSet(cm.LikedBy)
	return &out
}

func (r *JoinRequest) Clone() *JoinRequest {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

func cloneSet(set map[uuid.UUID]bool) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(set))
	for id, v := range set {
		out[id] = v
	}
	return out
}
