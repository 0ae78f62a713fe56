package domain

import (
	"fmt"
	"time"
)

// Node is a forum post. ReplyTo is zero for top-level posts.
type Node struct {
	NID       int64
	ProjectID int64
	Author    string
	Subject   string
	Body      string
	ReplyTo   int64
	AddedAt   time.Time
}

func (n *Node) URL() string {
	return fmt.Sprintf("/forum/%d/", n.NID)
}

// Notify is a (item, user) watcher subscription.
type Notify struct {
	ItemID   int64
	Username string
}
