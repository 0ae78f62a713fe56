package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserURL(t *testing.T) {
	u := &UserProfile{Username: "alice"}
	assert.Equal(t, "/user/alice/", u.URL())
}

func TestUserActive(t *testing.T) {
	assert.True(t, (&UserProfile{Status: UserActive}).Active())
	assert.False(t, (&UserProfile{Status: UserInactive}).Active())
}

func TestGroupFullname(t *testing.T) {
	u := &UserProfile{Fullname: "foo (group)"}
	assert.True(t, u.IsGroup())
	assert.Equal(t, "foo", u.GroupFullname())

	person := &UserProfile{Fullname: "Alice Jones"}
	assert.False(t, person.IsGroup())
	assert.Equal(t, "Alice Jones", person.GroupFullname())
}

func TestNodeURL(t *testing.T) {
	n := &Node{NID: 7}
	assert.Equal(t, "/forum/7/", n.URL())
}

func TestProjectURL(t *testing.T) {
	p := &Project{PID: 3}
	assert.Equal(t, "/project/3/", p.URL())
}
