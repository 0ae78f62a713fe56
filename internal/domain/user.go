package domain

import (
	"fmt"
	"strings"
)

// groupSuffix marks profiles that represent a group rather than a person.
const groupSuffix = " (group)"

type UserProfile struct {
	Username string
	Fullname string
	Email    string
	Status   UserStatus
}

func (u *UserProfile) URL() string {
	return fmt.Sprintf("/user/%s/", u.Username)
}

func (u *UserProfile) Active() bool {
	return u.Status == UserActive
}

func (u *UserProfile) IsGroup() bool {
	return strings.HasSuffix(u.Fullname, groupSuffix)
}

// GroupFullname strips the group marker from the fullname.
func (u *UserProfile) GroupFullname() string {
	return strings.TrimSuffix(u.Fullname, groupSuffix)
}
