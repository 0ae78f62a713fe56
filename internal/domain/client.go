package domain

import "fmt"

// Client is an external stakeholder tracked against items. Clients are
// looked up by email when work is filed on their behalf; they never log
// in and have no workflow role of their own.
type Client struct {
	ClientID  int64
	LastName  string
	FirstName string
	Email     string
	Status    ClientStatus
}

func (c *Client) Active() bool {
	return c.Status == ClientActive
}

func (c *Client) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

func (c *Client) URL() string {
	return fmt.Sprintf("/client/%d/", c.ClientID)
}
