// pkg/msgraph/users.go

package msgraph

import (
	"context"
	"encoding/json"
	"time"
)

// User is the subset of the directory user object the console consumes.
type User struct {
	ID                string     `json:"id"`
	DisplayName       string     `json:"displayName"`
	UserPrincipalName string     `json:"userPrincipalName"`
	AccountEnabled    bool       `json:"accountEnabled"`
	CreatedDateTime   *time.Time `json:"createdDateTime,omitempty"`
	LastSignIn        *time.Time `json:"lastSignInDateTime,omitempty"`
	Department        string     `json:"department,omitempty"`
	JobTitle          string     `json:"jobTitle,omitempty"`
}

var userSelect = []string{
	"id", "displayName", "userPrincipalName", "accountEnabled",
	"createdDateTime", "lastSignInDateTime", "department", "jobTitle",
}

// Users lists directory users, at most top of them.
func (c *Client) Users(ctx context.Context, top int) ([]User, error) {
	raw, err := c.GetList(ctx, "/users", ListOptions{Select: userSelect, Top: top})
	if err != nil {
		return nil, err
	}
	return decodeUsers(raw)
}

func decodeUsers(raw []map[string]interface{}) ([]User, error) {
	users := make([]User, 0, len(raw))
	for _, m := range raw {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}
