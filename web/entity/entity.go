// Package entity defines the JSON envelopes returned by the eventum HTTP API.
package entity

// Msg is the standard API response.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// UserInfo is the public view of a user, including its resolved privileges.
type UserInfo struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	UserType   string          `json:"userType"`
	Privileges map[string]bool `json:"privileges"`
}
