package core

// Client is a connected participant as seen by the core layer.
// ID is the ephemeral connection identifier assigned at accept time;
// display names travel on the commands that need them.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 16),
		Events:   make(chan *Event, 32),
	}
}
