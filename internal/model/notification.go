package model

// Notification is the event pushed to a subscribed client. It is immutable
// once constructed and travels verbatim inside the bus payload.
//
// UserID may be zero for workspace-wide events (e.g. system messages), in
// which case the event is fanned out to every connection in the workspace.
// Channel, thread and parent-thread references are denormalized from the
// triggering content and stay null for workspace-level events.
type Notification struct {
	UserID         int64   `json:"userId"`         // target workspace member, 0 for workspace-wide events
	WorkspaceID    int64   `json:"workspaceId"`    // tenant scope, always set
	ChannelID      *int64  `json:"channelId"`      // scoping channel, nil for workspace-wide system messages
	ChannelName    *string `json:"channelName"`    // denormalized channel display label
	ThreadID       *int64  `json:"threadId"`       // triggering thread, if any
	ParentThreadID *int64  `json:"parentThreadId"` // parent of the triggering thread, if any
	Message        string  `json:"message"`        // human-readable payload
	MemberName     string  `json:"memberName"`     // display name of the originator, "system" for welcome events
}

// Targeted reports whether the notification is addressed to a single member
// rather than to the whole workspace.
func (n Notification) Targeted() bool {
	return n.UserID != 0
}
