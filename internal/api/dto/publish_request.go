package dto

// PublishRequest is the JSON body a producer posts to publish a notification
// onto the bus. RecipientID is omitted for workspace-wide events; channel
// and thread references are optional denormalized context.
type PublishRequest struct {
	RecipientID    int64   `json:"recipient_id"`
	WorkspaceID    int64   `json:"workspace_id" validate:"required"`
	ChannelID      *int64  `json:"channel_id"`
	ChannelName    *string `json:"channel_name"`
	ThreadID       *int64  `json:"thread_id"`
	ParentThreadID *int64  `json:"parent_thread_id"`
	Message        string  `json:"message" validate:"required"`
	SenderName     string  `json:"sender_name" validate:"required"`
}
