package event

const MessageCreatedDestination string = "conversation_message_created"
const MessageCreatedConsumerNotification string = "conversation_message_created_notification"

type MessageCreatedMessage struct {
	ConversationID int64  `json:"conversation_id"`
	MessageID      int64  `json:"message_id"`
	SenderID       int64  `json:"sender_id"`
	SenderRole     string `json:"sender_role"`
	RecipientID    int64  `json:"recipient_id"`
	Priority       string `json:"priority"`
	Subject        string `json:"subject"`
	Preview        string `json:"preview"`
}
