package event

const ConversationStartedDestination string = "conversation_started"
const ConversationStartedConsumerNotification string = "conversation_started_notification"

type ConversationStartedMessage struct {
	ConversationID int64  `json:"conversation_id"`
	ClientID       int64  `json:"client_id"`
	AdminID        *int64 `json:"admin_id,omitempty"`
	InitiatorID    int64  `json:"initiator_id"`
	Subject        string `json:"subject"`
	Priority       string `json:"priority"`
}
