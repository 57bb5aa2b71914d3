package dynamo

// DynamoDB attribute and index names for the users table.
const (
	fieldUserID              = "user_id"
	fieldUsername            = "username"
	fieldEmail               = "email"
	fieldIsAcceptingMessages = "is_accepting_messages"
	fieldMessages            = "messages"
	fieldMessageID           = "message_id"
	fieldUpdatedAt           = "updated_at"

	indexUsername = "username-index"
	indexEmail    = "email-index"
)
