package chat

import "time"

const (
	ContextAsset   = "asset"
	ContextExpense = "expense"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a per-user conversation. MessageOrder is strictly
// increasing within (UserID, Context).
type Message struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:uuid;index:idx_chat_user_context;not null"`
	Context      string    `gorm:"type:varchar(16);index:idx_chat_user_context;not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	Content      string    `gorm:"type:text;not null"`
	MessageOrder int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string { return "chat_messages" }

type SendInput struct {
	UserID  string
	Context string
	Content string
}
