package models

import (
	"time"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	StatusReceived = "received"
	StatusSent     = "sent"
	StatusFailed   = "failed"
)

// Message is one entry of the conversation transcript. Form state is not
// stored here; it only ever lives in postback payloads.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID string    `gorm:"type:varchar(64);not null;index" json:"recipient_id"`
	Direction   string    `gorm:"type:varchar(16);not null" json:"direction"`
	Kind        string    `gorm:"type:varchar(32)" json:"kind"`
	Content     string    `gorm:"type:text" json:"content"`
	Status      string    `gorm:"type:varchar(20)" json:"status"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
