package entity

import (
	"strings"
)

type Status int16

const (
	StatusUnknown  Status = 0
	StatusActive   Status = 1
	StatusClosed   Status = 2
	StatusArchived Status = 3
)

func StatusFromString(raw string) Status {
	switch strings.TrimSpace(raw) {
	case "active":
		return StatusActive
	case "closed":
		return StatusClosed
	case "archived":
		return StatusArchived
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusClosed:
		return "closed"
	case StatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

type Priority int16

const (
	PriorityUnknown Priority = 0
	PriorityLow     Priority = 1
	PriorityNormal  Priority = 2
	PriorityHigh    Priority = 3
	PriorityUrgent  Priority = 4
)

func PriorityFromString(raw string) Priority {
	switch strings.TrimSpace(raw) {
	case "low":
		return PriorityLow
	case "normal":
		return PriorityNormal
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityUnknown
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

type MessageType int16

const (
	MessageTypeUnknown MessageType = 0
	MessageTypeText    MessageType = 1
	MessageTypeImage   MessageType = 2
	MessageTypeFile    MessageType = 3
)

func MessageTypeFromString(raw string) MessageType {
	switch strings.TrimSpace(raw) {
	case "text":
		return MessageTypeText
	case "image":
		return MessageTypeImage
	case "file":
		return MessageTypeFile
	default:
		return MessageTypeUnknown
	}
}

func (t MessageType) String() string {
	switch t {
	case MessageTypeText:
		return "text"
	case MessageTypeImage:
		return "image"
	case MessageTypeFile:
		return "file"
	default:
		return "unknown"
	}
}
