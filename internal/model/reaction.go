package model

import "errors"

// Reaction types recognised by the application. A user may attach several
// distinct types to the same message but never the same type twice.
const (
	ReactionSmile = "smile"
	ReactionSad   = "sad"
	ReactionLaugh = "laugh"
	ReactionAngry = "angry"
)

// ReactionTypes lists every valid reaction type.
var ReactionTypes = []string{ReactionSmile, ReactionSad, ReactionLaugh, ReactionAngry}

// Reaction is a typed annotation a user attaches to a message.
// Identity is the full (user_id, message_id, reaction_type) triple.
type Reaction struct {
	UserID       int64  `db:"user_id" json:"user_id"`
	MessageID    int64  `db:"message_id" json:"message_id"`
	ReactionType string `db:"reaction_type" json:"reaction_type"`
}

// ReactionRequest is the JSON body of POST /addreaction and DELETE /deletereaction.
type ReactionRequest struct {
	Type  string `json:"type" validate:"required,oneof=smile sad laugh angry"`
	MsgID int64  `json:"msgId" validate:"required"`
}

var (
	ErrAlreadyReacted      = errors.New("reaction already exists")
	ErrReactionNotFound    = errors.New("reaction not found")
	ErrInvalidReactionType = errors.New("invalid reaction type")
)
