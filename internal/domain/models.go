// Package domain defines the data model for the caddy backend: conversation
// turns exchanged over the chat endpoint, recorded shot results mapped with
// GORM, and the pre-shot condition types accepted from the client. These
// types are shared across the repository, service, and handler layers.
package domain

import "time"

// Role values for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one turn in a caddy conversation. The client owns the
// history and sends it with every request; the server never stores turns.
//
// Fields:
//   - Role: "user" or "assistant".
//   - Message: text content of the turn.
//   - Timestamp: ISO-8601 text, set by whichever side authored the turn.
type Message struct {
	Role      string `json:"role" example:"user"`
	Message   string `json:"message" example:"What club should I use?"`
	Timestamp string `json:"timestamp" example:"2026-08-25T14:03:07.123456Z"`
}

// Contact holds qualitative strike-location scores for one shot.
type Contact struct {
	Toe   int `json:"toe" gorm:"not null"`
	Heel  int `json:"heel" gorm:"not null"`
	Top   int `json:"top" gorm:"not null"`
	Chunk int `json:"chunk" gorm:"not null"`
}

// Result holds qualitative dispersion scores for one shot.
type Result struct {
	Right int `json:"right" gorm:"not null"`
	Left  int `json:"left" gorm:"not null"`
	Long  int `json:"long" gorm:"not null"`
	Short int `json:"short" gorm:"not null"`
}

// ShotResult is one recorded swing outcome. Rows are append-only: nothing
// updates or deletes them, and insertion order is the only ordering the log
// guarantees.
//
// Fields:
//   - Seq: hidden auto-increment primary key; preserves append order and
//     lets clients reuse their own ids freely.
//   - ID: client-chosen identifier. Not unique; duplicates are accepted.
//   - IntendedDistance: target carry in yards.
//   - Club: club the player hit.
//   - Contact / Result: embedded per-shot scores.
//   - CreatedAt: timestamp managed by GORM, not exposed on the wire.
type ShotResult struct {
	Seq              int64     `json:"-" gorm:"column:seq;primaryKey;autoIncrement"`
	ID               int       `json:"id" gorm:"column:client_id;not null;index:idx_shot_client" example:"1"`
	IntendedDistance int       `json:"intendedDistance" gorm:"column:intended_distance;not null" example:"150"`
	Club             string    `json:"club" gorm:"type:varchar(64);not null" example:"7-iron"`
	Contact          Contact   `json:"contact" gorm:"embedded;embeddedPrefix:contact_"`
	Result           Result    `json:"result" gorm:"embedded;embeddedPrefix:result_"`
	CreatedAt        time.Time `json:"-"`
}

// TableName returns the database table name for ShotResult.
func (ShotResult) TableName() string { return "shot_results" }

// Lie describes the turf the ball sits on before a shot.
type Lie struct {
	Cut   int `json:"cut"`
	XAxis int `json:"xAxis"`
	ZAxis int `json:"zAxis"`
}

// Wind describes wind components affecting a planned shot.
type Wind struct {
	Hurt  int `json:"hurt"`
	Help  int `json:"help"`
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Swing describes the player's swing intent.
type Swing struct {
	Size        string `json:"size"`
	Grip        string `json:"grip"`
	Feel        string `json:"feel"`
	Intangibles string `json:"intangibles"`
}

// ShotInput captures pre-shot conditions (lie, wind, swing intent) as sent by
// the client. No endpoint consumes it yet; the type exists so the client
// schema stays in one place.
type ShotInput struct {
	ID       int    `json:"id"`
	Distance int    `json:"distance"`
	Club     string `json:"club"`
	Lie      Lie    `json:"lie"`
	Wind     Wind   `json:"wind"`
	Swing    Swing  `json:"swing"`
}
