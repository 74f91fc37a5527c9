package storage

import "time"

// Client is a gallery customer. ClientKey is the opaque credential a
// client logs in with; it is generated once and never changes.
type Client struct {
	ID        uint      `gorm:"primaryKey"                              json:"id"`
	Name      string    `gorm:"not null"                                json:"name"`
	ClientKey string    `gorm:"type:varchar(64);uniqueIndex;not null"   json:"clientKey"`
	CreatedAt time.Time `                                               json:"createdAt"`

	Photos []Photo `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Photo belongs to exactly one client. HDURL always holds a value;
// it falls back to PreviewURL when no HD variant was supplied.
type Photo struct {
	ID         uint      `gorm:"primaryKey"     json:"id"`
	ClientID   uint      `gorm:"index;not null" json:"clientId"`
	Title      string    `gorm:"not null"       json:"title"`
	PreviewURL string    `gorm:"not null"       json:"previewUrl"`
	HDURL      string    `gorm:"not null"       json:"hdUrl"`
	UploadedAt time.Time `                      json:"uploadedAt"`
}

// ContactMessage is append-only; there is no read or delete path.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null"   json:"name"`
	Email     string    `gorm:"not null"   json:"email"`
	Subject   string    `gorm:"not null"   json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `                  json:"createdAt"`
}
