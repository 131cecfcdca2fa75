package api

import "time"

// Jackson serializes LocalDateTime without a zone designator.
const serverTimestampLayout = "2006-01-02T15:04:05"

// Role identifies a user's privilege level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ItemStatus is the lifecycle status of a lost/found item.
type ItemStatus string

const (
	StatusLost    ItemStatus = "LOST"
	StatusFound   ItemStatus = "FOUND"
	StatusClaimed ItemStatus = "CLAIMED"
)

// User mirrors the identity payload returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ParsedCreatedAt returns the parsed registration timestamp.
func (u User) ParsedCreatedAt() time.Time {
	return parseTime(u.CreatedAt)
}

// Item describes a lost/found item record.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Status      ItemStatus `json:"status"`
	Image       string     `json:"image"`
	CreatedBy   int64      `json:"createdBy"`
	CreatorName string     `json:"creatorName"`
	CreatedAt   string     `json:"createdAt"`
}

// ParsedCreatedAt returns the parsed creation timestamp.
func (i Item) ParsedCreatedAt() time.Time {
	return parseTime(i.CreatedAt)
}

// Claim describes an assertion that a found item belongs to a user.
type Claim struct {
	ID            int64  `json:"id"`
	ItemID        int64  `json:"itemId"`
	ItemName      string `json:"itemName"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	ClaimedBy     int64  `json:"claimedBy"`
	ClaimerName   string `json:"claimerName"`
	ClaimantName  string `json:"claimantName"`
	ClaimantEmail string `json:"claimantEmail"`
	ClaimedAt     string `json:"claimedAt"`
}

// ParsedClaimedAt returns the parsed claim timestamp.
func (c Claim) ParsedClaimedAt() time.Time {
	return parseTime(c.ClaimedAt)
}

// Message is a conversation entry attached to an item.
type Message struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"senderId"`
	SenderName string `json:"senderName"`
	ReceiverID int64  `json:"receiverId"`
	ItemID     int64  `json:"itemId"`
	ItemName   string `json:"itemName"`
	Message    string `json:"message"`
	SentAt     string `json:"sentAt"`
}

// ParsedSentAt returns the parsed send timestamp.
func (m Message) ParsedSentAt() time.Time {
	return parseTime(m.SentAt)
}

// Feedback is a platform feedback record (admin view only).
type Feedback struct {
	ID           int64  `json:"id"`
	UserName     string `json:"userName"`
	FeedbackText string `json:"feedbackText"`
	SubmittedAt  string `json:"submittedAt"`
}

// ParsedSubmittedAt returns the parsed submission timestamp.
func (f Feedback) ParsedSubmittedAt() time.Time {
	return parseTime(f.SubmittedAt)
}

// Stats holds the admin dashboard summary counters.
type Stats struct {
	TotalItems    int `json:"totalItems"`
	TotalClaims   int `json:"totalClaims"`
	TotalUsers    int `json:"totalUsers"`
	TotalFeedback int `json:"totalFeedback"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account creation request body.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ItemQuery filters the item feed. Zero values mean "no filter".
type ItemQuery struct {
	Search string
	Status ItemStatus
}

// NewItem carries the multipart fields for item registration. The image
// is held as bytes so the request can be replayed after a token refresh.
type NewItem struct {
	Name        string
	Description string
	Location    string
	Status      ItemStatus
	ImageName   string
	ImageData   []byte
}

// OutgoingMessage is the body for sending or replying to a message.
type OutgoingMessage struct {
	ReceiverID int64  `json:"receiverId"`
	ItemID     int64  `json:"itemId"`
	Message    string `json:"message"`
}

// Dashboard aggregates the current user's records in one payload.
type Dashboard struct {
	User     *DashboardUser `json:"user"`
	Items    []Item         `json:"items"`
	Claims   []Claim        `json:"claims"`
	Messages []Message      `json:"messages"`
}

// DashboardUser is the identity subset embedded in the dashboard payload.
type DashboardUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AdminDashboard aggregates every collection the admin view manages.
type AdminDashboard struct {
	Items    []Item     `json:"items"`
	Claims   []Claim    `json:"claims"`
	Users    []User     `json:"users"`
	Feedback []Feedback `json:"feedback"`
	Stats    Stats      `json:"stats"`
}

// envelope is the common response wrapper.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, serverTimestampLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
