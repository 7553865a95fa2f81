package domain

// Member is a registered user. Members are versioned documents like any
// other content type: registration creates the first revision, profile edits
// append to the chain.
type Member struct {
	VersionedModel

	Username     string `gorm:"column:username;size:64;index" json:"username"`
	Email        string `gorm:"column:email;size:255;index" json:"email"`
	DisplayName  string `gorm:"column:display_name;size:128" json:"display_name"`
	PasswordHash string `gorm:"column:password_hash;size:128" json:"-"`

	// Reputation is maintained by external scoring; the permission policy
	// only reads it.
	Reputation int `gorm:"column:reputation;default:0" json:"reputation"`
}

func (Member) TableName() string {
	return "members"
}

func (Member) Kind() ContentKind {
	return KindMember
}

// MemberResponse is the safe-to-serve projection of a member.
type MemberResponse struct {
	DocumentID  uint64 `json:"document_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Reputation  int    `json:"reputation"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		DocumentID:  m.DocumentID,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Reputation:  m.Reputation,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Member       *MemberResponse `json:"member"`
}
