package models

import "time"

// Provider verification states.
const (
	VerificationPending  = "Pending"
	VerificationVerified = "Verified"
	VerificationRejected = "Rejected"
)

// Provider payment states. A provider starts Free, becomes Unpaid on their
// first ever booking, and becomes Paid once an activation payment meeting the
// configured threshold is recorded.
const (
	PaymentFree   = "Free"
	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"
)

// IDDocument is the identity document a provider submits for verification.
type IDDocument struct {
	Name string `bson:"name" json:"name"`
	Path string `bson:"path" json:"path"`
}

// ProviderDetails tracks a provider's verification and payment state, which
// together gate marketplace visibility: a provider is searchable only when
// Verified and either on the Free plan or Paid with a positive paid amount.
type ProviderDetails struct {
	ID                 string     `bson:"id" json:"id"`
	UserID             string     `bson:"user_id" json:"userId"`
	VerificationStatus string     `bson:"verification_status" json:"verificationStatus"`
	AdminNotes         string     `bson:"admin_notes,omitempty" json:"adminNotes,omitempty"`
	Documents          IDDocument `bson:"documents" json:"documents"`
	PaymentStatus      string     `bson:"payment_status" json:"paymentStatus"`
	PaidAmount         float64    `bson:"paid_amount" json:"paidAmount"`
	FreePlanExpiry     *time.Time `bson:"free_plan_expiry,omitempty" json:"freePlanExpiry,omitempty"`
	LastReminderDate   *time.Time `bson:"last_reminder_date,omitempty" json:"lastReminderDate,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Visible reports whether the provider qualifies for marketplace search.
func (d *ProviderDetails) Visible() bool {
	if d.VerificationStatus != VerificationVerified {
		return false
	}
	return d.PaymentStatus == PaymentFree ||
		(d.PaymentStatus == PaymentPaid && d.PaidAmount > 0)
}

// PendingProvider is an admin dashboard row for a provider awaiting
// verification.
type PendingProvider struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BusinessName string     `json:"businessName,omitempty"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Documents    IDDocument `json:"documents"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}

// ProviderPublicDetails is the client-facing provider page: public user
// fields, the complete profile, and review aggregates.
type ProviderPublicDetails struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	BusinessName  string           `json:"businessName,omitempty"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	ProfileImage  string           `json:"profileImage"`
	Verified      bool             `json:"verified"`
	Profile       *CompleteProfile `json:"profile,omitempty"`
	ReviewCount   int              `json:"reviewCount"`
	AverageRating float64          `json:"averageRating"`
}

// VerifiedProvider is a marketplace search result: public user fields joined
// with payment standing and review aggregates.
type VerifiedProvider struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	BusinessName  string  `json:"businessName,omitempty"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	ProfileImage  string  `json:"profileImage"`
	PaymentStatus string  `json:"paymentStatus"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}
