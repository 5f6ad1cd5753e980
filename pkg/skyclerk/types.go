package skyclerk

import (
	"time"
)

// EntryType filters ledger listings by direction.
type EntryType string

const (
	EntryTypeIncome  EntryType = "Income"
	EntryTypeExpense EntryType = "Expense"
)

// Every workspace-scoped payload uses PascalCase keys on the wire; the json
// tags below are the explicit alias table. The /oauth/* endpoints are the
// lone snake_case exception and decode through internal/auth.

// LedgerEntry is a single income or expense entry.
type LedgerEntry struct {
	ID        int64           `json:"Id"`
	AccountID int64           `json:"AccountId"`
	Date      Date            `json:"Date"`
	Amount    float64         `json:"Amount"`
	Note      string          `json:"Note"`
	Contact   *Contact        `json:"Contact,omitempty"`
	Category  *Category       `json:"Category,omitempty"`
	Labels    []*Label        `json:"Labels,omitempty"`
	Files     []*FileMetadata `json:"Files,omitempty"`
}

// LedgerEntryList is one page of ledger entries.
type LedgerEntryList struct {
	Entries  []*LedgerEntry
	LastPage bool
}

// LedgerListOptions filter a ledger listing. Page 0 means page 1.
type LedgerListOptions struct {
	Page   int
	Type   EntryType
	Search string
}

// Contact represents a customer or vendor
type Contact struct {
	ID        int64  `json:"Id"`
	AccountID int64  `json:"AccountId"`
	Name      string `json:"Name"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
}

// ContactListOptions filter a contact listing.
type ContactListOptions struct {
	Limit  int
	Search string
}

// Category represents an income or expense category
type Category struct {
	ID        int64  `json:"Id"`
	AccountID int64  `json:"AccountId"`
	Name      string `json:"Name"`
	Type      string `json:"Type"`
}

// Label represents a free-form tag on ledger entries
type Label struct {
	ID        int64  `json:"Id"`
	AccountID int64  `json:"AccountId"`
	Name      string `json:"Name"`
}

// FileMetadata describes an uploaded file or receipt image.
type FileMetadata struct {
	ID        int64  `json:"Id"`
	AccountID int64  `json:"AccountId"`
	Name      string `json:"Name"`
	Type      string `json:"Type"`
	Size      int64  `json:"Size"`
	URL       string `json:"Url"`
	ThumbURL  string `json:"ThumbUrl"`
}

// SnapClerk is a receipt submitted for OCR processing.
type SnapClerk struct {
	ID        int64         `json:"Id"`
	AccountID int64         `json:"AccountId"`
	Status    string        `json:"Status"`
	Note      string        `json:"Note"`
	Lat       string        `json:"Lat"`
	Lon       string        `json:"Lon"`
	Labels    string        `json:"Labels"`
	Category  string        `json:"Category"`
	Amount    float64       `json:"Amount"`
	Contact   string        `json:"Contact"`
	File      *FileMetadata `json:"File,omitempty"`
	CreatedAt *time.Time    `json:"CreatedAt,omitempty"`
}

// SnapClerkList is one page of receipts.
type SnapClerkList struct {
	Receipts []*SnapClerk
	LastPage bool
}

// SnapClerkUpload is a receipt photo plus its text attributes. Labels are
// joined into a comma-separated field on the wire.
type SnapClerkUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	Note        string
	Lat         string
	Lon         string
	Labels      []string
	Category    string
}

// Account represents a workspace (tenant) the user operates in.
type Account struct {
	ID       int64  `json:"Id"`
	OwnerID  int64  `json:"OwnerId"`
	Name     string `json:"Name"`
	Locale   string `json:"Locale"`
	Currency string `json:"Currency"`

	// TrialExpire is empty when the account is not on a trial. The empty
	// string sentinel is the wire convention; use OnTrial instead of
	// comparing directly.
	TrialExpire string `json:"TrialExpire"`
}

// OnTrial reports whether the account has a trial expiration set.
func (a *Account) OnTrial() bool {
	return a.TrialExpire != ""
}

// Billing represents the account's subscription state.
type Billing struct {
	Status    string `json:"Status"`
	Plan      string `json:"Plan"`
	Amount    string `json:"Amount"`
	CardBrand string `json:"CardBrand"`
	CardLast4 string `json:"CardLast4"`
}

// User is the authenticated user's profile with their workspace list.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Accounts  []*Account
}

// Profile is the workspace-scoped view of the user record.
type Profile struct {
	ID        int64  `json:"Id"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
}

// ProfileUpdate is the PUT me request body.
type ProfileUpdate struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
}

// ProfitLoss is the current-year profit and loss report.
type ProfitLoss struct {
	Year  int     `json:"Year"`
	Value float64 `json:"Value"`
}

// PingStatus is the subscription state reported by the health ping.
type PingStatus string

const (
	PingStatusActive     PingStatus = "active"
	PingStatusDelinquent PingStatus = "delinquent"
	PingStatusExpired    PingStatus = "expired"
	PingStatusLogout     PingStatus = "logout"
)

// PingResponse is the GET ping payload
type PingResponse struct {
	Status PingStatus `json:"status"`
}

// Session is the public view of the authenticated session.
type Session struct {
	Token     string `json:"token"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	AccountID int64  `json:"accountId"`
}

// RegisterParams are the inputs to account registration.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
