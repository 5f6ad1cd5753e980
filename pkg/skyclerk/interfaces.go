package skyclerk

import (
	"context"
)

// LedgerService handles ledger entry operations
type LedgerService interface {
	// List retrieves one page of ledger entries
	List(ctx context.Context, opts *LedgerListOptions) (*LedgerEntryList, error)

	// Get retrieves a single ledger entry by ID
	Get(ctx context.Context, id int64) (*LedgerEntry, error)

	// Create creates a new ledger entry
	Create(ctx context.Context, entry *LedgerEntry) (*LedgerEntry, error)

	// Delete deletes a ledger entry
	Delete(ctx context.Context, id int64) error
}

// ContactService handles customer and vendor contacts
type ContactService interface {
	// List retrieves contacts
	List(ctx context.Context, opts *ContactListOptions) ([]*Contact, error)

	// Create creates a new contact
	Create(ctx context.Context, contact *Contact) (*Contact, error)
}

// CategoryService handles income/expense categories
type CategoryService interface {
	// List retrieves all categories
	List(ctx context.Context) ([]*Category, error)
}

// LabelService handles ledger entry labels
type LabelService interface {
	// List retrieves all labels
	List(ctx context.Context) ([]*Label, error)

	// Create creates a new label
	Create(ctx context.Context, name string) (*Label, error)
}

// FileService handles document uploads
type FileService interface {
	// Upload uploads a file and returns its stored metadata. Extra text
	// fields ride along in the same multipart body.
	Upload(ctx context.Context, fileName, contentType string, data []byte, fields map[string]string) (*FileMetadata, error)
}

// SnapClerkService handles receipts submitted for OCR
type SnapClerkService interface {
	// List retrieves one page of receipts, newest first
	List(ctx context.Context, page int) (*SnapClerkList, error)

	// Create submits a receipt photo for processing
	Create(ctx context.Context, upload *SnapClerkUpload) error
}

// AccountService handles the active workspace
type AccountService interface {
	// Get retrieves the active account
	Get(ctx context.Context) (*Account, error)

	// Update updates the active account
	Update(ctx context.Context, account *Account) (*Account, error)

	// Delete permanently deletes the active account
	Delete(ctx context.Context) error

	// Billing retrieves the account's subscription state
	Billing(ctx context.Context) (*Billing, error)
}

// ProfileService handles the authenticated user's own record
type ProfileService interface {
	// Me retrieves the user's profile and workspace list
	Me(ctx context.Context) (*User, error)

	// Update updates the user's name and email
	Update(ctx context.Context, update *ProfileUpdate) (*Profile, error)

	// ChangePassword changes the user's password
	ChangePassword(ctx context.Context, current, password, confirm string) error
}

// ReportService handles reporting endpoints
type ReportService interface {
	// ProfitLossCurrentYear retrieves the current-year P&L figure
	ProfitLossCurrentYear(ctx context.Context) (*ProfitLoss, error)
}

// PingService handles the subscription health ping
type PingService interface {
	// Ping issues one health check
	Ping(ctx context.Context) (*PingResponse, error)

	// StartMonitor starts the periodic health check, replacing any
	// monitor already running
	StartMonitor(ctx context.Context, opts *MonitorOptions)

	// StopMonitor stops the periodic health check
	StopMonitor()
}

// AuthService handles authentication
type AuthService interface {
	// Login performs the OAuth password-grant credential exchange
	Login(ctx context.Context, email, password string) error

	// Register creates a new user and their first account
	Register(ctx context.Context, params *RegisterParams) error

	// Logout clears the session
	Logout()

	// SaveSession saves session to file
	SaveSession(path string) error

	// LoadSession loads session from file
	LoadSession(path string) error
}
