package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Sheet kinds. Count sheets and goods-receipt sheets share one model; receipts
// additionally carry a supplier name and require full coverage before completion.
const (
	SheetKindCount   = "count"
	SheetKindReceipt = "receipt"
)

// Sheet statuses.
const (
	SheetStatusPending   = "pending"
	SheetStatusCompleted = "completed"
)

// Notification kinds.
const (
	NotificationNewSheet  = "new"
	NotificationCompleted = "completed"
	NotificationShortage  = "short"
	NotificationOverage   = "over"
)

// User represents an authenticated app user.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Product is the catalog entry managed by the manager role. Sheet lines
// snapshot the product name at creation time; renaming a product never
// rewrites existing sheets.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Code        string    `bun:"code,unique,notnull"`
	Name        string    `bun:"name,notnull"`
	Unit        string    `bun:"unit"`
	Description string    `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Sheet is a count or goods-receipt document. Status moves from pending to
// completed exactly once; CompletedAt is set iff the sheet is completed.
type Sheet struct {
	bun.BaseModel `bun:"table:sheets,alias:sh"`

	ID           int64       `bun:"id,pk,autoincrement"`
	Kind         string      `bun:"kind,notnull"`
	Number       string      `bun:"number,notnull"`
	Title        string      `bun:"title,notnull"`
	SupplierName string      `bun:"supplier_name"`
	Note         string      `bun:"note"`
	Status       string      `bun:"status,notnull,default:'pending'"`
	CreatedBy    string      `bun:"created_by,notnull"`
	CompletedBy  string      `bun:"completed_by"`
	CompletedAt  *time.Time  `bun:"completed_at"`
	Lines        []SheetLine `bun:"rel:has-many,join:id=sheet_id"`
	CreatedAt    time.Time   `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time   `bun:"updated_at,notnull,default:current_timestamp"`
}

// Completed reports whether the sheet has been completed.
func (s Sheet) Completed() bool {
	return s.Status == SheetStatusCompleted
}

// SheetLine is one expected-quantity line on a sheet. CountedQty is nil until
// the first scan lands; a line with a running total of zero stays distinct
// from a line never scanned at all.
type SheetLine struct {
	bun.BaseModel `bun:"table:sheet_lines,alias:sl"`

	ID          int64      `bun:"id,pk,autoincrement"`
	SheetID     int64      `bun:"sheet_id,notnull"`
	Code        string     `bun:"code,notnull"`
	ProductName string     `bun:"product_name,notnull"`
	ExpectedQty int64      `bun:"expected_qty,notnull"`
	CountedQty  *int64     `bun:"counted_qty"`
	LastScanAt  *time.Time `bun:"last_scan_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// Counted returns the running total, treating never-scanned as zero.
func (l SheetLine) Counted() int64 {
	if l.CountedQty == nil {
		return 0
	}
	return *l.CountedQty
}

// Notification is one advisory feed entry. The ID is derived from the sheet
// event so repeated feed refreshes never duplicate an entry.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID         string    `bun:"id,pk"`
	Kind       string    `bun:"kind,notnull"`
	Message    string    `bun:"message,notnull"`
	HappenedAt time.Time `bun:"happened_at,notnull"`
	Read       bool      `bun:"read,notnull,default:false"`
	TargetURL  string    `bun:"target_url"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
