package view

// Category buckets the many backend statuses into the four display groups the
// UI colors by, plus a catch-all for anything unrecognized.
type Category int

const (
	CategoryOther Category = iota
	CategoryPending
	CategoryConfirmed
	CategoryCompleted
	CategoryCancelled
)

func (c Category) String() string {
	switch c {
	case CategoryPending:
		return "pending"
	case CategoryConfirmed:
		return "confirmed"
	case CategoryCompleted:
		return "completed"
	case CategoryCancelled:
		return "cancelled"
	}
	return "other"
}

// Categorize maps a raw status string to its display category. Unknown
// statuses land in CategoryOther rather than erroring.
func Categorize(status string) Category {
	switch status {
	case "confirmed", "approved":
		return CategoryConfirmed
	case "pending":
		return CategoryPending
	case "completed", "delivered":
		return CategoryCompleted
	case "cancelled", "rejected":
		return CategoryCancelled
	}
	return CategoryOther
}
