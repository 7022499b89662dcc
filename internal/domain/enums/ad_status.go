package enums

type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
	AdStatusSold     AdStatus = "sold"
)

func (s AdStatus) Valid() bool {
	switch s {
	case AdStatusPending, AdStatusApproved, AdStatusRejected, AdStatusSold:
		return true
	}
	return false
}
