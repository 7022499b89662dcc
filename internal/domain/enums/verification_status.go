package enums

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationUnverified, VerificationPending, VerificationVerified:
		return true
	}
	return false
}
