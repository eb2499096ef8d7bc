package entity

const (
	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID   string
	Email    string
	Name     string
	Provider string
}
